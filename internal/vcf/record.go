// Package vcf provides variant record access over a tabix-indexed VCF file.
package vcf

// Zygosity classifies a diploid genotype call.
type Zygosity int

const (
	// ZygosityMissing marks calls with fewer than two present alleles.
	// Haploid calls (e.g. a lone Y allele) fall in this bucket too.
	ZygosityMissing Zygosity = iota
	Heterozygous
	Homozygous
)

// Record represents a single variant call for one sample.
// Records are transient: they are produced by a Source iterator,
// consumed by one aggregation pass and never persisted.
type Record struct {
	Chrom    string  // Chromosome name (e.g., "X", "chrX")
	Pos      int64   // 1-based genomic position
	GT       []int   // Allele indices; -1 marks a missing allele
	Depth    int     // Per-sample read depth (DP)
	HasDepth bool    // False when DP is absent; absent is not zero
	Qual     float64 // QUAL column value
}

// Zygosity classifies the genotype call. A call counts only when both
// alleles are present; anything else is excluded from het and hom alike.
func (r *Record) Zygosity() Zygosity {
	if len(r.GT) != 2 {
		return ZygosityMissing
	}
	a, b := r.GT[0], r.GT[1]
	if a < 0 || b < 0 {
		return ZygosityMissing
	}
	if a == b {
		return Homozygous
	}
	return Heterozygous
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (r *Record) NormalizeChrom() string {
	return TrimChrPrefix(r.Chrom)
}

// TrimChrPrefix strips a leading "chr" from a chromosome name.
func TrimChrPrefix(chrom string) string {
	if len(chrom) > 3 && chrom[:3] == "chr" {
		return chrom[3:]
	}
	return chrom
}

package vcf

import "testing"

func TestRecord_Zygosity(t *testing.T) {
	tests := []struct {
		name     string
		gt       []int
		expected Zygosity
	}{
		{"het ref/alt", []int{0, 1}, Heterozygous},
		{"het alt/ref", []int{1, 0}, Heterozygous},
		{"het two alts", []int{1, 2}, Heterozygous},
		{"hom alt", []int{1, 1}, Homozygous},
		{"hom ref", []int{0, 0}, Homozygous},
		{"half missing", []int{-1, 1}, ZygosityMissing},
		{"fully missing", []int{-1, -1}, ZygosityMissing},
		{"haploid", []int{1}, ZygosityMissing},
		{"no genotype", nil, ZygosityMissing},
		{"triploid call", []int{0, 1, 1}, ZygosityMissing},
	}

	for _, tt := range tests {
		r := &Record{Chrom: "1", Pos: 100, GT: tt.gt}
		if got := r.Zygosity(); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}

func TestTrimChrPrefix(t *testing.T) {
	tests := []struct{ in, out string }{
		{"chr1", "1"},
		{"chrX", "X"},
		{"1", "1"},
		{"X", "X"},
		{"chr", "chr"}, // too short to be a prefixed name
	}
	for _, tt := range tests {
		if got := TrimChrPrefix(tt.in); got != tt.out {
			t.Errorf("TrimChrPrefix(%q): expected %q, got %q", tt.in, tt.out, got)
		}
	}
}

func TestRegion(t *testing.T) {
	r := NewRegion("chrX", 100, 200)
	if r.Chrom() != "chrX" || r.Start() != 100 || r.End() != 200 {
		t.Errorf("unexpected region fields: %v", r)
	}

	moved := r.WithChrom("X")
	if moved.Chrom() != "X" || moved.Start() != 100 || moved.End() != 200 {
		t.Errorf("WithChrom changed coordinates: %v", moved)
	}
	if r.Chrom() != "chrX" {
		t.Error("WithChrom mutated the receiver")
	}

	whole := WholeChrom("1")
	if whole.Start() != 0 || whole.End() != MaxChromEnd {
		t.Errorf("unexpected whole-chromosome bounds: %v", whole)
	}
}

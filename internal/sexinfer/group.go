// Package sexinfer infers genetic sex from per-chromosome-group read
// depth and het/hom statistics of a variant source.
package sexinfer

import (
	"strconv"

	"github.com/inodb/sexcheck/internal/vcf"
)

// Group is one of the three coarse chromosome bins compared by the
// classifier. The enumeration is closed; it is never extended at runtime.
type Group int

const (
	Autosomes Group = iota // chromosomes 1-22
	ChrX
	ChrY
)

func (g Group) String() string {
	switch g {
	case Autosomes:
		return "autosomes"
	case ChrX:
		return "x"
	case ChrY:
		return "y"
	}
	return "unknown"
}

// AllGroups lists the groups in aggregation order.
func AllGroups() []Group {
	return []Group{Autosomes, ChrX, ChrY}
}

// GroupFor maps a chromosome name (with or without "chr" prefix) to its
// group. Contigs outside 1-22/X/Y (MT, alts, decoys) report ok=false.
func GroupFor(chrom string) (Group, bool) {
	name := vcf.TrimChrPrefix(chrom)
	switch name {
	case "X":
		return ChrX, true
	case "Y":
		return ChrY, true
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= 22 {
		return Autosomes, true
	}
	return 0, false
}

// SplitByGroup buckets regions by chromosome group, rewriting chromosome
// names to match the source's naming style. Regions on unrecognized
// contigs are dropped.
func SplitByGroup(regs []vcf.Region, chrPrefix bool) map[Group][]vcf.Region {
	out := make(map[Group][]vcf.Region, 3)
	for _, reg := range regs {
		group, ok := GroupFor(reg.Chrom())
		if !ok {
			continue
		}
		name := vcf.TrimChrPrefix(reg.Chrom())
		if chrPrefix {
			name = "chr" + name
		}
		out[group] = append(out[group], reg.WithChrom(name))
	}
	return out
}

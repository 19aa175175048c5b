package sexinfer

import (
	"testing"

	"github.com/inodb/sexcheck/internal/vcf"
)

func TestGroupFor(t *testing.T) {
	tests := []struct {
		chrom string
		group Group
		ok    bool
	}{
		{"1", Autosomes, true},
		{"22", Autosomes, true},
		{"chr7", Autosomes, true},
		{"X", ChrX, true},
		{"chrX", ChrX, true},
		{"Y", ChrY, true},
		{"chrY", ChrY, true},
		{"MT", 0, false},
		{"chrM", 0, false},
		{"23", 0, false},
		{"0", 0, false},
		{"GL000207.1", 0, false},
	}

	for _, tt := range tests {
		group, ok := GroupFor(tt.chrom)
		if ok != tt.ok {
			t.Errorf("GroupFor(%q): expected ok=%v, got %v", tt.chrom, tt.ok, ok)
			continue
		}
		if ok && group != tt.group {
			t.Errorf("GroupFor(%q): expected %s, got %s", tt.chrom, tt.group, group)
		}
	}
}

func TestSplitByGroup_RewritesPrefix(t *testing.T) {
	regs := []vcf.Region{
		vcf.NewRegion("1", 0, 100),
		vcf.NewRegion("X", 50, 60),
		vcf.NewRegion("MT", 0, 100), // dropped
	}

	byGroup := SplitByGroup(regs, true)

	if len(byGroup[Autosomes]) != 1 || byGroup[Autosomes][0].Chrom() != "chr1" {
		t.Errorf("expected chr1 autosomal region, got %+v", byGroup[Autosomes])
	}
	if len(byGroup[ChrX]) != 1 || byGroup[ChrX][0].Chrom() != "chrX" {
		t.Errorf("expected chrX region, got %+v", byGroup[ChrX])
	}
	if len(byGroup[ChrY]) != 0 {
		t.Errorf("expected no Y regions, got %+v", byGroup[ChrY])
	}

	// Coordinates survive the rewrite.
	if byGroup[ChrX][0].Start() != 50 || byGroup[ChrX][0].End() != 60 {
		t.Errorf("region coordinates changed: %v", byGroup[ChrX][0])
	}
}

func TestSplitByGroup_StripsPrefix(t *testing.T) {
	regs := []vcf.Region{vcf.NewRegion("chrY", 0, 100)}

	byGroup := SplitByGroup(regs, false)
	if len(byGroup[ChrY]) != 1 || byGroup[ChrY][0].Chrom() != "Y" {
		t.Errorf("expected bare Y region, got %+v", byGroup[ChrY])
	}
}

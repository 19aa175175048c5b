package sexinfer

import (
	"math"
	"testing"

	"github.com/inodb/sexcheck/internal/vcf"
)

func depthRecord(depth int) *vcf.Record {
	return &vcf.Record{Chrom: "1", Pos: 1, GT: []int{0, 1}, Depth: depth, HasDepth: true, Qual: 99}
}

func gtRecord(a, b int) *vcf.Record {
	return &vcf.Record{Chrom: "1", Pos: 1, GT: []int{a, b}, Qual: 99}
}

func TestAccumulator_MeanWithinBounds(t *testing.T) {
	depths := []int{12, 50, 3, 88, 41, 41, 7}

	acc := &accumulator{}
	min, max := depths[0], depths[0]
	for _, d := range depths {
		acc.add(depthRecord(d))
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}

	stats := acc.finalize(Autosomes)
	if stats.MeanDepth < float64(min) || stats.MeanDepth > float64(max) {
		t.Errorf("mean depth %f outside [%d, %d]", stats.MeanDepth, min, max)
	}
	if stats.DepthCount != len(depths) {
		t.Errorf("expected depth count %d, got %d", len(depths), stats.DepthCount)
	}
}

func TestAccumulator_MissingDepthSkippedNotZero(t *testing.T) {
	acc := &accumulator{}
	acc.add(depthRecord(40))
	acc.add(depthRecord(60))
	// Absent DP must not drag the mean toward zero.
	acc.add(&vcf.Record{Chrom: "1", Pos: 3, GT: []int{0, 0}, Qual: 99})

	stats := acc.finalize(Autosomes)
	if stats.MeanDepth != 50 {
		t.Errorf("expected mean 50, got %f", stats.MeanDepth)
	}
	if stats.DepthCount != 2 {
		t.Errorf("expected depth count 2, got %d", stats.DepthCount)
	}
	if stats.Records != 3 {
		t.Errorf("expected 3 records, got %d", stats.Records)
	}
}

func TestAccumulator_RatioOrderIndependent(t *testing.T) {
	records := []*vcf.Record{
		gtRecord(0, 1), gtRecord(1, 1), gtRecord(0, 0), gtRecord(1, 2),
		gtRecord(2, 2), gtRecord(0, 2), gtRecord(1, 0), gtRecord(1, 1),
	}

	forward := &accumulator{}
	for _, r := range records {
		forward.add(r)
	}

	reversed := &accumulator{}
	for i := len(records) - 1; i >= 0; i-- {
		reversed.add(records[i])
	}

	f := forward.finalize(ChrX)
	r := reversed.finalize(ChrX)
	if f.HetHomRatio != r.HetHomRatio {
		t.Errorf("ratio depends on order: %f vs %f", f.HetHomRatio, r.HetHomRatio)
	}
	if f.HetCount != r.HetCount || f.HomCount != r.HomCount {
		t.Errorf("counts depend on order: %+v vs %+v", f, r)
	}
}

func TestAccumulator_MissingAllelesExcluded(t *testing.T) {
	acc := &accumulator{}
	acc.add(gtRecord(0, 1))
	acc.add(gtRecord(-1, 1))                                         // half-missing call
	acc.add(&vcf.Record{Chrom: "Y", Pos: 1, GT: []int{1}, Qual: 99}) // haploid call
	acc.add(&vcf.Record{Chrom: "1", Pos: 2, GT: nil, Qual: 99})      // no GT at all

	stats := acc.finalize(ChrY)
	if stats.HetCount != 1 || stats.HomCount != 0 {
		t.Errorf("expected het=1 hom=0, got het=%d hom=%d", stats.HetCount, stats.HomCount)
	}
}

func TestAccumulator_UndefinedHighSentinel(t *testing.T) {
	acc := &accumulator{}
	acc.add(gtRecord(0, 1))
	acc.add(gtRecord(0, 1))

	stats := acc.finalize(ChrX)
	if !stats.RatioUndefinedHigh() {
		t.Error("expected undefined-high ratio sentinel for hom=0, het>0")
	}
	if stats.HasRatio() {
		t.Error("undefined-high ratio must not report as finite")
	}
}

func TestAccumulator_EmptyGroupSentinels(t *testing.T) {
	stats := (&accumulator{}).finalize(ChrY)

	if !math.IsNaN(stats.MeanDepth) || !math.IsNaN(stats.MedianDepth) {
		t.Errorf("expected NaN depth for empty group, got mean=%f median=%f", stats.MeanDepth, stats.MedianDepth)
	}
	if !math.IsNaN(stats.HetHomRatio) {
		t.Errorf("expected NaN ratio for empty group, got %f", stats.HetHomRatio)
	}
	if stats.HasDepth() || stats.HasRatio() || stats.RatioUndefinedHigh() {
		t.Error("empty group must report no data on every signal")
	}
}

func TestAccumulator_SkipRate(t *testing.T) {
	acc := &accumulator{}
	for i := 0; i < 6; i++ {
		acc.addMalformed()
	}
	for i := 0; i < 4; i++ {
		acc.add(gtRecord(0, 0))
	}

	rate, seen := acc.skipRate()
	if seen != 10 {
		t.Errorf("expected 10 seen, got %d", seen)
	}
	if rate != 0.6 {
		t.Errorf("expected skip rate 0.6, got %f", rate)
	}
}

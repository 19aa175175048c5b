package sexinfer

import (
	"encoding/json"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/inodb/sexcheck/internal/vcf"
)

// accumulator is the running state for one chromosome group. It is owned
// exclusively by the goroutine aggregating that group and is discarded
// after producing GroupStats.
type accumulator struct {
	depths  []float64
	het     int
	hom     int
	records int
	lowQual int
	skipped int
}

func (a *accumulator) add(r *vcf.Record) {
	a.records++

	if r.HasDepth {
		a.depths = append(a.depths, float64(r.Depth))
	}

	switch r.Zygosity() {
	case vcf.Heterozygous:
		a.het++
	case vcf.Homozygous:
		a.hom++
	}
}

func (a *accumulator) addLowQual() {
	a.lowQual++
}

func (a *accumulator) addMalformed() {
	a.skipped++
}

// skipRate is the fraction of malformed records among everything read.
func (a *accumulator) skipRate() (rate float64, seen int) {
	seen = a.records + a.lowQual + a.skipped
	if seen == 0 {
		return 0, 0
	}
	return float64(a.skipped) / float64(seen), seen
}

// finalize computes the terminal statistics for the group. Undefined
// quantities use in-band sentinels, never errors: mean and median depth
// are NaN when no record carried a depth value, and the het/hom ratio is
// NaN when both counts are zero or +Inf when only the hom count is.
func (a *accumulator) finalize(group Group) GroupStats {
	gs := GroupStats{
		Group:      group,
		Records:    a.records,
		DepthCount: len(a.depths),
		HetCount:   a.het,
		HomCount:   a.hom,
		LowQual:    a.lowQual,
		Skipped:    a.skipped,
	}

	gs.MeanDepth = math.NaN()
	gs.MedianDepth = math.NaN()
	if len(a.depths) > 0 {
		// stats errors only on empty input, which is excluded here.
		gs.MeanDepth, _ = stats.Mean(a.depths)
		gs.MedianDepth, _ = stats.Median(a.depths)
	}

	switch {
	case a.hom > 0:
		gs.HetHomRatio = float64(a.het) / float64(a.hom)
	case a.het > 0:
		gs.HetHomRatio = math.Inf(1)
	default:
		gs.HetHomRatio = math.NaN()
	}

	return gs
}

// GroupStats is the per-group aggregation result. Computed once,
// immutable thereafter.
type GroupStats struct {
	Group       Group
	Records     int     // records that passed the QUAL filter
	DepthCount  int     // records contributing a depth value
	MeanDepth   float64 // NaN when DepthCount == 0
	MedianDepth float64 // NaN when DepthCount == 0
	HetCount    int
	HomCount    int
	HetHomRatio float64 // NaN when both counts 0; +Inf when HomCount == 0
	LowQual     int     // records excluded by the QUAL filter
	Skipped     int     // malformed records skipped
}

// HasDepth reports whether any record contributed a depth value.
func (s GroupStats) HasDepth() bool {
	return !math.IsNaN(s.MeanDepth)
}

// HasRatio reports whether the het/hom ratio is a finite number.
func (s GroupStats) HasRatio() bool {
	return !math.IsNaN(s.HetHomRatio) && !math.IsInf(s.HetHomRatio, 1)
}

// RatioUndefinedHigh reports the hom==0, het>0 sentinel: the ratio is
// undefined but behaves as the maximal band.
func (s GroupStats) RatioUndefinedHigh() bool {
	return math.IsInf(s.HetHomRatio, 1)
}

// MarshalJSON encodes the stats with null in place of NaN/Inf, since JSON
// has no representation for either.
func (s GroupStats) MarshalJSON() ([]byte, error) {
	type jsonStats struct {
		Records            int      `json:"records"`
		DepthCount         int      `json:"depth_count"`
		MeanDepth          *float64 `json:"mean_depth"`
		MedianDepth        *float64 `json:"median_depth"`
		HetCount           int      `json:"het_count"`
		HomCount           int      `json:"hom_count"`
		HetHomRatio        *float64 `json:"het_hom_ratio"`
		RatioUndefinedHigh bool     `json:"ratio_undefined_high,omitempty"`
		LowQual            int      `json:"low_qual"`
		Skipped            int      `json:"skipped"`
	}

	js := jsonStats{
		Records:            s.Records,
		DepthCount:         s.DepthCount,
		MeanDepth:          finiteOrNil(s.MeanDepth),
		MedianDepth:        finiteOrNil(s.MedianDepth),
		HetCount:           s.HetCount,
		HomCount:           s.HomCount,
		HetHomRatio:        finiteOrNil(s.HetHomRatio),
		RatioUndefinedHigh: s.RatioUndefinedHigh(),
		LowQual:            s.LowQual,
		Skipped:            s.Skipped,
	}
	return json.Marshal(js)
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

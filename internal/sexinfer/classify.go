package sexinfer

import "math"

// Sex is a single method's call, or the combined verdict.
type Sex int

const (
	Indeterminate Sex = iota
	Female
	Male
)

func (s Sex) String() string {
	switch s {
	case Female:
		return "female"
	case Male:
		return "male"
	}
	return "indeterminate"
}

// MarshalText encodes the call as its lowercase name.
func (s Sex) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Band is an inclusive interval of relative values.
type Band struct {
	Min float64 `mapstructure:"min" json:"min"`
	Max float64 `mapstructure:"max" json:"max"`
}

// Contains reports whether v falls inside the band.
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Thresholds hold the classifier bands. All depth values are relative to
// the autosomal mean depth; ratio tolerances are relative to the autosomal
// het/hom ratio. Defaults derive from the original ±0.2 coverage threshold.
type Thresholds struct {
	// DepthFemaleYMax is the relative Y depth below which Y coverage is
	// treated as index-artifact noise.
	DepthFemaleYMax float64 `mapstructure:"depth_female_y_max" json:"depth_female_y_max"`
	// DepthFemaleXBand brackets a diploid X (near the autosomal depth).
	DepthFemaleXBand Band `mapstructure:"depth_female_x_band" json:"depth_female_x_band"`
	// DepthMaleXBand and DepthMaleYBand bracket single-copy coverage.
	DepthMaleXBand Band `mapstructure:"depth_male_x_band" json:"depth_male_x_band"`
	DepthMaleYBand Band `mapstructure:"depth_male_y_band" json:"depth_male_y_band"`
	// RatioFemaleXTolerance is the allowed relative distance between the
	// X het/hom ratio and the autosomal one for a female call. The same
	// tolerance checks the male Y ratio against the autosomal baseline.
	RatioFemaleXTolerance float64 `mapstructure:"ratio_female_x_tolerance" json:"ratio_female_x_tolerance"`
	// RatioMaleXMax is the largest X het/hom ratio, as a fraction of the
	// autosomal ratio, consistent with a single X copy.
	RatioMaleXMax float64 `mapstructure:"ratio_male_x_max" json:"ratio_male_x_max"`
}

// DefaultThresholds returns the documented default bands.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DepthFemaleYMax:       0.2,
		DepthFemaleXBand:      Band{Min: 0.8, Max: 1.2},
		DepthMaleXBand:        Band{Min: 0.2, Max: 0.8},
		DepthMaleYBand:        Band{Min: 0.2, Max: 0.8},
		RatioFemaleXTolerance: 0.2,
		RatioMaleXMax:         0.4,
	}
}

// Verdict combines the two independent method calls. The combined call is
// the shared sex when the methods agree, Indeterminate otherwise; neither
// method is silently preferred over the other.
type Verdict struct {
	DepthCall    Sex `json:"depth_call"`
	ZygosityCall Sex `json:"zygosity_call"`
	Combined     Sex `json:"verdict"`
}

// HighConfidence reports whether both methods produced the same
// non-indeterminate call.
func (v Verdict) HighConfidence() bool {
	return v.Combined != Indeterminate
}

// Classifier applies threshold rules to group statistics.
type Classifier struct {
	t Thresholds
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{t: t}
}

// Classify produces both method calls and the combined verdict. It is
// total: missing inputs yield Indeterminate calls, never a panic or error.
func (c *Classifier) Classify(auto, x, y GroupStats) Verdict {
	v := Verdict{
		DepthCall:    c.classifyDepth(auto, x, y),
		ZygosityCall: c.classifyZygosity(auto, x, y),
	}
	if v.DepthCall == v.ZygosityCall {
		v.Combined = v.DepthCall
	}
	return v
}

// classifyDepth compares X and Y mean depth against the autosomal mean.
// A Y group with no depth-bearing records behaves as zero coverage: a
// female sample's Y often has no usable calls at all.
func (c *Classifier) classifyDepth(auto, x, y GroupStats) Sex {
	dAuto := auto.MeanDepth
	if math.IsNaN(dAuto) || dAuto <= 0 {
		return Indeterminate
	}
	if !x.HasDepth() {
		return Indeterminate
	}

	rX := x.MeanDepth / dAuto
	rY := 0.0
	if y.HasDepth() {
		rY = y.MeanDepth / dAuto
	}

	switch {
	case rY < c.t.DepthFemaleYMax && c.t.DepthFemaleXBand.Contains(rX):
		return Female
	case c.t.DepthMaleXBand.Contains(rX) && c.t.DepthMaleYBand.Contains(rY):
		return Male
	}
	return Indeterminate
}

// classifyZygosity compares the X het/hom ratio against the autosomal
// baseline. An undefined-high ratio (hom==0, het>0) sits above every
// band and therefore resolves to Indeterminate rather than faulting.
func (c *Classifier) classifyZygosity(auto, x, y GroupStats) Sex {
	hAuto := auto.HetHomRatio
	if !auto.HasRatio() || hAuto <= 0 {
		return Indeterminate
	}
	hX := x.HetHomRatio
	if math.IsNaN(hX) {
		return Indeterminate
	}

	tol := c.t.RatioFemaleXTolerance * hAuto

	// Two X copies accumulate het calls like autosomes do.
	if math.Abs(hX-hAuto) <= tol {
		return Female
	}

	// A single X is overwhelmingly homozygous, while Y shares mappable
	// regions with X and picks up comparable het noise.
	if hX <= c.t.RatioMaleXMax*hAuto {
		hY := y.HetHomRatio
		if y.HasRatio() && math.Abs(hY-hAuto) <= tol {
			return Male
		}
	}

	return Indeterminate
}

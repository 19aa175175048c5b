package sexinfer

// Result is the terminal, serializable output of one run: per-group
// statistics, both method calls and the combined verdict.
type Result struct {
	Autosomes GroupStats `json:"autosomes"`
	X         GroupStats `json:"x"`
	Y         GroupStats `json:"y"`

	DepthCall      Sex  `json:"depth_call"`
	ZygosityCall   Sex  `json:"zygosity_call"`
	Verdict        Sex  `json:"verdict"`
	HighConfidence bool `json:"high_confidence"`

	// Gender mirrors the legacy output.json field: the combined call, or
	// null when indeterminate.
	Gender *string `json:"Gender"`
}

func newResult(stats map[Group]GroupStats, v Verdict) *Result {
	r := &Result{
		Autosomes:      stats[Autosomes],
		X:              stats[ChrX],
		Y:              stats[ChrY],
		DepthCall:      v.DepthCall,
		ZygosityCall:   v.ZygosityCall,
		Verdict:        v.Combined,
		HighConfidence: v.HighConfidence(),
	}
	if v.Combined != Indeterminate {
		gender := v.Combined.String()
		r.Gender = &gender
	}
	return r
}

// Stats returns the statistics for one group.
func (r *Result) Stats(g Group) GroupStats {
	switch g {
	case ChrX:
		return r.X
	case ChrY:
		return r.Y
	}
	return r.Autosomes
}

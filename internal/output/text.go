package output

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/inodb/sexcheck/internal/sexinfer"
)

// TextWriter writes a human-readable tab-delimited report.
type TextWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTextWriter creates a new text report writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#group",
			"records",
			"mean_depth",
			"median_depth",
			"het",
			"hom",
			"het_hom_ratio",
			"low_qual",
			"skipped",
		},
	}
}

// Write renders the per-group table followed by the method calls and the
// combined verdict.
func (tw *TextWriter) Write(res *sexinfer.Result) error {
	if _, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n"); err != nil {
		return err
	}

	for _, g := range sexinfer.AllGroups() {
		if err := tw.writeGroup(g, res.Stats(g)); err != nil {
			return err
		}
	}

	confidence := "low"
	if res.HighConfidence {
		confidence = "high"
	}

	_, err := fmt.Fprintf(tw.w, "\ndepth_call\t%s\nzygosity_call\t%s\nverdict\t%s\nconfidence\t%s\n",
		res.DepthCall, res.ZygosityCall, res.Verdict, confidence)
	return err
}

func (tw *TextWriter) writeGroup(g sexinfer.Group, s sexinfer.GroupStats) error {
	ratio := formatFloat(s.HetHomRatio)
	if s.RatioUndefinedHigh() {
		ratio = "inf"
	}

	_, err := fmt.Fprintf(tw.w, "%s\t%d\t%s\t%s\t%d\t%d\t%s\t%d\t%d\n",
		g,
		s.Records,
		formatFloat(s.MeanDepth),
		formatFloat(s.MedianDepth),
		s.HetCount,
		s.HomCount,
		ratio,
		s.LowQual,
		s.Skipped)
	return err
}

// Flush writes any buffered output.
func (tw *TextWriter) Flush() error {
	return tw.w.Flush()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}

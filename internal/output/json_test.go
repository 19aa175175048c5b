package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/sexcheck/internal/sexinfer"
)

func femaleResult() *sexinfer.Result {
	gender := "female"
	return &sexinfer.Result{
		Autosomes: sexinfer.GroupStats{
			Group: sexinfer.Autosomes, Records: 440, DepthCount: 440,
			MeanDepth: 50, MedianDepth: 50, HetCount: 220, HomCount: 220, HetHomRatio: 1.0,
		},
		X: sexinfer.GroupStats{
			Group: sexinfer.ChrX, Records: 39, DepthCount: 39,
			MeanDepth: 49, MedianDepth: 49, HetCount: 19, HomCount: 20, HetHomRatio: 0.95,
		},
		Y: sexinfer.GroupStats{
			Group: sexinfer.ChrY,
			MeanDepth: math.NaN(), MedianDepth: math.NaN(), HetHomRatio: math.NaN(),
		},
		DepthCall:      sexinfer.Female,
		ZygosityCall:   sexinfer.Female,
		Verdict:        sexinfer.Female,
		HighConfidence: true,
		Gender:         &gender,
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	require.NoError(t, w.Write(femaleResult()))
	require.NoError(t, w.Flush())

	// Must round-trip as plain JSON despite the NaN sentinels.
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "female", decoded["Gender"])
	assert.Equal(t, "female", decoded["verdict"])
	assert.Equal(t, "female", decoded["depth_call"])
	assert.Equal(t, "female", decoded["zygosity_call"])
	assert.Equal(t, true, decoded["high_confidence"])

	y, ok := decoded["y"].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, y["mean_depth"], "NaN depth must encode as null")
	assert.Nil(t, y["het_hom_ratio"], "NaN ratio must encode as null")

	auto, ok := decoded["autosomes"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(50), auto["mean_depth"])
}

func TestJSONWriter_SortedKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write(femaleResult()))

	out := buf.String()
	keys := []string{
		`"Gender"`, `"autosomes"`, `"depth_call"`, `"high_confidence"`,
		`"verdict"`, `"x"`, `"y"`, `"zygosity_call"`,
	}
	last := -1
	for _, k := range keys {
		i := strings.Index(out, k)
		require.GreaterOrEqual(t, i, 0, "missing key %s", k)
		assert.Greater(t, i, last, "key %s out of sorted order", k)
		last = i
	}
}

func TestJSONWriter_IndeterminateGenderIsNull(t *testing.T) {
	res := femaleResult()
	res.Gender = nil
	res.Verdict = sexinfer.Indeterminate
	res.HighConfidence = false

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write(res))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Nil(t, decoded["Gender"])
	assert.Equal(t, "indeterminate", decoded["verdict"])
}

func TestJSONWriter_UndefinedHighMarker(t *testing.T) {
	res := femaleResult()
	res.X.HetHomRatio = math.Inf(1)

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write(res))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	x, ok := decoded["x"].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, x["het_hom_ratio"])
	assert.Equal(t, true, x["ratio_undefined_high"])
}

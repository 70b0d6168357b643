package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/compbench/internal/ports"
)

var sample = []ports.Result{
	{Command: "zstd", Stats: ports.Stats{Time: 1500 * time.Millisecond, After: 1572864, Ratio: 30}},
	{Command: "xz --lzma2=dict=1536Mi,nice=273 -q", Stats: ports.Stats{Time: 1234567 * time.Microsecond, After: 1000, Ratio: 0.019073486328125}},
}

func TestNew(t *testing.T) {
	for _, format := range append(Formats, "") {
		r, err := New(format)
		require.NoError(t, err, format)
		assert.NotNil(t, r)
	}

	_, err := New("yaml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{}).Report(&buf, sample))

	want := "zstd\n30.00% = 1.5MiB; 1.5s\n\n" +
		"xz --lzma2=dict=1536Mi,nice=273 -q\n0.02% = 1000B; 1.235s\n\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_EmptyInput(t *testing.T) {
	var buf bytes.Buffer
	results := []ports.Result{{Command: "cat", Stats: ports.Stats{Time: 2 * time.Millisecond, Ratio: math.NaN()}}}
	require.NoError(t, (&TextReporter{}).Report(&buf, results))
	assert.Equal(t, "cat\nNaN% = 0B; 2ms\n\n", buf.String())
}

func TestJSONReporter(t *testing.T) {
	results := append([]ports.Result{}, sample...)
	results = append(results, ports.Result{Command: "cat", Stats: ports.Stats{Ratio: math.NaN()}})

	var buf bytes.Buffer
	require.NoError(t, (&JSONReporter{}).Report(&buf, results))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "zstd", got[0]["command"])
	assert.Equal(t, float64(1572864), got[0]["compressed_bytes"])
	assert.Equal(t, "1.5MiB", got[0]["compressed"])
	assert.Equal(t, 30.0, got[0]["ratio"])
	assert.Equal(t, float64(1500*time.Millisecond), got[0]["time_ns"])
	assert.Equal(t, "1.5s", got[0]["time"])
	assert.Nil(t, got[2]["ratio"])
}

func TestCSVReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVReporter{}).Report(&buf, sample))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"command", "compressed_bytes", "compressed", "ratio_percent", "time_ms"}, records[0])
	assert.Equal(t, []string{"zstd", "1572864", "1.5MiB", "30.00", "1500.000"}, records[1])
	assert.Equal(t, "xz --lzma2=dict=1536Mi,nice=273 -q", records[2][0])
	assert.Equal(t, "1234.567", records[2][4])
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{1234567 * time.Microsecond, "1.235s"},
		{10 * time.Millisecond, "10ms"},
		{2*time.Millisecond + 345678*time.Nanosecond, "2.346ms"},
		{1500 * time.Nanosecond, "2µs"},
		{0, "0s"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatDuration(tc.in), tc.in.String())
	}
}

package scores

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

func TestWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post_sentiment.csv")
	w := NewWriter(path)

	profile := models.SentimentProfile{
		Sentences:     []string{"a", "b"},
		Normalized:    []float64{0.5, -0.25},
		AvgNormalized: 0.13,
	}
	assert.Nil(t, w.Append(profile))
	assert.Nil(t, w.Append(profile))

	data, err := os.ReadFile(path)
	assert.Nil(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, 2, len(lines))
	assert.Equal(t, "0.5,-0.25,0.13", lines[0])
}

func TestReadCSV(t *testing.T) {
	input := strings.NewReader(
		"0.5,-0.25,0.13\n" +
			"0.9,0.1,not-a-number\n" +
			"garbage\n" +
			"0.2,-0.8,-0.3\n")

	summary, err := ReadCSV(input)
	assert.Nil(t, err)
	assert.Equal(t, []float64{0.5, 0.9, 0.2}, summary.Max)
	assert.Equal(t, []float64{-0.25, 0.1, -0.8}, summary.Min)
	// Rows with an unparsable average keep their max/min columns only.
	assert.Equal(t, []float64{0.13, -0.3}, summary.Avg)
}

func TestPercentile(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	assert.Equal(t, 0.5, Percentile(values, 100))
	assert.Equal(t, 0.1, Percentile(values, 0))
	assert.Equal(t, 0.0, Percentile(nil, 50))
}

func TestReport(t *testing.T) {
	summary := Summary{
		Max: []float64{0.1, 0.9},
		Min: []float64{-0.9, -0.1},
		Avg: []float64{-0.2, 0.2},
	}
	report := summary.Report(5)
	assert.Contains(t, report, "max perc:")
	assert.Contains(t, report, "min perc:")
	assert.Contains(t, report, "max avg perc:")
	assert.Contains(t, report, "min avg perc:")
}

package scores

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the score columns read back from the CSV side-channel.
type Summary struct {
	Max []float64
	Min []float64
	Avg []float64
}

// ReadCSV parses the side-channel file. Lines with an unparsable average are
// kept for the max/min columns and dropped from the average column, matching
// how historical files were accumulated.
func ReadCSV(r io.Reader) (Summary, error) {
	var summary Summary
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ",")
		if len(fields) < 2 {
			continue
		}
		max, errMax := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		min, errMin := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if errMax != nil || errMin != nil {
			continue
		}
		summary.Max = append(summary.Max, max)
		summary.Min = append(summary.Min, min)
		if len(fields) >= 3 {
			if avg, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64); err == nil {
				summary.Avg = append(summary.Avg, avg)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Summary{}, fmt.Errorf("[Scores] failed to read csv: %w", err)
	}
	return summary, nil
}

// Percentile returns the pct-th percentile (0-100) of values.
func Percentile(values []float64, pct float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(pct/100, stat.Empirical, sorted, nil)
}

// Report renders the threshold-calibration view for one tail percentage: the
// top of the max and avg distributions and the bottom of the min and avg
// distributions.
func (s Summary) Report(tailPct float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "max perc: %v\n", Percentile(s.Max, 100-tailPct))
	fmt.Fprintf(&b, "min perc: %v\n", Percentile(s.Min, tailPct))
	fmt.Fprintf(&b, "max avg perc: %v\n", Percentile(s.Avg, 100-tailPct))
	fmt.Fprintf(&b, "min avg perc: %v\n", Percentile(s.Avg, tailPct))
	return b.String()
}

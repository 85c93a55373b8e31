// Command scorestats prints percentile reports over the sentiment score CSV,
// used to calibrate the outlier thresholds against observed traffic.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jacksonkontny/goodvibes/internal/logging"
	"github.com/jacksonkontny/goodvibes/internal/scores"
)

func main() {
	logging.InitLogger()

	path := flag.String("csv", "post_sentiment.csv", "path to the score csv")
	flag.Parse()

	fh, err := os.Open(*path)
	if err != nil {
		slog.Error("[ScoreStats] Failed to open csv", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer fh.Close()

	summary, err := scores.ReadCSV(fh)
	if err != nil {
		slog.Error("[ScoreStats] Failed to read csv", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, tail := range []float64{0.2, 1, 5} {
		fmt.Printf("tail %v%%:\n%s\n", tail, summary.Report(tail))
	}
}

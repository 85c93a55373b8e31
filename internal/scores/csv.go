// Package scores maintains the append-only CSV side-channel of normalized
// sentiment scores and the offline percentile statistics computed over it.
// The CSV is best-effort observability data; the store stays authoritative.
package scores

import (
	"fmt"
	"os"
	"sync"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

// Writer appends one line per analyzed post: max,min,avg normalized score.
type Writer struct {
	mu   sync.Mutex
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Append(profile models.SentimentProfile) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	fh, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("[Scores] failed to open %s: %w", w.path, err)
	}
	defer fh.Close()

	_, err = fmt.Fprintf(fh, "%v,%v,%v\n",
		profile.MaxNormalized(), profile.MinNormalized(), profile.AvgNormalized)
	if err != nil {
		return fmt.Errorf("[Scores] failed to append score line: %w", err)
	}
	return nil
}

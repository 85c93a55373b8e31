package sentiment

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Tokenizer splits prose into sentences.
type Tokenizer interface {
	Sentences(text string) []string
}

// PunktTokenizer is a trained english sentence-boundary tokenizer.
type PunktTokenizer struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func NewPunktTokenizer() (*PunktTokenizer, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("[Sentiment] failed to load english tokenizer: %w", err)
	}
	return &PunktTokenizer{tokenizer: tok}, nil
}

func (p *PunktTokenizer) Sentences(text string) []string {
	var out []string
	for _, s := range p.tokenizer.Tokenize(text) {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

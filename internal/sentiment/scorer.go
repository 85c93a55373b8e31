package sentiment

import (
	"github.com/jonreiter/govader"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

// Scorer produces polarity components for a single sentence. Implementations
// must be deterministic for a given input.
type Scorer interface {
	ScoreSentence(text string) models.Polarity
}

// VaderScorer scores sentences with the VADER lexicon.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) ScoreSentence(text string) models.Polarity {
	s := v.analyzer.PolarityScores(text)
	return models.Polarity{
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Compound: s.Compound,
	}
}

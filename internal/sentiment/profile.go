package sentiment

import (
	"errors"
	"math"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

// ErrEmptyContent is returned when a post body tokenizes to zero sentences.
// Averaging over no sentences is meaningless, so degenerate input is rejected
// here instead of producing a profile of NaNs.
var ErrEmptyContent = errors.New("post body contains no sentences")

// ProfileBuilder turns raw post text into a per-sentence sentiment profile.
type ProfileBuilder struct {
	tokenizer Tokenizer
	scorer    Scorer
}

func NewProfileBuilder(tokenizer Tokenizer, scorer Scorer) *ProfileBuilder {
	return &ProfileBuilder{tokenizer: tokenizer, scorer: scorer}
}

// Build computes the sentiment profile for a post body. The body is rendered
// from markdown to plain text before tokenization. Deterministic for a given
// scorer and text.
func (b *ProfileBuilder) Build(body string) (models.SentimentProfile, error) {
	tokens := b.tokenizer.Sentences(PlainText(body))
	if len(tokens) == 0 {
		return models.SentimentProfile{}, ErrEmptyContent
	}

	polarities := make([]models.Polarity, 0, len(tokens))
	normalized := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		pol := b.scorer.ScoreSentence(token)
		polarities = append(polarities, pol)
		normalized = append(normalized, pol.Positive-pol.Negative)
	}

	var posSum, negSum, neuSum, compSum, normSum float64
	for i, pol := range polarities {
		posSum += pol.Positive
		negSum += pol.Negative
		neuSum += pol.Neutral
		compSum += pol.Compound
		normSum += normalized[i]
	}
	n := float64(len(polarities))

	return models.SentimentProfile{
		Sentences:  tokens,
		Polarities: polarities,
		Normalized: normalized,
		Overall: models.Polarity{
			Positive: round(posSum/n, 3),
			Negative: round(negSum/n, 3),
			Neutral:  round(neuSum/n, 3),
			Compound: round(compSum/n, 3),
		},
		AvgNormalized: round(normSum/n, 2),
	}, nil
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

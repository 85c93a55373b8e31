package models

// Polarity holds the VADER polarity components for a unit of text.
type Polarity struct {
	Positive float64 `json:"pos" dynamodbav:"pos"`
	Negative float64 `json:"neg" dynamodbav:"neg"`
	Neutral  float64 `json:"neu" dynamodbav:"neu"`
	Compound float64 `json:"compound" dynamodbav:"compound"`
}

// SentimentProfile is the per-sentence sentiment breakdown of a post body.
// Sentences and Polarities are index-aligned and never empty.
type SentimentProfile struct {
	Sentences  []string  `json:"sentences"`
	Polarities []Polarity `json:"polarities"`
	// Normalized holds pos-neg per sentence, aligned with Sentences.
	Normalized []float64 `json:"normalized_polarities"`
	// Overall averages each polarity component over all sentences,
	// rounded to 3 decimal places.
	Overall Polarity `json:"overall_polarity"`
	// AvgNormalized is the mean of Normalized rounded to 2 decimal places.
	AvgNormalized float64 `json:"avg_normalized_polarity"`
}

// MaxNormalized returns the highest per-sentence normalized score.
func (sp SentimentProfile) MaxNormalized() float64 {
	max := sp.Normalized[0]
	for _, n := range sp.Normalized[1:] {
		if n > max {
			max = n
		}
	}
	return max
}

// MinNormalized returns the lowest per-sentence normalized score.
func (sp SentimentProfile) MinNormalized() float64 {
	min := sp.Normalized[0]
	for _, n := range sp.Normalized[1:] {
		if n < min {
			min = n
		}
	}
	return min
}

// PeakPositive returns the sentence with the highest normalized score.
func (sp SentimentProfile) PeakPositive() string {
	return sp.Sentences[indexOf(sp.Normalized, sp.MaxNormalized())]
}

// PeakNegative returns the sentence with the lowest normalized score.
func (sp SentimentProfile) PeakNegative() string {
	return sp.Sentences[indexOf(sp.Normalized, sp.MinNormalized())]
}

func indexOf(values []float64, target float64) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return 0
}

// OutlierClass labels a post relative to the configured sentiment thresholds.
type OutlierClass string

const (
	ClassPositiveOutlier OutlierClass = "positive-outlier"
	ClassNegativeOutlier OutlierClass = "negative-outlier"
	ClassNeutral         OutlierClass = "neutral"
)

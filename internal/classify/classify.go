// Package classify maps a sentiment profile onto an outlier classification.
package classify

import "github.com/jacksonkontny/goodvibes/internal/models"

// Thresholds bound the neutral band of average normalized scores. Positive
// must exceed Negative; the classifier does not enforce the ordering, it is
// validated at configuration time.
type Thresholds struct {
	Positive float64
	Negative float64
}

// Classify labels a profile against the thresholds. Both boundaries are
// inclusive: an average exactly at a threshold is an outlier.
func Classify(profile models.SentimentProfile, t Thresholds) models.OutlierClass {
	switch {
	case profile.AvgNormalized >= t.Positive:
		return models.ClassPositiveOutlier
	case profile.AvgNormalized <= t.Negative:
		return models.ClassNegativeOutlier
	default:
		return models.ClassNeutral
	}
}

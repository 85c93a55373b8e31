package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

func TestClassify(t *testing.T) {
	thresholds := Thresholds{Positive: 0.1, Negative: -0.1}

	cases := []struct {
		name string
		avg  float64
		want models.OutlierClass
	}{
		{"well above positive", 0.5, models.ClassPositiveOutlier},
		{"exactly at positive threshold", 0.1, models.ClassPositiveOutlier},
		{"just under positive threshold", 0.09, models.ClassNeutral},
		{"zero", 0, models.ClassNeutral},
		{"just above negative threshold", -0.09, models.ClassNeutral},
		{"exactly at negative threshold", -0.1, models.ClassNegativeOutlier},
		{"well below negative", -0.6, models.ClassNegativeOutlier},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := models.SentimentProfile{AvgNormalized: tc.avg}
			assert.Equal(t, tc.want, Classify(profile, thresholds))
		})
	}
}

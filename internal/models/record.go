package models

import "time"

// StoredPostRecord is the persisted snapshot of an analyzed post: the raw
// post export plus its sentiment profile and the roundup lifecycle flags.
// Exactly one record exists per post id.
type StoredPostRecord struct {
	PostID        string     `json:"post_id" dynamodbav:"post_id"`
	Author        string     `json:"author" dynamodbav:"author"`
	Title         string     `json:"title" dynamodbav:"title"`
	Category      string     `json:"category" dynamodbav:"category"`
	Body          string     `json:"body" dynamodbav:"body"`
	URL           string     `json:"url" dynamodbav:"url"`
	Created       time.Time  `json:"created" dynamodbav:"created,unixtime"`
	NetVotes      int        `json:"net_votes" dynamodbav:"net_votes"`
	Polarities    []Polarity `json:"polarities" dynamodbav:"polarities"`
	Normalized    []float64  `json:"normalized_polarities" dynamodbav:"normalized_polarities"`
	Overall       Polarity   `json:"overall_polarity" dynamodbav:"overall_polarity"`
	AvgNormalized float64    `json:"avg_normalized_polarity" dynamodbav:"avg_normalized_polarity"`
	IsPosOutlier  bool       `json:"is_pos_outlier" dynamodbav:"is_pos_outlier"`
	IsNegOutlier  bool       `json:"is_neg_outlier" dynamodbav:"is_neg_outlier"`
	// InRoundup is set once the curator has examined the post, whether or
	// not it was verified, so a post is never tallied twice.
	InRoundup        bool      `json:"is_in_positive_article_post" dynamodbav:"is_in_positive_article_post"`
	VerifiedPositive bool      `json:"verified_positive" dynamodbav:"verified_positive"`
	StoredAt         time.Time `json:"stored_at" dynamodbav:"stored_at,unixtime"`
}

// NewStoredPostRecord builds the persisted record for a freshly profiled post.
func NewStoredPostRecord(post Post, profile SentimentProfile, class OutlierClass, now time.Time) StoredPostRecord {
	return StoredPostRecord{
		PostID:        post.ID,
		Author:        post.Author,
		Title:         post.Title,
		Category:      post.Category,
		Body:          post.Body,
		URL:           post.URL,
		Created:       post.Created,
		NetVotes:      post.NetVotes,
		Polarities:    profile.Polarities,
		Normalized:    profile.Normalized,
		Overall:       profile.Overall,
		AvgNormalized: profile.AvgNormalized,
		IsPosOutlier:  class == ClassPositiveOutlier,
		IsNegOutlier:  class == ClassNegativeOutlier,
		StoredAt:      now,
	}
}

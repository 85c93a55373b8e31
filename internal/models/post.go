package models

import (
	"strings"
	"time"
)

// Vote is a single vote recorded on a post or comment.
type Vote struct {
	Voter  string `json:"voter" dynamodbav:"voter"`
	Weight int    `json:"weight" dynamodbav:"weight"`
}

// Post is the normalized representation of a platform post or comment.
// Every adapter produces this shape at the platform boundary; internal code
// never distinguishes a live post from a persisted one. A Post is an
// immutable snapshot; Platform.Refresh returns a new snapshot rather than
// mutating counters in place.
type Post struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Body        string    `json:"body"`
	URL         string    `json:"url"`
	Created     time.Time `json:"created"`
	IsTopLevel  bool      `json:"is_top_level"`
	AllowsVotes bool      `json:"allows_votes"`
	NetVotes    int       `json:"net_votes"`
	ActiveVotes []Vote    `json:"active_votes,omitempty"`
}

// Age reports how long ago the post was created.
func (p Post) Age(now time.Time) time.Duration {
	return now.Sub(p.Created)
}

// WordCount counts whitespace-separated words in the post body.
func (p Post) WordCount() int {
	return len(strings.Fields(p.Body))
}

// Package platform defines the content platform capability: the stream of
// newly published posts and the write operations the bot performs against
// them. Implementations live in subpackages; the rest of the pipeline only
// sees these interfaces.
package platform

import (
	"context"
	"errors"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

// ErrTransient marks a platform call that failed for a recoverable reason
// (network, rate limit). Callers log and continue; the stream loop never
// terminates because of one.
var ErrTransient = errors.New("transient platform error")

// ErrPostGone is returned when a streamed post no longer exists by the time
// it is fetched. Expected on a busy chain, skip and move on.
var ErrPostGone = errors.New("post does not exist")

// Stream yields newly published posts in delivery order. Next blocks until
// the platform produces the next post or ctx is canceled. On transport
// failure the stream reconnects and resumes from "now"; gaps are accepted,
// not backfilled.
type Stream interface {
	Next(ctx context.Context) (models.Post, error)
	Close() error
}

// Platform exposes the write and read operations the bot performs. Every
// call may fail with a wrapped ErrTransient; callers isolate failures per
// post.
type Platform interface {
	StreamPosts(ctx context.Context) (Stream, error)
	Reply(ctx context.Context, target models.Post, author, body, title string) error
	Upvote(ctx context.Context, target models.Post, voter string) error
	Publish(ctx context.Context, author, title, body string, tags []string) error
	// Refresh re-fetches vote and reply counters, returning a new snapshot.
	Refresh(ctx context.Context, post models.Post) (models.Post, error)
	Replies(ctx context.Context, post models.Post) ([]models.Post, error)
}

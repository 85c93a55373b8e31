// Package store defines the post store capability: the persisted record of
// every analyzed post plus the per-author unsubscribe flags.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

// ErrDuplicatePost is returned by Insert when a record with the same post id
// already exists. Expected on stream replay, callers skip silently.
var ErrDuplicatePost = errors.New("post already stored")

// ErrTransient marks a store call that failed after the reconnect-and-retry
// pass. The caller decides whether to propagate or degrade.
var ErrTransient = errors.New("transient store error")

// Filter selects stored records. Zero fields are not applied.
type Filter struct {
	PosOutliersOnly bool
	CreatedAfter    time.Time
	ExcludeInRoundup bool
}

// Fields lists the mutable record fields for Update. Nil pointers are left
// untouched.
type Fields struct {
	InRoundup        *bool
	VerifiedPositive *bool
	NetVotes         *int
}

// Store persists post records and user subscription flags. Implementations
// serialize conflicting writes; the pipeline never updates the same post
// concurrently, so last-write-wins is acceptable.
type Store interface {
	Insert(ctx context.Context, record models.StoredPostRecord) error
	Update(ctx context.Context, postID string, fields Fields) error
	Find(ctx context.Context, filter Filter) ([]models.StoredPostRecord, error)
	Exists(ctx context.Context, postID string) (bool, error)
	SetUnsubscribed(ctx context.Context, author string, unsubscribed bool) error
	IsUnsubscribed(ctx context.Context, author string) (bool, error)
}

// BoolPtr is a convenience for building Fields literals.
func BoolPtr(b bool) *bool { return &b }

// IntPtr is a convenience for building Fields literals.
func IntPtr(i int) *int { return &i }

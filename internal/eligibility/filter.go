// Package eligibility decides whether a streamed post should be analyzed at
// all. The filter reads but never writes: post state, the unsubscribe flags,
// and the duplicate check.
package eligibility

import (
	"context"
	"log/slog"
	"time"

	"github.com/jacksonkontny/goodvibes/config"
	"github.com/jacksonkontny/goodvibes/internal/language"
	"github.com/jacksonkontny/goodvibes/internal/models"
	"github.com/jacksonkontny/goodvibes/internal/store"
)

// SeenChecker is the optional fast path for the duplicate check. The
// authoritative answer still comes from the store.
type SeenChecker interface {
	WasSeen(ctx context.Context, postID string) bool
}

type Filter struct {
	cfg      *config.Config
	detector language.Detector
	store    store.Store
	seen     SeenChecker
}

func NewFilter(cfg *config.Config, detector language.Detector, st store.Store, seen SeenChecker) *Filter {
	return &Filter{cfg: cfg, detector: detector, store: st, seen: seen}
}

// IsEligible reports whether the post passes every configured gate. Failures
// of the collaborating services degrade to "not eligible" and are logged;
// they never abort the stream.
func (f *Filter) IsEligible(ctx context.Context, post models.Post, now time.Time) bool {
	if post.IsTopLevel != f.cfg.RequireTopLevel {
		return false
	}
	if !post.AllowsVotes {
		return false
	}
	if post.Age(now) >= f.cfg.ExpirationWindow {
		return false
	}

	lang, err := f.detector.Detect(post.Body)
	if err != nil {
		slog.Info("[Eligibility] Language not understood, skipping post",
			slog.String("post_id", post.ID))
		return false
	}
	if lang != "en" {
		return false
	}

	if !f.categoryAllowed(post.Category) {
		return false
	}
	if post.WordCount() <= f.cfg.MinWordCount {
		return false
	}

	unsubscribed, err := f.store.IsUnsubscribed(ctx, post.Author)
	if err != nil {
		slog.Warn("[Eligibility] Unsubscribe lookup failed, skipping post",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
		return false
	}
	if unsubscribed {
		return false
	}

	if f.seen != nil && f.seen.WasSeen(ctx, post.ID) {
		return false
	}
	exists, err := f.store.Exists(ctx, post.ID)
	if err != nil {
		slog.Warn("[Eligibility] Duplicate lookup failed, skipping post",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
		return false
	}
	return !exists
}

// categoryAllowed applies whichever category list is configured. The config
// layer guarantees at most one list is set.
func (f *Filter) categoryAllowed(category string) bool {
	if len(f.cfg.AllowedCategories) > 0 {
		return f.cfg.AllowedCategories[category]
	}
	if len(f.cfg.ExcludedCategories) > 0 {
		return !f.cfg.ExcludedCategories[category]
	}
	return true
}

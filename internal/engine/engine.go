// Package engine drives a post through the evaluation state machine:
// Discovered -> Eligible -> Profiled -> Stored -> Engaged or Skipped.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jacksonkontny/goodvibes/config"
	"github.com/jacksonkontny/goodvibes/internal/classify"
	"github.com/jacksonkontny/goodvibes/internal/eligibility"
	"github.com/jacksonkontny/goodvibes/internal/models"
	"github.com/jacksonkontny/goodvibes/internal/platform"
	"github.com/jacksonkontny/goodvibes/internal/sentiment"
	"github.com/jacksonkontny/goodvibes/internal/store"
)

// Outcome is the terminal state a post reached.
type Outcome string

const (
	OutcomeSkipped Outcome = "skipped"
	OutcomeStored  Outcome = "stored"
	OutcomeEngaged Outcome = "engaged"
)

// SeenMarker records processed post ids in the fast duplicate cache.
type SeenMarker interface {
	MarkSeen(ctx context.Context, postID string) error
}

// ScoreLogger appends a profile to the CSV side-channel.
type ScoreLogger interface {
	Append(profile models.SentimentProfile) error
}

type Engine struct {
	cfg      *config.Config
	filter   *eligibility.Filter
	builder  *sentiment.ProfileBuilder
	platform platform.Platform
	store    store.Store
	seen     SeenMarker
	scores   ScoreLogger

	// Injection points for tests.
	now   func() time.Time
	sleep func(d time.Duration)
}

func New(
	cfg *config.Config,
	filter *eligibility.Filter,
	builder *sentiment.ProfileBuilder,
	pf platform.Platform,
	st store.Store,
	seen SeenMarker,
	scoreLog ScoreLogger,
) *Engine {
	return &Engine{
		cfg:      cfg,
		filter:   filter,
		builder:  builder,
		platform: pf,
		store:    st,
		seen:     seen,
		scores:   scoreLog,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Process runs one post through the state machine. Every failure is isolated
// to this post; Process never returns an error that should stop the stream.
func (e *Engine) Process(ctx context.Context, post models.Post) Outcome {
	if !e.filter.IsEligible(ctx, post, e.now()) {
		return OutcomeSkipped
	}

	profile, err := e.builder.Build(post.Body)
	if err != nil {
		if errors.Is(err, sentiment.ErrEmptyContent) {
			slog.Info("[Engine] Post has no scoreable sentences, skipping",
				slog.String("post_id", post.ID))
		} else {
			slog.Warn("[Engine] Failed to build sentiment profile",
				slog.String("post_id", post.ID),
				slog.String("error", err.Error()))
		}
		return OutcomeSkipped
	}

	class := classify.Classify(profile, classify.Thresholds{
		Positive: e.cfg.PositiveThreshold,
		Negative: e.cfg.NegativeThreshold,
	})

	// The record is the audit trail for roundup queries, so every profiled
	// post is persisted regardless of its classification.
	record := models.NewStoredPostRecord(post, profile, class, e.now())
	if err := e.store.Insert(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicatePost) {
			return OutcomeSkipped
		}
		slog.Warn("[Engine] Failed to store record, skipping engagement",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
		return OutcomeSkipped
	}

	if e.seen != nil {
		if err := e.seen.MarkSeen(ctx, post.ID); err != nil {
			slog.Warn("[Engine] Failed to mark post in seen cache",
				slog.String("post_id", post.ID),
				slog.String("error", err.Error()))
		}
	}
	if e.scores != nil {
		if err := e.scores.Append(profile); err != nil {
			slog.Warn("[Engine] Failed to append score line",
				slog.String("error", err.Error()))
		}
	}

	slog.Info("[Engine] Stored analyzed post",
		slog.String("post_id", post.ID),
		slog.String("class", string(class)),
		slog.Float64("avg_normalized", profile.AvgNormalized))

	if class != models.ClassPositiveOutlier {
		return OutcomeStored
	}
	return e.engage(ctx, post, profile)
}

// engage upvotes and replies to a positive outlier unless a spam detector
// account has already flagged it. Platform failures are logged and the
// stream continues.
func (e *Engine) engage(ctx context.Context, post models.Post, profile models.SentimentProfile) Outcome {
	refreshed, err := e.platform.Refresh(ctx, post)
	if err != nil {
		slog.Warn("[Engine] Failed to refresh post before engagement",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
		refreshed = post
	}

	spam, err := e.isSpamFlagged(ctx, refreshed)
	if err != nil {
		slog.Warn("[Engine] Spam check failed, skipping engagement",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
		return OutcomeStored
	}
	if spam {
		slog.Info("[Engine] Post flagged by spam detector, skipping engagement",
			slog.String("post_id", post.ID))
		return OutcomeStored
	}

	if err := e.platform.Upvote(ctx, refreshed, e.cfg.Account); err != nil {
		slog.Warn("[Engine] Upvote failed",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
	}
	// Consecutive votes must be spaced out or the platform hard-rejects
	// them, so the delay is enforced here instead of retried later.
	e.sleep(e.cfg.UpvoteDelay)

	body := Description(refreshed.Author, profile)
	if err := e.platform.Reply(ctx, refreshed, e.cfg.Account, body, e.cfg.Account); err != nil {
		slog.Warn("[Engine] Reply failed",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
	}
	e.sleep(e.cfg.ReplyDelay)

	slog.Info("[Engine] Engaged positive outlier",
		slog.String("post_id", post.ID),
		slog.String("url", refreshed.URL))
	return OutcomeEngaged
}

func (e *Engine) isSpamFlagged(ctx context.Context, post models.Post) (bool, error) {
	replies, err := e.platform.Replies(ctx, post)
	if err != nil {
		return false, err
	}
	for _, reply := range replies {
		if e.cfg.SpamDetectors[reply.Author] {
			return true, nil
		}
	}
	return false, nil
}

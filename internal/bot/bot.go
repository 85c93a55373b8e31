// Package bot wires the pipeline into a single sequential worker: one
// consumer of the post stream with the roundup hour polled between items.
package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/jacksonkontny/goodvibes/config"
	"github.com/jacksonkontny/goodvibes/internal/curator"
	"github.com/jacksonkontny/goodvibes/internal/engine"
	"github.com/jacksonkontny/goodvibes/internal/models"
	"github.com/jacksonkontny/goodvibes/internal/platform"
)

type Bot struct {
	cfg      *config.Config
	engine   *engine.Engine
	curator  *curator.Curator
	platform platform.Platform

	now func() time.Time
	// roundupFired prevents the roundup re-firing within the same day; it
	// resets once the clock reaches the reset hour.
	roundupFired bool
}

func New(cfg *config.Config, eng *engine.Engine, cur *curator.Curator, pf platform.Platform) *Bot {
	return &Bot{
		cfg:      cfg,
		engine:   eng,
		curator:  cur,
		platform: pf,
		now:      time.Now,
	}
}

// Run consumes the stream until ctx is canceled or the stream fails beyond
// its own reconnect budget. Per-post failures never surface here; an error
// return means this pipeline instance is done and the supervisor should
// rebuild it.
func (b *Bot) Run(ctx context.Context) error {
	stream, err := b.platform.StreamPosts(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()

	slog.Info("[Bot] Consuming post stream",
		slog.String("account", b.cfg.Account))
	for {
		post, err := stream.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("[Bot] Shutting down")
				return ctx.Err()
			}
			return err
		}
		b.handle(ctx, post)
		b.checkRoundup(ctx)
	}
}

func (b *Bot) handle(ctx context.Context, post models.Post) {
	outcome := b.engine.Process(ctx, post)
	slog.Debug("[Bot] Processed post",
		slog.String("post_id", post.ID),
		slog.String("outcome", string(outcome)))
}

// checkRoundup polls the wall clock once per stream item. Granularity is
// inter-post arrival time, which the domain tolerates.
func (b *Bot) checkRoundup(ctx context.Context) {
	hour := b.now().Hour()
	switch {
	case hour == b.cfg.RoundupHour && !b.roundupFired:
		if err := b.curator.Run(ctx); err != nil {
			slog.Error("[Bot] Roundup pass failed",
				slog.String("error", err.Error()))
		}
		b.roundupFired = true
	case hour == b.cfg.RoundupResetHour:
		b.roundupFired = false
	}
}

// Supervise rebuilds and reruns the bot whenever a run fails: the stateful
// pieces (stream connection, store clients) are reconstructed by build on
// every iteration. It only returns once ctx is canceled.
func Supervise(ctx context.Context, build func(ctx context.Context) (*Bot, error)) {
	backoff := 5 * time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		b, err := build(ctx)
		if err != nil {
			slog.Error("[Bot] Failed to build pipeline, retrying...",
				slog.String("error", err.Error()))
		} else if err := b.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("[Bot] Run failed, restarting pipeline...",
				slog.String("error", err.Error()))
		}
		if ctx.Err() != nil {
			return
		}
		time.Sleep(backoff)
	}
}

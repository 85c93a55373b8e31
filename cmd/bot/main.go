package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacksonkontny/goodvibes/config"
	"github.com/jacksonkontny/goodvibes/internal/bot"
	"github.com/jacksonkontny/goodvibes/internal/curator"
	"github.com/jacksonkontny/goodvibes/internal/eligibility"
	"github.com/jacksonkontny/goodvibes/internal/engine"
	"github.com/jacksonkontny/goodvibes/internal/language"
	"github.com/jacksonkontny/goodvibes/internal/logging"
	"github.com/jacksonkontny/goodvibes/internal/platform/gateway"
	"github.com/jacksonkontny/goodvibes/internal/platform/kafkastream"
	"github.com/jacksonkontny/goodvibes/internal/scores"
	"github.com/jacksonkontny/goodvibes/internal/sentiment"
	"github.com/jacksonkontny/goodvibes/internal/store"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	logging.InitLogger()

	cfg, err := config.Load(env)
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bot.Supervise(ctx, func(ctx context.Context) (*bot.Bot, error) {
		return buildPipeline(ctx, cfg)
	})
}

// buildPipeline constructs every stateful component fresh: the supervisor
// calls it again after a total failure so connections are re-established.
func buildPipeline(ctx context.Context, cfg *config.Config) (*bot.Bot, error) {
	st, err := store.NewDynamoStore(ctx, store.DynamoConfig{
		Region:   cfg.DynamoRegion,
		Endpoint: cfg.DynamoEndpoint,
	})
	if err != nil {
		return nil, err
	}

	// The seen cache is best-effort; the bot runs without it.
	var seen *store.SeenCache
	seen, err = store.NewSeenCache(store.SeenCacheConfig{
		Address:  cfg.ValkeyAddress,
		Password: cfg.ValkeyPassword,
		UseTLS:   cfg.ValkeyTLS,
	})
	if err != nil {
		slog.Warn("[Main] Seen cache unavailable, falling back to store lookups",
			slog.String("error", err.Error()))
		seen = nil
	}

	tokenizer, err := sentiment.NewPunktTokenizer()
	if err != nil {
		return nil, err
	}
	builder := sentiment.NewProfileBuilder(tokenizer, sentiment.NewVaderScorer())

	pf := gateway.New(gateway.Config{
		BaseURL:    os.Getenv("GATEWAY_URL"),
		PostingKey: cfg.PostingKey,
		Stream: kafkastream.Config{
			Broker:  cfg.KafkaBroker,
			GroupID: cfg.KafkaGroupID,
			Topic:   cfg.KafkaTopic,
		},
	})

	var seenChecker eligibility.SeenChecker
	var seenMarker engine.SeenMarker
	if seen != nil {
		seenChecker = seen
		seenMarker = seen
	}

	filter := eligibility.NewFilter(cfg, language.NewTrigramDetector(), st, seenChecker)
	eng := engine.New(cfg, filter, builder, pf, st, seenMarker, scores.NewWriter(cfg.ScoreCSVPath))
	cur := curator.New(cfg, pf, st)

	return bot.New(cfg, eng, cur, pf), nil
}

package store

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	seenKey     = "goodvibes:processed_posts"
	seenTTLSecs = 86400
	cacheRetries = 3
)

// SeenCache is a best-effort Valkey set of recently processed post ids,
// consulted before the authoritative store Exists call. A cache miss or a
// cache failure just means the store gets asked.
type SeenCache struct {
	client valkey.Client
}

type SeenCacheConfig struct {
	Address  string
	Password string
	UseTLS   bool
}

func NewSeenCache(cfg SeenCacheConfig) (*SeenCache, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{cfg.Address},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[SeenCache] failed to create Valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if res := client.Do(ctx, client.B().Ping().Build()); res.Error() != nil {
		client.Close()
		return nil, fmt.Errorf("[SeenCache] failed to ping Valkey: %w", res.Error())
	}

	slog.Info("[SeenCache] Connected to Valkey")
	return &SeenCache{client: client}, nil
}

func (c *SeenCache) Close() {
	c.client.Close()
}

// MarkSeen records a post id with a 24h TTL on the set.
func (c *SeenCache) MarkSeen(ctx context.Context, postID string) error {
	completed := []valkey.Completed{
		c.client.B().Sadd().Key(seenKey).Member(postID).Build(),
		c.client.B().Expire().Key(seenKey).Seconds(seenTTLSecs).Build(),
	}
	for _, res := range c.doMultiWithRetry(ctx, completed) {
		if err := res.Error(); err != nil {
			return err
		}
	}
	return nil
}

// WasSeen reports whether the id is in the set. Errors degrade to false.
func (c *SeenCache) WasSeen(ctx context.Context, postID string) bool {
	res := c.doWithRetry(ctx, c.client.B().Sismember().Key(seenKey).Member(postID).Build())
	ok, err := res.AsBool()
	if err != nil {
		return false
	}
	return ok
}

func (c *SeenCache) doMultiWithRetry(ctx context.Context, completed []valkey.Completed) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult
	for i := 0; i < cacheRetries; i++ {
		results = c.client.DoMulti(ctx, completed...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil {
				hasErr = true
				slog.Warn("[SeenCache] DoMulti failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				break
			}
		}
		if !hasErr {
			break
		}
		time.Sleep(250 * time.Millisecond)
	}
	return results
}

func (c *SeenCache) doWithRetry(ctx context.Context, completed valkey.Completed) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < cacheRetries; i++ {
		result = c.client.Do(ctx, completed)
		if result.Error() == nil {
			break
		}
		slog.Warn("[SeenCache] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))
		time.Sleep(250 * time.Millisecond)
	}
	return result
}

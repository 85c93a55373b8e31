// Package config builds the immutable runtime configuration from the
// environment, layered with an optional .env file per deployment environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

// Config is constructed once at startup and passed by reference into every
// component constructor. It is never mutated after Load returns.
type Config struct {
	// Platform credentials and identity.
	Account    string
	PostingKey string

	// Sentiment thresholds bounding the neutral band.
	PositiveThreshold float64
	NegativeThreshold float64

	// Eligibility.
	MinWordCount       int
	ExpirationWindow   time.Duration
	RequireTopLevel    bool
	AllowedCategories  map[string]bool
	ExcludedCategories map[string]bool

	// Engagement.
	SpamDetectors map[string]bool
	ReplyDelay    time.Duration
	UpvoteDelay   time.Duration

	// Roundup schedule.
	RoundupHour      int
	RoundupResetHour int

	// Vote tallying. When false, a reply with deeply negative net votes can
	// contribute a negative yes/no weight.
	ClampVoteWeights bool

	// Score CSV side-channel.
	ScoreCSVPath string

	// Backing services.
	KafkaBroker  string
	KafkaGroupID string
	KafkaTopic   string

	DynamoRegion   string
	DynamoEndpoint string

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
}

// Load reads config/envs/.env.<env> when present, then the process
// environment, and validates the result. Validation failures are fatal at
// startup; nothing else in the pipeline treats configuration as an error
// source.
func Load(env string) (*Config, error) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment",
			slog.String("env_file", envFile))
	}

	cfg := &Config{
		Account:            os.Getenv("BOT_ACCOUNT"),
		PostingKey:         os.Getenv("BOT_POSTING_KEY"),
		PositiveThreshold:  getFloat("POSITIVE_THRESHOLD", 0.1),
		NegativeThreshold:  getFloat("NEGATIVE_THRESHOLD", -0.1),
		MinWordCount:       getInt("MIN_ARTICLE_WORD_COUNT", 500),
		ExpirationWindow:   getDuration("POST_EXPIRATION_WINDOW", 15*time.Minute),
		RequireTopLevel:    getBool("REQUIRE_TOP_LEVEL", true),
		AllowedCategories:  getSet("ALLOWED_CATEGORIES"),
		ExcludedCategories: getSet("EXCLUDED_CATEGORIES"),
		SpamDetectors:      getSet("SPAM_DETECTOR_ACCOUNTS"),
		ReplyDelay:         getDuration("REPLY_DELAY", 20*time.Second),
		UpvoteDelay:        getDuration("UPVOTE_DELAY", 3*time.Second),
		RoundupHour:        getInt("ROUNDUP_HOUR", 17),
		RoundupResetHour:   getInt("ROUNDUP_RESET_HOUR", 23),
		ClampVoteWeights:   getBool("CLAMP_VOTE_WEIGHTS", false),
		ScoreCSVPath:       getEnv("SCORE_CSV_PATH", "post_sentiment.csv"),
		KafkaBroker:        getEnv("KAFKA_BROKER", "localhost:29092"),
		KafkaGroupID:       getEnv("KAFKA_CONSUMER_GROUP_ID", "goodvibes-bot"),
		KafkaTopic:         getEnv("KAFKA_POST_TOPIC", "chain-posts"),
		DynamoRegion:       getEnv("AWS_REGION", "us-west-2"),
		DynamoEndpoint:     os.Getenv("AWS_ENDPOINT"),
		ValkeyAddress:      getEnv("VALKEY_INIT_ADDRESS", "localhost:6379"),
		ValkeyPassword:     os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:          getBool("VALKEY_TLS", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Account == "" {
		return fmt.Errorf("config: BOT_ACCOUNT is required")
	}
	if c.PostingKey == "" {
		return fmt.Errorf("config: BOT_POSTING_KEY is required")
	}
	if c.PositiveThreshold <= c.NegativeThreshold {
		return fmt.Errorf("config: POSITIVE_THRESHOLD (%v) must exceed NEGATIVE_THRESHOLD (%v)",
			c.PositiveThreshold, c.NegativeThreshold)
	}
	if len(c.AllowedCategories) > 0 && len(c.ExcludedCategories) > 0 {
		return fmt.Errorf("config: ALLOWED_CATEGORIES and EXCLUDED_CATEGORIES are mutually exclusive")
	}
	if c.MinWordCount < 0 {
		return fmt.Errorf("config: MIN_ARTICLE_WORD_COUNT must not be negative")
	}
	if c.RoundupHour < 0 || c.RoundupHour > 23 {
		return fmt.Errorf("config: ROUNDUP_HOUR must be in [0, 23]")
	}
	if c.RoundupResetHour < 0 || c.RoundupResetHour > 23 {
		return fmt.Errorf("config: ROUNDUP_RESET_HOUR must be in [0, 23]")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default",
			slog.String("key", key), slog.String("value", value))
		return defaultValue
	}
	return parsed
}

func getFloat(key string, defaultValue float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		slog.Warn("Invalid float in environment, using default",
			slog.String("key", key), slog.String("value", value))
		return defaultValue
	}
	return parsed
}

func getBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value == "true" || value == "1"
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration in environment, using default",
			slog.String("key", key), slog.String("value", value))
		return defaultValue
	}
	return parsed
}

func getSet(key string) map[string]bool {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			set[item] = true
		}
	}
	return set
}

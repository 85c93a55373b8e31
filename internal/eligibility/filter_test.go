package eligibility

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jacksonkontny/goodvibes/config"
	"github.com/jacksonkontny/goodvibes/internal/language"
	"github.com/jacksonkontny/goodvibes/internal/models"
	"github.com/jacksonkontny/goodvibes/internal/store"
)

type stubDetector struct {
	lang string
	err  error
}

func (d stubDetector) Detect(string) (string, error) {
	return d.lang, d.err
}

func testConfig() *config.Config {
	return &config.Config{
		MinWordCount:     10,
		ExpirationWindow: 15 * time.Minute,
		RequireTopLevel:  true,
	}
}

func validPost(now time.Time) models.Post {
	return models.Post{
		ID:          "author/a-lovely-day",
		Author:      "author",
		Category:    "life",
		Body:        strings.Repeat("wonderful day in the neighborhood today friends ", 5),
		Created:     now.Add(-time.Minute),
		IsTopLevel:  true,
		AllowsVotes: true,
	}
}

func TestIsEligible(t *testing.T) {
	now := time.Now()
	ctx := context.Background()
	filter := NewFilter(testConfig(), stubDetector{lang: "en"}, store.NewMemoryStore(), nil)

	assert.True(t, filter.IsEligible(ctx, validPost(now), now))
}

func TestIsEligibleStalePost(t *testing.T) {
	now := time.Now()
	filter := NewFilter(testConfig(), stubDetector{lang: "en"}, store.NewMemoryStore(), nil)

	post := validPost(now)
	post.Created = now.Add(-16 * time.Minute)
	assert.False(t, filter.IsEligible(context.Background(), post, now))
}

func TestIsEligibleShortPost(t *testing.T) {
	now := time.Now()
	filter := NewFilter(testConfig(), stubDetector{lang: "en"}, store.NewMemoryStore(), nil)

	post := validPost(now)
	post.Body = "exactly ten words of text right here no more nope"
	assert.Equal(t, 10, post.WordCount())
	// The word count must exceed the minimum, not merely meet it.
	assert.False(t, filter.IsEligible(context.Background(), post, now))
}

func TestIsEligibleUnsubscribedAuthor(t *testing.T) {
	now := time.Now()
	ctx := context.Background()
	st := store.NewMemoryStore()
	assert.Nil(t, st.SetUnsubscribed(ctx, "author", true))
	filter := NewFilter(testConfig(), stubDetector{lang: "en"}, st, nil)

	assert.False(t, filter.IsEligible(ctx, validPost(now), now))
}

func TestIsEligibleLanguage(t *testing.T) {
	now := time.Now()
	ctx := context.Background()

	filter := NewFilter(testConfig(), stubDetector{lang: "de"}, store.NewMemoryStore(), nil)
	assert.False(t, filter.IsEligible(ctx, validPost(now), now))

	// Detection failure is swallowed and the post skipped, never fatal.
	filter = NewFilter(testConfig(), stubDetector{err: language.ErrUndetermined}, store.NewMemoryStore(), nil)
	assert.False(t, filter.IsEligible(ctx, validPost(now), now))
}

func TestIsEligibleCategoryLists(t *testing.T) {
	now := time.Now()
	ctx := context.Background()

	cfg := testConfig()
	cfg.ExcludedCategories = map[string]bool{"nsfw": true}
	filter := NewFilter(cfg, stubDetector{lang: "en"}, store.NewMemoryStore(), nil)
	post := validPost(now)
	post.Category = "nsfw"
	assert.False(t, filter.IsEligible(ctx, post, now))
	post.Category = "life"
	assert.True(t, filter.IsEligible(ctx, post, now))

	cfg = testConfig()
	cfg.AllowedCategories = map[string]bool{"happy": true}
	filter = NewFilter(cfg, stubDetector{lang: "en"}, store.NewMemoryStore(), nil)
	assert.False(t, filter.IsEligible(ctx, post, now))
	post.Category = "happy"
	assert.True(t, filter.IsEligible(ctx, post, now))
}

func TestIsEligiblePostLevel(t *testing.T) {
	now := time.Now()
	ctx := context.Background()
	filter := NewFilter(testConfig(), stubDetector{lang: "en"}, store.NewMemoryStore(), nil)

	post := validPost(now)
	post.IsTopLevel = false
	assert.False(t, filter.IsEligible(ctx, post, now))

	cfg := testConfig()
	cfg.RequireTopLevel = false
	filter = NewFilter(cfg, stubDetector{lang: "en"}, store.NewMemoryStore(), nil)
	assert.True(t, filter.IsEligible(ctx, post, now))
}

func TestIsEligibleVotesDisallowed(t *testing.T) {
	now := time.Now()
	filter := NewFilter(testConfig(), stubDetector{lang: "en"}, store.NewMemoryStore(), nil)

	post := validPost(now)
	post.AllowsVotes = false
	assert.False(t, filter.IsEligible(context.Background(), post, now))
}

func TestIsEligibleAlreadyStored(t *testing.T) {
	now := time.Now()
	ctx := context.Background()
	st := store.NewMemoryStore()
	post := validPost(now)
	assert.Nil(t, st.Insert(ctx, models.StoredPostRecord{PostID: post.ID}))

	filter := NewFilter(testConfig(), stubDetector{lang: "en"}, st, nil)
	assert.False(t, filter.IsEligible(ctx, post, now))
}

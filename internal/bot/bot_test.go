package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jacksonkontny/goodvibes/config"
	"github.com/jacksonkontny/goodvibes/internal/curator"
	"github.com/jacksonkontny/goodvibes/internal/store"
)

func TestCheckRoundupCooldown(t *testing.T) {
	cfg := &config.Config{Account: "goodvibes", RoundupHour: 17, RoundupResetHour: 23}
	// An empty store means the pass finds no candidates and returns before
	// touching the platform.
	cur := curator.New(cfg, nil, store.NewMemoryStore())
	b := New(cfg, nil, cur, nil)

	at := func(hour int) func() time.Time {
		return func() time.Time {
			return time.Date(2018, 3, 14, hour, 30, 0, 0, time.UTC)
		}
	}
	ctx := context.Background()

	b.now = at(12)
	b.checkRoundup(ctx)
	assert.False(t, b.roundupFired)

	b.now = at(17)
	b.checkRoundup(ctx)
	assert.True(t, b.roundupFired)

	// Still within the roundup hour: the flag keeps it from re-firing.
	b.checkRoundup(ctx)
	assert.True(t, b.roundupFired)

	b.now = at(23)
	b.checkRoundup(ctx)
	assert.False(t, b.roundupFired)

	b.now = at(17)
	b.checkRoundup(ctx)
	assert.True(t, b.roundupFired)
}

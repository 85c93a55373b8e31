package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

func TestMemoryStoreInsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	record := models.StoredPostRecord{PostID: "p1", Author: "alice"}
	assert.Nil(t, st.Insert(ctx, record))
	assert.ErrorIs(t, st.Insert(ctx, record), ErrDuplicatePost)

	all, err := st.Find(ctx, Filter{})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(all))
}

func TestMemoryStoreFindFilters(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	now := time.Now()

	assert.Nil(t, st.Insert(ctx, models.StoredPostRecord{
		PostID: "recent-positive", IsPosOutlier: true, Created: now.Add(-time.Hour),
	}))
	assert.Nil(t, st.Insert(ctx, models.StoredPostRecord{
		PostID: "old-positive", IsPosOutlier: true, Created: now.Add(-72 * time.Hour),
	}))
	assert.Nil(t, st.Insert(ctx, models.StoredPostRecord{
		PostID: "recent-neutral", Created: now.Add(-time.Hour),
	}))
	assert.Nil(t, st.Insert(ctx, models.StoredPostRecord{
		PostID: "consumed", IsPosOutlier: true, Created: now.Add(-time.Hour), InRoundup: true,
	}))

	records, err := st.Find(ctx, Filter{
		PosOutliersOnly:  true,
		CreatedAfter:     now.Add(-48 * time.Hour),
		ExcludeInRoundup: true,
	})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(records))
	assert.Equal(t, "recent-positive", records[0].PostID)
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	assert.Nil(t, st.Insert(ctx, models.StoredPostRecord{PostID: "p1"}))
	assert.Nil(t, st.Update(ctx, "p1", Fields{
		InRoundup:        BoolPtr(true),
		VerifiedPositive: BoolPtr(true),
		NetVotes:         IntPtr(7),
	}))

	records, err := st.Find(ctx, Filter{})
	assert.Nil(t, err)
	assert.True(t, records[0].InRoundup)
	assert.True(t, records[0].VerifiedPositive)
	assert.Equal(t, 7, records[0].NetVotes)

	assert.NotNil(t, st.Update(ctx, "missing", Fields{InRoundup: BoolPtr(true)}))
}

func TestMemoryStoreUnsubscribeFlags(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	unsubscribed, err := st.IsUnsubscribed(ctx, "alice")
	assert.Nil(t, err)
	assert.False(t, unsubscribed)

	assert.Nil(t, st.SetUnsubscribed(ctx, "alice", true))
	unsubscribed, err = st.IsUnsubscribed(ctx, "alice")
	assert.Nil(t, err)
	assert.True(t, unsubscribed)
}

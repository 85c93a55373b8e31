package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

// MemoryStore is an in-process Store used for local runs and tests.
type MemoryStore struct {
	mu           sync.Mutex
	records      map[string]models.StoredPostRecord
	order        []string
	unsubscribed map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:      make(map[string]models.StoredPostRecord),
		unsubscribed: make(map[string]bool),
	}
}

func (s *MemoryStore) Insert(_ context.Context, record models.StoredPostRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.PostID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePost, record.PostID)
	}
	s.records[record.PostID] = record
	s.order = append(s.order, record.PostID)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, postID string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[postID]
	if !ok {
		return fmt.Errorf("no record for post %s", postID)
	}
	if fields.InRoundup != nil {
		record.InRoundup = *fields.InRoundup
	}
	if fields.VerifiedPositive != nil {
		record.VerifiedPositive = *fields.VerifiedPositive
	}
	if fields.NetVotes != nil {
		record.NetVotes = *fields.NetVotes
	}
	s.records[postID] = record
	return nil
}

func (s *MemoryStore) Find(_ context.Context, filter Filter) ([]models.StoredPostRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.StoredPostRecord
	for _, id := range s.order {
		record := s.records[id]
		if filter.PosOutliersOnly && !record.IsPosOutlier {
			continue
		}
		if !filter.CreatedAfter.IsZero() && record.Created.Before(filter.CreatedAfter) {
			continue
		}
		if filter.ExcludeInRoundup && record.InRoundup {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *MemoryStore) Exists(_ context.Context, postID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[postID]
	return ok, nil
}

func (s *MemoryStore) SetUnsubscribed(_ context.Context, author string, unsubscribed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsubscribed[author] = unsubscribed
	return nil
}

func (s *MemoryStore) IsUnsubscribed(_ context.Context, author string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribed[author], nil
}

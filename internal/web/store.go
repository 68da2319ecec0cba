// internal/web/store.go
package web

import (
	"context"
	"encoding/json"
	"time"

	"adcraft/internal/common/database"
	"adcraft/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "adcraft:session:"

// SessionStore keeps finished reports in Redis so results can be fetched
// again after the analyze call returns.
type SessionStore struct {
	redis *database.RedisClient
	ttl   time.Duration
}

// NewSessionStore wraps a Redis client with the configured session TTL.
func NewSessionStore(rdb *database.RedisClient, ttl time.Duration) *SessionStore {
	return &SessionStore{redis: rdb, ttl: ttl}
}

// Save stores a report under a fresh session ID and returns the ID.
func (s *SessionStore) Save(ctx context.Context, report *models.Report) (string, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if err := s.redis.Set(ctx, sessionKeyPrefix+id, payload, s.ttl); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads a stored report. A missing or expired session returns
// (nil, nil).
func (s *SessionStore) Get(ctx context.Context, id string) (*models.Report, error) {
	payload, err := s.redis.Get(ctx, sessionKeyPrefix+id)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var report models.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

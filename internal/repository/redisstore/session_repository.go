package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"journal-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionRepository keeps sessions in redis so revocation is shared across
// instances. Keys expire with the session.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	payload, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session store.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

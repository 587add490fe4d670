package memory

import (
	"context"
	"time"

	"journal-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository is the in-process fallback session store, used when
// redis is unreachable and in tests. Sessions do not survive a restart.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(_ context.Context, session *store.Session) error {
	r.cache.Set(session.ID, session, time.Until(session.ExpiresAt))
	return nil
}

func (r *SessionRepository) Get(_ context.Context, sessionID string) (*store.Session, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), nil
	}
	return nil, nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}

package store

import (
	"context"
	"time"
)

// Session is the server-side record behind an access token. The token's jti
// claim is the session ID; deleting the record terminates the session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	IpAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore holds active sessions. Get returns (nil, nil) when the
// session does not exist or has expired.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// Package session stores per-visitor state keyed by an opaque token:
// the shopping cart and, once the visitor signs in, their user id.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ketenci/carsi/internal/domain"
)

// ErrNotFound is returned when a token has no session, usually because
// it expired or was never issued.
var ErrNotFound = errors.New("session: not found")

// Session is the state persisted per token.
type Session struct {
	Token  string       `json:"-"`
	UserID int64        `json:"user_id,omitempty"` // 0 when anonymous
	Cart   *domain.Cart `json:"cart"`
}

// Store persists sessions. Every write refreshes the session TTL so
// active carts never expire mid-visit.
type Store interface {
	// Get returns the session for token, or ErrNotFound.
	Get(ctx context.Context, token string) (*Session, error)

	// Save persists sess under sess.Token.
	Save(ctx context.Context, sess *Session) error

	// Delete removes the session. Deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error
}

// NewToken issues an opaque session token.
func NewToken() string {
	return uuid.NewString()
}

// GetOrCreate loads the session for token, creating an empty anonymous
// one if none exists.
func GetOrCreate(ctx context.Context, store Store, token string) (*Session, error) {
	sess, err := store.Get(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return &Session{Token: token, Cart: &domain.Cart{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if sess.Cart == nil {
		sess.Cart = &domain.Cart{}
	}
	return sess, nil
}

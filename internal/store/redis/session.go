package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultSessionTTL bounds how long an idle browser session survives
	DefaultSessionTTL = 24 * time.Hour
	// DefaultStateTTL bounds how long a pending OAuth redirect may take
	DefaultStateTTL = 10 * time.Minute
)

// Session holds the tokens and identity for one signed-in browser.
type Session struct {
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store handles Redis operations for sessions, OAuth state and the
// response cache.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveSession stores a session under its opaque id
func (s *Store) SaveSession(ctx context.Context, id string, session *Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, SessionKey(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by id. A missing session is (nil, nil).
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, SessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, SessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SaveState records a pending OAuth state value
func (s *Store) SaveState(ctx context.Context, state string, ttl time.Duration) error {
	if err := s.client.Set(ctx, StateKey(state), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// ConsumeState checks and removes a pending state value in one step, so a
// state can only ever match once.
func (s *Store) ConsumeState(ctx context.Context, state string) (bool, error) {
	_, err := s.client.GetDel(ctx, StateKey(state)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to consume state: %w", err)
	}
	return true, nil
}

// Package sessions persists per-shopper session state in Redis.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/kamalsite/backend/pkg/redis"
)

// Store reads and writes session state keyed by the session cookie value.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("sessions: redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("sessions: ttl must be positive")
	}
	return &Store{client: client, ttl: ttl}, nil
}

// Load returns the state for a session, or a fresh empty state when the
// session is unknown or its payload no longer parses.
func (s *Store) Load(ctx context.Context, sessionID string) (*State, error) {
	raw, err := s.client.Get(ctx, redis.SessionStateKey(sessionID))
	if errors.Is(err, redis.ErrNotFound) {
		return &State{}, nil
	}
	if err != nil {
		return nil, err
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// A corrupt blob means a lost session, not a broken request.
		return &State{}, nil
	}
	return &state, nil
}

// Save writes the state back and refreshes the session TTL.
func (s *Store) Save(ctx context.Context, sessionID string, state *State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("sessions: encoding state: %w", err)
	}
	return s.client.Set(ctx, redis.SessionStateKey(sessionID), string(payload), s.ttl)
}

// Touch extends the session TTL without rewriting state.
func (s *Store) Touch(ctx context.Context, sessionID string) error {
	return s.client.Touch(ctx, redis.SessionStateKey(sessionID), s.ttl)
}

// Delete drops the sessions outright, collecting per-key failures.
func (s *Store) Delete(ctx context.Context, sessionIDs ...string) error {
	var errs error
	for _, id := range sessionIDs {
		if err := s.client.Del(ctx, redis.SessionStateKey(id)); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.client.Close()
}

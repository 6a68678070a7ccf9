package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"space-stem-quiz/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Sessions live in a local map; Redis holds a liveness hash per session
// (quiz:session:{id} -> quizId, userId, openedAt) whose TTL is refreshed on access,
// so other tooling can see which sessions are active.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	timeout  time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		timeout:  2 * time.Second,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Put(session *app.Session) {
	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	key := s.key(session.ID())
	// best-effort liveness marker
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"quizId", session.Quiz().ID,
		"userId", session.User().ID,
		"openedAt", time.Now().UTC().Format(time.RFC3339),
	)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, _ = pipe.Exec(ctx)
}

func (s *SessionStore) Get(sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok && s.ttl > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_ = s.client.Expire(ctx, s.key(sessionID), s.ttl).Err()
	}
	return session, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_ = s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}

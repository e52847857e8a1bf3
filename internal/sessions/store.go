package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/notes-service/internal/models"
)

// ErrSessionNotFound is returned for unknown or expired session tokens.
var ErrSessionNotFound = errors.New("session not found")

// Store is the server-side session state keyed by an opaque cookie token.
type Store interface {
	Create(ctx context.Context, user models.SessionUser) (string, error)
	Get(ctx context.Context, token string) (*models.SessionUser, error)
	Destroy(ctx context.Context, token string) error
}

const keyPrefix = "session:"

// RedisStore persists sessions in redis so they survive restarts and are
// shared across replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, user models.SessionUser) (string, error) {
	token := uuid.NewString()

	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*models.SessionUser, error) {
	data, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var user models.SessionUser
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &user, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	// Destroying an unknown session is not an error
	return s.client.Del(ctx, keyPrefix+token).Err()
}

// MemoryStore keeps sessions in process memory. Used when redis is not
// configured and in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
}

type memorySession struct {
	user      models.SessionUser
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Create(ctx context.Context, user models.SessionUser) (string, error) {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memorySession{
		user:      user,
		expiresAt: time.Now().Add(s.ttl),
	}

	return token, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*models.SessionUser, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	user := sess.user
	return &user, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// NewStore returns a redis-backed store when a client is available,
// otherwise an in-memory store.
func NewStore(client *redis.Client, ttl time.Duration) Store {
	if client != nil {
		return NewRedisStore(client, ttl)
	}
	return NewMemoryStore(ttl)
}

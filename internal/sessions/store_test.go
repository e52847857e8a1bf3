package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/notes-service/internal/models"
)

func testUser() models.SessionUser {
	return models.SessionUser{
		ID:       "user-1",
		Email:    "teacher@example.com",
		FullName: "Taylor Teacher",
		Role:     models.RoleTeacher,
	}
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, err := store.Create(ctx, testUser())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if token == "" {
			t.Fatal("Expected a token")
		}

		user, err := store.Get(ctx, token)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if user.ID != "user-1" || user.Role != models.RoleTeacher {
			t.Errorf("Unexpected session user: %+v", user)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		if _, err := store.Get(ctx, "no-such-token"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("destroy", func(t *testing.T) {
		token, err := store.Create(ctx, testUser())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if err := store.Destroy(ctx, token); err != nil {
			t.Fatalf("Destroy failed: %v", err)
		}
		if _, err := store.Get(ctx, token); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound after destroy, got %v", err)
		}
	})

	t.Run("expires with ttl", func(t *testing.T) {
		token, err := store.Create(ctx, testUser())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		mr.FastForward(2 * time.Hour)

		if _, err := store.Get(ctx, token); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound after expiry, got %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		store := NewMemoryStore(time.Hour)

		token, err := store.Create(ctx, testUser())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		user, err := store.Get(ctx, token)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if user.Email != "teacher@example.com" {
			t.Errorf("Unexpected session user: %+v", user)
		}
	})

	t.Run("expired session is rejected", func(t *testing.T) {
		store := NewMemoryStore(-time.Second)

		token, err := store.Create(ctx, testUser())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if _, err := store.Get(ctx, token); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound for expired session, got %v", err)
		}
	})

	t.Run("destroy unknown token succeeds", func(t *testing.T) {
		store := NewMemoryStore(time.Hour)
		if err := store.Destroy(ctx, "unknown"); err != nil {
			t.Errorf("Destroy should be idempotent, got %v", err)
		}
	})
}

func TestNewStore(t *testing.T) {
	t.Run("nil client falls back to memory", func(t *testing.T) {
		if _, ok := NewStore(nil, time.Hour).(*MemoryStore); !ok {
			t.Error("Expected a MemoryStore without a redis client")
		}
	})

	t.Run("redis client selects redis store", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		if _, ok := NewStore(client, time.Hour).(*RedisStore); !ok {
			t.Error("Expected a RedisStore with a redis client")
		}
	})
}

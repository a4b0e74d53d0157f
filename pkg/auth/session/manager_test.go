package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/adirahmanto/craftline-backend/pkg/enums"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) SessionKey(sessionID string) string {
	return fmt.Sprintf("cl:session:%s", sessionID)
}

func newTestManager() (*Manager, *mockStore) {
	store := newMockStore()
	return &Manager{store: store, keyer: store, ttl: time.Hour}, store
}

func TestManagerCreateAndResolve(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	userID := uuid.New()
	id, err := manager.Create(ctx, userID, enums.RoleSales)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty session id")
	}
	if ttl := store.ttls[store.SessionKey(id)]; ttl != time.Hour {
		t.Fatalf("expected configured ttl, got %v", ttl)
	}

	resolved, err := manager.Resolve(ctx, id)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, resolved.UserID)
	}
	if resolved.Role != enums.RoleSales {
		t.Fatalf("expected sales role, got %s", resolved.Role)
	}
}

func TestManagerCreateValidatesInput(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	if _, err := manager.Create(ctx, uuid.Nil, enums.RoleRegular); err == nil {
		t.Fatal("expected error for nil user id")
	}
	if _, err := manager.Create(ctx, uuid.New(), enums.Role("superuser")); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestManagerResolveUnknownSession(t *testing.T) {
	manager, _ := newTestManager()

	if _, err := manager.Resolve(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := manager.Resolve(context.Background(), "  "); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for blank id, got %v", err)
	}
}

func TestManagerResolveRejectsMalformedValues(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	cases := map[string]string{
		"no separator": "justonevalue",
		"bad uuid":     "not-a-uuid|regular",
		"unknown role": fmt.Sprintf("%s|superuser", uuid.New()),
	}
	for name, value := range cases {
		store.data[store.SessionKey("sid")] = value
		if _, err := manager.Resolve(ctx, "sid"); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("%s: expected ErrSessionNotFound, got %v", name, err)
		}
	}
}

func TestManagerRevoke(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	id, err := manager.Create(ctx, uuid.New(), enums.RoleRegular)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := manager.Revoke(ctx, id); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, exists := store.data[store.SessionKey(id)]; exists {
		t.Fatal("session key left behind after revoke")
	}
	if err := manager.Revoke(ctx, ""); err != nil {
		t.Fatalf("revoking blank id should be a no-op, got %v", err)
	}
}

func TestGenerateSessionIDUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := generateSessionID()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if _, dup := seen[id]; dup {
			t.Fatal("duplicate session id generated")
		}
		seen[id] = struct{}{}
	}
}

package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adirahmanto/craftline-backend/pkg/config"
	"github.com/adirahmanto/craftline-backend/pkg/enums"
	redisclient "github.com/adirahmanto/craftline-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

const sessionIDBytes = 32

var ErrSessionNotFound = errors.New("session not found")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Session is the authenticated principal resolved from an opaque cookie id.
type Session struct {
	UserID uuid.UUID
	Role   enums.Role
}

// Manager stores opaque session ids in Redis keyed to the user and role.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Resolver exposes the read-only surface needed by middleware.
type Resolver interface {
	Resolve(ctx context.Context, sessionID string) (*Session, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   cfg.TTL,
	}, nil
}

// Create issues a new opaque session id for the user and stores it with the configured TTL.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID, role enums.Role) (string, error) {
	if userID == uuid.Nil {
		return "", fmt.Errorf("user id is required")
	}
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role %q", role)
	}
	id, err := generateSessionID()
	if err != nil {
		return "", err
	}
	value := fmt.Sprintf("%s|%s", userID, role)
	if err := m.store.Set(ctx, m.keyer.SessionKey(id), value, m.ttl); err != nil {
		return "", err
	}
	return id, nil
}

// Resolve looks up the session id and returns the principal it maps to.
func (m *Manager) Resolve(ctx context.Context, sessionID string) (*Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionNotFound
	}
	stored, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	parts := strings.SplitN(stored, "|", 2)
	if len(parts) != 2 {
		return nil, ErrSessionNotFound
	}
	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, ErrSessionNotFound
	}
	role := enums.Role(parts[1])
	if !role.IsValid() {
		return nil, ErrSessionNotFound
	}

	return &Session{UserID: userID, Role: role}, nil
}

// Revoke deletes the session mapping.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}

func generateSessionID() (string, error) {
	bytes := make([]byte, sessionIDBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgAuth "github.com/adirahmanto/craftline-backend/pkg/auth"
	"github.com/adirahmanto/craftline-backend/pkg/config"
	"github.com/adirahmanto/craftline-backend/pkg/db/models"
	"github.com/adirahmanto/craftline-backend/pkg/enums"
	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
)

type fakeSessionManager struct {
	created []uuid.UUID
	roles   []enums.Role
	revoked []string
	err     error
}

func (f *fakeSessionManager) Create(ctx context.Context, userID uuid.UUID, role enums.Role) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, userID)
	f.roles = append(f.roles, role)
	return fmt.Sprintf("session-%d", len(f.created)), nil
}

func (f *fakeSessionManager) Revoke(ctx context.Context, sessionID string) error {
	if f.err != nil {
		return f.err
	}
	f.revoked = append(f.revoked, sessionID)
	return nil
}

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE IF NOT EXISTS app_users (
  id TEXT PRIMARY KEY,
  role TEXT NOT NULL DEFAULT 'regular',
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	require.NoError(t, conn.Exec("DELETE FROM app_users").Error)
	return conn
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "craftline-test"}
}

func mintIdentityToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID) string {
	t.Helper()

	claims := pkgAuth.IdentityClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)
	return token
}

func newAuthTestService(t *testing.T) (Service, *gorm.DB, *fakeSessionManager) {
	t.Helper()

	conn := setupAuthTestDB(t)
	sessions := &fakeSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       NewRepository(conn),
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	require.NoError(t, err)
	return svc, conn, sessions
}

func TestLoginFirstTimeCreatesRegularUser(t *testing.T) {
	svc, conn, sessions := newAuthTestService(t)
	userID := uuid.New()

	resp, err := svc.Login(context.Background(), LoginRequest{Token: mintIdentityToken(t, testJWTConfig(), userID)})
	require.NoError(t, err)
	assert.Equal(t, "session-1", resp.SessionID)
	assert.Equal(t, userID, resp.User.ID)
	assert.Equal(t, enums.RoleRegular, resp.User.Role)

	var stored models.AppUser
	require.NoError(t, conn.First(&stored, "id = ?", userID).Error)
	assert.Equal(t, enums.RoleRegular, stored.Role)
	require.Len(t, sessions.created, 1)
	assert.Equal(t, userID, sessions.created[0])
}

func TestLoginKeepsExistingRole(t *testing.T) {
	svc, conn, sessions := newAuthTestService(t)
	userID := uuid.New()
	require.NoError(t, conn.Create(&models.AppUser{ID: userID, Role: enums.RoleAdmin}).Error)

	resp, err := svc.Login(context.Background(), LoginRequest{Token: mintIdentityToken(t, testJWTConfig(), userID)})
	require.NoError(t, err)
	assert.Equal(t, enums.RoleAdmin, resp.User.Role)
	require.Len(t, sessions.roles, 1)
	assert.Equal(t, enums.RoleAdmin, sessions.roles[0])
}

func TestLoginRejectsBadSignature(t *testing.T) {
	svc, _, _ := newAuthTestService(t)
	forged := mintIdentityToken(t, config.JWTConfig{Secret: "other-secret", Issuer: "craftline-test"}, uuid.New())

	_, err := svc.Login(context.Background(), LoginRequest{Token: forged})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginRejectsWrongIssuer(t *testing.T) {
	svc, _, _ := newAuthTestService(t)
	token := mintIdentityToken(t, config.JWTConfig{Secret: "test-secret", Issuer: "someone-else"}, uuid.New())

	_, err := svc.Login(context.Background(), LoginRequest{Token: token})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginRejectsMissingUserID(t *testing.T) {
	svc, _, _ := newAuthTestService(t)
	token := mintIdentityToken(t, testJWTConfig(), uuid.Nil)

	_, err := svc.Login(context.Background(), LoginRequest{Token: token})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newAuthTestService(t)

	require.NoError(t, svc.Logout(context.Background(), "session-42"))
	assert.Equal(t, []string{"session-42"}, sessions.revoked)
}

func TestMe(t *testing.T) {
	svc, conn, _ := newAuthTestService(t)
	userID := uuid.New()
	require.NoError(t, conn.Create(&models.AppUser{ID: userID, Role: enums.RoleSales}).Error)

	user, err := svc.Me(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, enums.RoleSales, user.Role)

	_, err = svc.Me(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSetRole(t *testing.T) {
	svc, conn, _ := newAuthTestService(t)
	userID := uuid.New()
	require.NoError(t, conn.Create(&models.AppUser{ID: userID, Role: enums.RoleRegular}).Error)

	user, err := svc.SetRole(context.Background(), userID, enums.RolePPIC)
	require.NoError(t, err)
	assert.Equal(t, enums.RolePPIC, user.Role)

	var stored models.AppUser
	require.NoError(t, conn.First(&stored, "id = ?", userID).Error)
	assert.Equal(t, enums.RolePPIC, stored.Role)
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	svc, conn, _ := newAuthTestService(t)
	userID := uuid.New()
	require.NoError(t, conn.Create(&models.AppUser{ID: userID, Role: enums.RoleRegular}).Error)

	_, err := svc.SetRole(context.Background(), userID, enums.Role("superuser"))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSetRoleUnknownUser(t *testing.T) {
	svc, _, _ := newAuthTestService(t)

	_, err := svc.SetRole(context.Background(), uuid.New(), enums.RoleSales)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

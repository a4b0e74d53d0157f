package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/adirahmanto/craftline-backend/pkg/auth"
	"github.com/adirahmanto/craftline-backend/pkg/config"
	"github.com/adirahmanto/craftline-backend/pkg/db/models"
	"github.com/adirahmanto/craftline-backend/pkg/enums"
	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
)

const invalidTokenMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller. Identity and
// passwords live with the external provider; login exchanges its JWT for an
// opaque server-side session.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID uuid.UUID) (*models.AppUser, error)
	SetRole(ctx context.Context, userID uuid.UUID, role enums.Role) (*models.AppUser, error)
}

type service struct {
	users   userRepository
	session sessionManager
	jwtCfg  config.JWTConfig
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.AppUser, error)
	Upsert(ctx context.Context, user *models.AppUser) (*models.AppUser, error)
	SetRole(ctx context.Context, id uuid.UUID, role string) error
}

type sessionManager interface {
	Create(ctx context.Context, userID uuid.UUID, role enums.Role) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		users:   params.UserRepo,
		session: params.SessionManager,
		jwtCfg:  params.JWTConfig,
	}, nil
}

// Login verifies the provider token, ensures an application user row
// exists, and issues a session.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	claims, err := pkgAuth.ParseIdentityToken(s.jwtCfg, req.Token)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidTokenMessage)
	}
	if claims.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidTokenMessage)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.users.Upsert(ctx, &models.AppUser{ID: claims.UserID, Role: enums.RoleRegular})
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load app user")
	}

	sessionID, err := s.session.Create(ctx, user.ID, user.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	return &LoginResponse{
		SessionID: sessionID,
		User:      *user,
	}, nil
}

// Logout revokes the session. Unknown session ids are fine.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.session.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// SetRole changes a user's authorization level. Sessions issued before the
// change keep the old role until they expire.
func (s *service) SetRole(ctx context.Context, userID uuid.UUID, role enums.Role) (*models.AppUser, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", role))
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load app user")
	}

	if err := s.users.SetRole(ctx, userID, string(role)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update role")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load app user")
	}
	return user, nil
}

// Me returns the current application user.
func (s *service) Me(ctx context.Context, userID uuid.UUID) (*models.AppUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load app user")
	}
	return user, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/scancart-backend/internal/users"
	pkgAuth "github.com/angelmondragon/scancart-backend/pkg/auth"
	"github.com/angelmondragon/scancart-backend/pkg/config"
	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/security"
	"gorm.io/gorm"
)

const (
	MissingCredentialsMessage = "User ID and password are required."
	InvalidCredentialsMessage = "Invalid user ID or password."
)

// Service defines the behavior needed by the login controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

type userRepository interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, password string) error
}

type service struct {
	users       userRepository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		users:       params.UserRepo,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
		now:         time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, MissingCredentialsMessage)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, InvalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.CheckPassword(req.Password, user.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, InvalidCredentialsMessage)
	}

	if !security.IsHashed(user.Password) {
		s.upgradeLegacyPassword(ctx, user.UserID, req.Password)
	}

	result := &LoginResult{User: users.FromModel(user)}
	if s.jwtCfg.Enabled() {
		token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now().UTC(), pkgAuth.AccessTokenPayload{UserID: user.UserID})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
		}
		result.AccessToken = token
	}
	return result, nil
}

// upgradeLegacyPassword rehashes a plaintext credential. Failure keeps the
// plaintext row and must not fail the login.
func (s *service) upgradeLegacyPassword(ctx context.Context, userID, password string) {
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		s.warn(ctx, userID, "auth.legacy_password_hash_failed", err)
		return
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		s.warn(ctx, userID, "auth.legacy_password_upgrade_failed", err)
	}
}

func (s *service) warn(ctx context.Context, userID, msg string, err error) {
	if s.logg == nil {
		return
	}
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	s.logg.Warn(logCtx, msg)
}

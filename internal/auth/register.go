package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/scancart-backend/internal/users"
	"github.com/angelmondragon/scancart-backend/pkg/config"
	"github.com/angelmondragon/scancart-backend/pkg/db"
	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/security"
)

const birthdateLayout = "2006-01-02"

// RegisterService creates shopper accounts.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
}

type userCreator interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	UserRepo       userCreator
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	users       userCreator
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &registerService{
		users:       params.UserRepo,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Userid and Password are required.")
	}

	var birthdate *time.Time
	if raw := strings.TrimSpace(req.Birthdate); raw != "" {
		parsed, err := parseBirthdate(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Birthdate must be formatted as YYYY-MM-DD.")
		}
		birthdate = &parsed
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = userID
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		UserID:       userID,
		Name:         name,
		Birthdate:    birthdate,
		Gender:       strings.TrimSpace(req.Gender),
		PhoneNum:     strings.TrimSpace(req.PhoneNum),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "User ID is already registered.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return users.FromModel(user), nil
}

// parseBirthdate accepts a plain date or a full RFC 3339 timestamp.
func parseBirthdate(raw string) (time.Time, error) {
	if t, err := time.Parse(birthdateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

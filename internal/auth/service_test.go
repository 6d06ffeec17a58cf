package auth

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	pkgAuth "github.com/angelmondragon/scancart-backend/pkg/auth"
	"github.com/angelmondragon/scancart-backend/pkg/config"
	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/security"
)

var testPasswordConfig = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

type stubUserRepository struct {
	data      map[string]*models.User
	findErr   error
	updated   map[string]string
	updateErr error
	createErr error
}

func newStubUserRepository(users ...*models.User) *stubUserRepository {
	repo := &stubUserRepository{data: map[string]*models.User{}, updated: map[string]string{}}
	for _, u := range users {
		repo.data[u.UserID] = u
	}
	return repo
}

func (s *stubUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if user, ok := s.data[userID]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated[userID] = password
	return nil
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestServiceLoginIssuesTokenWhenConfigured(t *testing.T) {
	repo := newStubUserRepository(&models.User{UserID: "alice", Name: "Alice", Password: mustHashPassword(t, "pw")})
	cfg := config.JWTConfig{Secret: "secret", Issuer: "scancart", ExpirationMinutes: 30}

	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: cfg, PasswordConfig: testPasswordConfig})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	res, err := svc.Login(context.Background(), LoginRequest{UserID: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.UserID != "alice" {
		t.Fatalf("unexpected user %+v", res.User)
	}
	claims, err := pkgAuth.ParseAccessToken(cfg, res.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "alice" {
		t.Fatalf("unexpected token user %s", claims.UserID)
	}
	if len(repo.updated) != 0 {
		t.Fatalf("hashed password should not be rewritten")
	}
}

func TestServiceLoginWithoutSecretSkipsToken(t *testing.T) {
	repo := newStubUserRepository(&models.User{UserID: "alice", Password: mustHashPassword(t, "pw")})
	svc, _ := NewService(ServiceParams{UserRepo: repo})

	res, err := svc.Login(context.Background(), LoginRequest{UserID: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken != "" {
		t.Fatalf("expected no token without a secret")
	}
}

func TestServiceLoginUpgradesLegacyPlaintext(t *testing.T) {
	repo := newStubUserRepository(&models.User{UserID: "legacy", Password: "pw123"})
	svc, _ := NewService(ServiceParams{UserRepo: repo, PasswordConfig: testPasswordConfig})

	if _, err := svc.Login(context.Background(), LoginRequest{UserID: "legacy", Password: "pw123"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	upgraded, ok := repo.updated["legacy"]
	if !ok || !security.IsHashed(upgraded) {
		t.Fatalf("expected legacy password to be rehashed, got %q", upgraded)
	}
}

func TestServiceLoginLogsFailedLegacyUpgrade(t *testing.T) {
	repo := newStubUserRepository(&models.User{UserID: "legacy", Password: "pw123"})
	repo.updateErr = errors.New("db down")
	var buf bytes.Buffer
	logg := logger.New(logger.Options{Output: &buf, Format: "json"})
	svc, _ := NewService(ServiceParams{UserRepo: repo, PasswordConfig: testPasswordConfig, Logger: logg})

	if _, err := svc.Login(context.Background(), LoginRequest{UserID: "legacy", Password: "pw123"}); err != nil {
		t.Fatalf("login must survive a failed upgrade: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "auth.legacy_password_upgrade_failed") || !strings.Contains(out, "db down") {
		t.Fatalf("expected warn log with error, got %q", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("expected warn level, got %q", out)
	}
}

func TestServiceLoginFailures(t *testing.T) {
	repo := newStubUserRepository(&models.User{UserID: "alice", Password: mustHashPassword(t, "pw")})
	svc, _ := NewService(ServiceParams{UserRepo: repo})

	tests := []struct {
		name string
		req  LoginRequest
		code pkgerrors.Code
		msg  string
	}{
		{name: "missing password", req: LoginRequest{UserID: "alice"}, code: pkgerrors.CodeValidation, msg: MissingCredentialsMessage},
		{name: "missing user", req: LoginRequest{Password: "pw"}, code: pkgerrors.CodeValidation, msg: MissingCredentialsMessage},
		{name: "unknown user", req: LoginRequest{UserID: "bob", Password: "pw"}, code: pkgerrors.CodeUnauthorized, msg: InvalidCredentialsMessage},
		{name: "wrong password", req: LoginRequest{UserID: "alice", Password: "nope"}, code: pkgerrors.CodeUnauthorized, msg: InvalidCredentialsMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != tt.code {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
			if typed.Message() != tt.msg {
				t.Fatalf("expected message %q, got %q", tt.msg, typed.Message())
			}
		})
	}
}

func TestServiceLoginRepositoryFailureIsInternal(t *testing.T) {
	repo := newStubUserRepository()
	repo.findErr = errors.New("db down")
	svc, _ := NewService(ServiceParams{UserRepo: repo})

	_, err := svc.Login(context.Background(), LoginRequest{UserID: "alice", Password: "pw"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestNewServiceRequiresRepository(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error without repository")
	}
}

package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/scancart-backend/pkg/db"
	"github.com/angelmondragon/scancart-backend/pkg/db/dbtest"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, CreateUserDTO{
		UserID:       "alice",
		Name:         "Alice",
		Birthdate:    &birth,
		Email:        "alice@example.com",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID != "alice" {
		t.Fatalf("unexpected user id %s", created.UserID)
	}

	found, err := repo.FindByID(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Name != "Alice" || found.Password != "hash" {
		t.Fatalf("unexpected user %+v", found)
	}
	if dto := FromModel(found); dto.Email != "alice@example.com" {
		t.Fatalf("unexpected dto %+v", dto)
	}

	if _, err := repo.FindByID(ctx, "bob"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRepositoryDuplicateIsUniqueViolation(t *testing.T) {
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	if _, err := repo.Create(ctx, CreateUserDTO{UserID: "alice", PasswordHash: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(ctx, CreateUserDTO{UserID: "alice", PasswordHash: "y"})
	if !db.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestRepositoryUpdatePassword(t *testing.T) {
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	if _, err := repo.Create(ctx, CreateUserDTO{UserID: "alice", PasswordHash: "plain"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.UpdatePassword(ctx, "alice", "$argon2id$new"); err != nil {
		t.Fatalf("update: %v", err)
	}
	found, err := repo.FindByID(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Password != "$argon2id$new" {
		t.Fatalf("password not updated: %s", found.Password)
	}
}

package security_test

import (
	"testing"

	"github.com/angelmondragon/scancart-backend/pkg/config"
	"github.com/angelmondragon/scancart-backend/pkg/security"
)

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}

	hash, err := security.HashPassword("very-secure-password", cfg)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty string")
	}

	ok, err := security.VerifyPassword("very-secure-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("bogus-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if _, err := security.VerifyPassword("irrelevant", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestCheckPasswordHandlesLegacyPlaintext(t *testing.T) {
	ok, err := security.CheckPassword("pw123", "pw123")
	if err != nil || !ok {
		t.Fatalf("expected plaintext match, got ok=%v err=%v", ok, err)
	}
	ok, err = security.CheckPassword("pw124", "pw123")
	if err != nil || ok {
		t.Fatalf("expected plaintext mismatch, got ok=%v err=%v", ok, err)
	}
	if ok, _ := security.CheckPassword("", ""); ok {
		t.Fatal("empty stored credential must never match")
	}
}

func TestCheckPasswordUsesArgonForHashes(t *testing.T) {
	cfg := config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 8, ArgonKeyLen: 16}
	hash, err := security.HashPassword("pw123", cfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !security.IsHashed(hash) {
		t.Fatalf("expected argon2id prefix, got %s", hash)
	}
	ok, err := security.CheckPassword("pw123", hash)
	if err != nil || !ok {
		t.Fatalf("expected hashed match, got ok=%v err=%v", ok, err)
	}
	if ok, _ := security.CheckPassword(hash, hash); ok {
		t.Fatal("the hash itself must not authenticate")
	}
}

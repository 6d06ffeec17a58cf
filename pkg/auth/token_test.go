package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/scancart-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "scancart",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: "alice"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != "alice" {
		t.Fatalf("expected user_id alice, got %s", claims.UserID)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject alice, got %s", claims.Subject)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("issuer mismatch: %s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatalf("expected generated jti")
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != 30*time.Minute {
		t.Fatalf("unexpected ttl %s", got)
	}
}

func TestMintAccessTokenValidatesInput(t *testing.T) {
	now := time.Now()
	if _, err := MintAccessToken(config.JWTConfig{}, now, AccessTokenPayload{UserID: "u"}); err == nil {
		t.Fatal("expected missing secret error")
	}
	if _, err := MintAccessToken(testJWTConfig(), now, AccessTokenPayload{UserID: "  "}); err == nil {
		t.Fatal("expected missing user id error")
	}
}

func TestParseAccessTokenRejectsTampering(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: "alice"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature failure with a different secret")
	}

	otherIssuer := cfg
	otherIssuer.Issuer = "someone-else"
	if _, err := ParseAccessToken(otherIssuer, token); err == nil {
		t.Fatal("expected issuer mismatch")
	}

	parts := strings.Split(token, ".")
	if _, err := ParseAccessToken(cfg, parts[0]+"."+parts[1]+".bogus"); err == nil {
		t.Fatal("expected error for corrupted signature")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{UserID: "alice"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

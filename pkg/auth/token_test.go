package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hiddenspringfield/shop-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "hidden-springfield",
		ExpirationMinutes: 1440,
	}
}

func TestMintAndParseAdminToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()

	token, expiresAt, err := MintAdminToken(cfg, now, AdminTokenPayload{Username: "admin", Source: "config"})
	if err != nil {
		t.Fatalf("mint admin token: %v", err)
	}
	if want := now.Add(24 * time.Hour); !expiresAt.Equal(want) {
		t.Fatalf("expected expiry %s, got %s", want, expiresAt)
	}

	claims, err := ParseAdminToken(cfg, token)
	if err != nil {
		t.Fatalf("parse admin token: %v", err)
	}
	if claims.Username != "admin" || claims.Subject != "admin" {
		t.Fatalf("unexpected subject %q/%q", claims.Username, claims.Subject)
	}
	if claims.Source != "config" {
		t.Fatalf("unexpected source %q", claims.Source)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, _, err := MintAdminToken(cfg, time.Now().Add(-48*time.Hour), AdminTokenPayload{Username: "admin"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAdminToken(cfg, token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseAdminTokenRejectsWrongSecretAndIssuer(t *testing.T) {
	cfg := testJWTConfig()
	token, _, err := MintAdminToken(cfg, time.Now(), AdminTokenPayload{Username: "admin"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAdminToken(other, token); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}

	other = cfg
	other.Issuer = "someone-else"
	if _, err := ParseAdminToken(other, token); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseAdminTokenRejectsOtherAlgorithms(t *testing.T) {
	cfg := testJWTConfig()
	claims := AdminClaims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAdminToken(cfg, signed); err == nil || !strings.Contains(err.Error(), "signing method") {
		t.Fatalf("expected signing method error, got %v", err)
	}
}

func TestMintAdminTokenValidatesInput(t *testing.T) {
	cfg := testJWTConfig()
	if _, _, err := MintAdminToken(cfg, time.Now(), AdminTokenPayload{Username: "  "}); err == nil {
		t.Fatal("expected blank username to fail")
	}
	cfg.Secret = ""
	if _, _, err := MintAdminToken(cfg, time.Now(), AdminTokenPayload{Username: "admin"}); err == nil {
		t.Fatal("expected missing secret to fail")
	}
}

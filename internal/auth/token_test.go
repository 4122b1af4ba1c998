package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	tok, err := issuer.Issue("u1", "admin", "ayda", "ayda@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := issuer.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "admin" || claims.Username != "ayda" || claims.Email != "ayda@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenExpired(t *testing.T) {
	// NewTokenIssuer floors non-positive TTLs, so force one in directly.
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	issuer.ttl = -time.Minute

	tok, err := issuer.Issue("u1", "user", "ayda", "ayda@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := issuer.Parse(tok); err == nil {
		t.Fatal("Parse accepted an expired token")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	a := NewTokenIssuer([]byte("secret-a"), time.Hour)
	b := NewTokenIssuer([]byte("secret-b"), time.Hour)

	tok, err := a.Issue("u1", "user", "ayda", "ayda@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := b.Parse(tok); err == nil {
		t.Fatal("Parse accepted a token signed with a different secret")
	}
}

func TestTokenGarbage(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	if _, err := issuer.Parse("not.a.token"); err == nil {
		t.Fatal("Parse accepted garbage")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}

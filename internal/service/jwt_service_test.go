package service

import (
	"testing"
	"time"

	"github.com/guessnica/guessnica-backend/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:            "user-1",
		Email:         "player@example.com",
		Role:          model.RoleUser,
		SecurityStamp: "stamp-1",
	}
}

func TestJwtRoundTrip(t *testing.T) {
	svc := NewJwtService("test-secret")

	resp, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "player@example.com" ||
		claims.Role != model.RoleUser || claims.SecurityStamp != "stamp-1" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestJwtRejectsWrongSecret(t *testing.T) {
	resp, err := NewJwtService("secret-a").GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJwtService("secret-b").ValidateToken(resp.Token); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
}

func TestJwtRejectsExpiredToken(t *testing.T) {
	svc := NewJwtService("test-secret").(*jwtService)
	issued := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return issued }
	resp, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(tokenLifetime + time.Minute) }
	if _, err := svc.ValidateToken(resp.Token); err == nil {
		t.Error("expired token must be rejected")
	}

	svc.now = func() time.Time { return issued.Add(tokenLifetime - time.Minute) }
	if _, err := svc.ValidateToken(resp.Token); err != nil {
		t.Errorf("token still inside its lifetime was rejected: %v", err)
	}
}

func TestJwtRejectsGarbage(t *testing.T) {
	svc := NewJwtService("test-secret")
	for _, tok := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := svc.ValidateToken(tok); err == nil {
			t.Errorf("token %q must be rejected", tok)
		}
	}
}

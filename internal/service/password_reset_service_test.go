package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/guessnica/guessnica-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

var resetCodeRe = regexp.MustCompile(`\b(\d{6})\b`)

func newResetFixture(t *testing.T) (*passwordResetService, *memUserRepo, *memCodeRepo, *fakeEmailSender) {
	t.Helper()
	users := newMemUserRepo()
	codes := newMemCodeRepo()
	mail := &fakeEmailSender{}
	svc := NewPasswordResetService(users, codes, mail).(*passwordResetService)

	hash, err := bcrypt.GenerateFromPassword([]byte("OldPass1!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing seed password: %v", err)
	}
	err = users.Create(context.Background(), &model.User{
		ID:             "user-1",
		Email:          "player@example.com",
		PasswordHash:   string(hash),
		DisplayName:    "Player",
		Role:           model.RoleUser,
		EmailConfirmed: true,
		SecurityStamp:  uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return svc, users, codes, mail
}

func mailedResetCode(t *testing.T, mail *fakeEmailSender) string {
	t.Helper()
	sent, ok := mail.last()
	if !ok {
		t.Fatal("expected a reset code email")
	}
	m := resetCodeRe.FindStringSubmatch(sent.Body)
	if m == nil {
		t.Fatalf("no six digit code in email body: %q", sent.Body)
	}
	return m[1]
}

func TestPasswordResetFullFlow(t *testing.T) {
	svc, users, _, mail := newResetFixture(t)
	ctx := context.Background()

	if err := svc.RequestReset(ctx, "player@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := mailedResetCode(t, mail)

	before, _ := users.FindByID(ctx, "user-1")

	session, err := svc.VerifyResetCode(ctx, "player@example.com", code)
	if err != nil {
		t.Fatalf("verify code: %v", err)
	}
	if session.ResetSessionID == "" {
		t.Fatal("expected a reset session id")
	}

	if err := svc.SetNewPassword(ctx, "player@example.com", session.ResetSessionID, "NewPass2!"); err != nil {
		t.Fatalf("set new password: %v", err)
	}

	after, _ := users.FindByID(ctx, "user-1")
	if bcrypt.CompareHashAndPassword([]byte(after.PasswordHash), []byte("NewPass2!")) != nil {
		t.Error("new password does not verify")
	}
	if after.SecurityStamp == before.SecurityStamp {
		t.Error("security stamp must rotate so old tokens die")
	}

	// The session is single-use.
	err = svc.SetNewPassword(ctx, "player@example.com", session.ResetSessionID, "Another3!")
	if !errors.Is(err, ErrInvalidSession) {
		t.Errorf("reused session: got %v, want ErrInvalidSession", err)
	}
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	svc, _, _, mail := newResetFixture(t)

	if err := svc.RequestReset(context.Background(), "stranger@example.com"); err != nil {
		t.Errorf("unknown email must not error, got %v", err)
	}
	if _, ok := mail.last(); ok {
		t.Error("no email should be sent for an unknown address")
	}
}

func TestPasswordResetWrongCodeLockout(t *testing.T) {
	svc, _, _, mail := newResetFixture(t)
	ctx := context.Background()

	if err := svc.RequestReset(ctx, "player@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := mailedResetCode(t, mail)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	for i := 0; i < 5; i++ {
		if _, err := svc.VerifyResetCode(ctx, "player@example.com", wrong); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("attempt %d: got %v, want ErrInvalidCode", i+1, err)
		}
	}

	// Even the right code is refused once the attempt budget is spent.
	_, err := svc.VerifyResetCode(ctx, "player@example.com", code)
	if !errors.Is(err, ErrCodeLocked) {
		t.Errorf("locked code: got %v, want ErrCodeLocked", err)
	}
}

func TestPasswordResetExpiredCode(t *testing.T) {
	svc, _, _, mail := newResetFixture(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	if err := svc.RequestReset(ctx, "player@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := mailedResetCode(t, mail)

	svc.now = func() time.Time { return base.Add(16 * time.Minute) }
	_, err := svc.VerifyResetCode(ctx, "player@example.com", code)
	if !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expired code: got %v, want ErrInvalidCode", err)
	}
}

func TestPasswordResetExpiredSession(t *testing.T) {
	svc, _, _, mail := newResetFixture(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	if err := svc.RequestReset(ctx, "player@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	session, err := svc.VerifyResetCode(ctx, "player@example.com", mailedResetCode(t, mail))
	if err != nil {
		t.Fatalf("verify code: %v", err)
	}

	svc.now = func() time.Time { return base.Add(16 * time.Minute) }
	err = svc.SetNewPassword(ctx, "player@example.com", session.ResetSessionID, "NewPass2!")
	if !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expired session: got %v, want ErrInvalidSession", err)
	}
}

func TestPasswordResetNewRequestInvalidatesOldCode(t *testing.T) {
	svc, _, _, mail := newResetFixture(t)
	ctx := context.Background()

	if err := svc.RequestReset(ctx, "player@example.com"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	oldCode := mailedResetCode(t, mail)

	if err := svc.RequestReset(ctx, "player@example.com"); err != nil {
		t.Fatalf("second request: %v", err)
	}
	newCode := mailedResetCode(t, mail)

	if oldCode != newCode {
		if _, err := svc.VerifyResetCode(ctx, "player@example.com", oldCode); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("stale code: got %v, want ErrInvalidCode", err)
		}
	}
	if _, err := svc.VerifyResetCode(ctx, "player@example.com", newCode); err != nil {
		t.Errorf("fresh code rejected: %v", err)
	}
}

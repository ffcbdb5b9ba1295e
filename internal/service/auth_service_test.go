package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/guessnica/guessnica-backend/internal/dto"
)

func newAuthFixture(t *testing.T) (AuthService, *memUserRepo, *memCodeRepo, *fakeEmailSender) {
	t.Helper()
	users := newMemUserRepo()
	codes := newMemCodeRepo()
	mail := &fakeEmailSender{}
	svc := NewAuthService(users, codes, NewJwtService("test-secret"), mail, "https://guessnica.example.com")
	return svc, users, codes, mail
}

// confirmLinkParams pulls user_id and token out of the mailed link.
func confirmLinkParams(t *testing.T, body string) (string, string) {
	t.Helper()
	idx := strings.Index(body, "https://")
	if idx < 0 {
		t.Fatalf("no confirmation link in email body: %q", body)
	}
	u, err := url.Parse(strings.Fields(body[idx:])[0])
	if err != nil {
		t.Fatalf("parsing confirmation link: %v", err)
	}
	return u.Query().Get("user_id"), u.Query().Get("token")
}

func TestRegisterConfirmLoginFlow(t *testing.T) {
	svc, _, _, mail := newAuthFixture(t)
	ctx := context.Background()

	req := dto.RegisterDTO{Email: "Player@Example.com", Password: "Haslo123!", DisplayName: "Player"}
	if err := svc.Register(ctx, req); err != nil {
		t.Fatalf("register: %v", err)
	}

	sent, ok := mail.last()
	if !ok {
		t.Fatal("expected a confirmation email")
	}
	if sent.To != "player@example.com" {
		t.Errorf("confirmation mailed to %q, want normalized address", sent.To)
	}

	// Login before confirmation is refused.
	_, err := svc.Login(ctx, dto.LoginDTO{Email: "player@example.com", Password: "Haslo123!"})
	if !errors.Is(err, ErrEmailNotConfirmed) {
		t.Errorf("pre-confirmation login: got %v, want ErrEmailNotConfirmed", err)
	}

	userID, token := confirmLinkParams(t, sent.Body)
	if err := svc.ConfirmEmail(ctx, userID, token); err != nil {
		t.Fatalf("confirm email: %v", err)
	}

	resp, err := svc.Login(ctx, dto.LoginDTO{Email: "player@example.com", Password: "Haslo123!"})
	if err != nil {
		t.Fatalf("login after confirmation: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a signed token")
	}

	me, err := svc.Me(ctx, userID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.DisplayName != "Player" || me.Email != "player@example.com" {
		t.Errorf("unexpected profile: %+v", me)
	}
}

func TestRegisterExistingEmailDoesNotLeak(t *testing.T) {
	svc, users, _, mail := newAuthFixture(t)
	ctx := context.Background()

	first := dto.RegisterDTO{Email: "taken@example.com", Password: "Haslo123!", DisplayName: "First"}
	if err := svc.Register(ctx, first); err != nil {
		t.Fatalf("first register: %v", err)
	}

	second := dto.RegisterDTO{Email: "taken@example.com", Password: "Other456!", DisplayName: "Second"}
	if err := svc.Register(ctx, second); err != nil {
		t.Errorf("duplicate register must succeed silently, got %v", err)
	}

	if len(users.rows) != 1 {
		t.Errorf("expected a single account, got %d", len(users.rows))
	}
	sent, _ := mail.last()
	if !strings.Contains(sent.Subject, "registration attempt") {
		t.Errorf("expected a registration-attempt notice, got subject %q", sent.Subject)
	}
}

func TestConfirmEmailRejectsWrongToken(t *testing.T) {
	svc, _, _, mail := newAuthFixture(t)
	ctx := context.Background()

	if err := svc.Register(ctx, dto.RegisterDTO{Email: "p@example.com", Password: "Haslo123!", DisplayName: "P"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	sent, _ := mail.last()
	userID, _ := confirmLinkParams(t, sent.Body)

	if err := svc.ConfirmEmail(ctx, userID, "not-the-token"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("wrong token: got %v, want ErrInvalidCode", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, mail := newAuthFixture(t)
	ctx := context.Background()

	if err := svc.Register(ctx, dto.RegisterDTO{Email: "p@example.com", Password: "Haslo123!", DisplayName: "P"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	sent, _ := mail.last()
	userID, token := confirmLinkParams(t, sent.Body)
	if err := svc.ConfirmEmail(ctx, userID, token); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	_, err := svc.Login(ctx, dto.LoginDTO{Email: "p@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "nobody@example.com", Password: "Haslo123!"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

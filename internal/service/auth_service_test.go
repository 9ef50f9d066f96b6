package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wellhouse/stockroom/internal/auth"
)

func newAuthService(t *testing.T) (*AuthService, *auth.Signal) {
	t.Helper()
	users := auth.NewKVUserStore(newMapKV())
	signal := auth.NewSignal()
	svc := NewAuthService(
		auth.NewPasswordAuthenticator(users),
		auth.NewJWTManager("test-secret", time.Hour),
		users,
		signal,
		discardLogger(),
	)
	return svc, signal
}

func TestAuthServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, signal := newAuthService(t)

	user, token, err := svc.SignUp(ctx, "rita@example.com", "Rita", "long-enough")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if current := signal.Current(); current == nil || current.ID != user.ID {
		t.Fatalf("expected signal to carry the new user, got %+v", current)
	}

	svc.LogOut()
	if signal.Current() != nil {
		t.Fatal("expected anonymous signal after logout")
	}

	resumed, err := svc.Resume(ctx, token)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if resumed.ID != user.ID {
		t.Errorf("resumed user %s, want %s", resumed.ID, user.ID)
	}
	if current := signal.Current(); current == nil || current.ID != user.ID {
		t.Error("expected signal restored by resume")
	}

	if _, err := svc.Resume(ctx, "not-a-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthServiceLogIn(t *testing.T) {
	ctx := context.Background()
	svc, signal := newAuthService(t)

	if _, _, err := svc.SignUp(ctx, "rita@example.com", "Rita", "long-enough"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	svc.LogOut()

	if _, _, err := svc.LogIn(ctx, "rita@example.com", "wrong-password"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if signal.Current() != nil {
		t.Error("failed login must not sign the user in")
	}

	user, _, err := svc.LogIn(ctx, "rita@example.com", "long-enough")
	if err != nil {
		t.Fatalf("LogIn: %v", err)
	}
	if current := signal.Current(); current == nil || current.ID != user.ID {
		t.Error("expected signal to carry the user after login")
	}
}

func TestAuthServiceUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	if _, err := svc.UpdateProfile(ctx, "Nobody", ""); !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for anonymous profile update, got %v", err)
	}

	if _, _, err := svc.SignUp(ctx, "rita@example.com", "Rita", "long-enough"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, "Rita R.", "https://example.com/rita.png")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.DisplayName != "Rita R." || updated.PhotoURL != "https://example.com/rita.png" {
		t.Errorf("unexpected profile: %+v", updated)
	}
	if got := svc.CurrentUser(); got.DisplayName != "Rita R." {
		t.Errorf("signal not updated, display name %q", got.DisplayName)
	}

	// Empty fields leave the current values alone.
	kept, err := svc.UpdateProfile(ctx, "", "")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if kept.DisplayName != "Rita R." {
		t.Errorf("empty update clobbered display name: %q", kept.DisplayName)
	}
}

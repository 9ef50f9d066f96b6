package auth

import (
	"context"
	"testing"
	"time"

	"github.com/wellhouse/stockroom/internal/models"
)

type mapKV struct {
	values map[string][]byte
}

func newMapKV() *mapKV { return &mapKV{values: make(map[string][]byte)} }

func (m *mapKV) Get(key string) ([]byte, bool, error) {
	value, ok := m.values[key]
	return value, ok, nil
}
func (m *mapKV) Set(key string, value []byte) error { m.values[key] = value; return nil }
func (m *mapKV) Delete(key string) error            { delete(m.values, key); return nil }

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	authenticator := NewPasswordAuthenticator(NewKVUserStore(newMapKV()))

	t.Run("register and authenticate", func(t *testing.T) {
		user, err := authenticator.Register(ctx, "ana@example.com", "Ana", "correct horse")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.ID == "" || user.Email != "ana@example.com" || user.DisplayName != "Ana" {
			t.Errorf("Unexpected user: %+v", user)
		}
		if user.PasswordHash == "correct horse" {
			t.Error("Expected password to be hashed")
		}

		back, err := authenticator.Authenticate(ctx, "ana@example.com", "correct horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if back.ID != user.ID {
			t.Errorf("Expected same user id, got %q vs %q", back.ID, user.ID)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		if _, err := authenticator.Authenticate(ctx, "ana@example.com", "wrong password"); err != ErrInvalidCredentials {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		if _, err := authenticator.Authenticate(ctx, "ghost@example.com", "whatever!"); err != ErrInvalidCredentials {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		if _, err := authenticator.Register(ctx, "ana@example.com", "Other", "long enough"); err != ErrEmailExists {
			t.Errorf("Expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("short password is rejected", func(t *testing.T) {
		if _, err := authenticator.Register(ctx, "bo@example.com", "Bo", "short"); err != ErrWeakPassword {
			t.Errorf("Expected ErrWeakPassword, got %v", err)
		}
	})
}

func TestKVUserStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewKVUserStore(newMapKV())

	user := models.NewUser("ana@example.com", "Ana", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user.DisplayName = "Ana B."
	user.PhotoURL = "https://example.com/ana.png"
	if err := store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	back, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if back.DisplayName != "Ana B." || back.PhotoURL != "https://example.com/ana.png" {
		t.Errorf("Expected updated profile, got %+v", back)
	}
	if back.PasswordHash != "hash" {
		t.Error("Expected password hash to survive updates")
	}
}

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)
	user := models.NewUser("ana@example.com", "Ana", "hash")

	t.Run("round-trip", func(t *testing.T) {
		token, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := manager.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != user.ID || claims.Email != user.Email {
			t.Errorf("Unexpected claims: %+v", claims)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		if _, err := manager.Validate("not.a.token"); err == nil {
			t.Error("Expected error for garbage token")
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := NewJWTManager("test-secret-key-32-bytes-long!!!", -time.Minute)
		token, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(token); err == nil {
			t.Error("Expected error for expired token")
		}
	})
}

func TestSignal(t *testing.T) {
	signal := NewSignal()
	user := models.NewUser("ana@example.com", "Ana", "hash")

	if signal.Current() != nil {
		t.Error("Expected anonymous initial state")
	}

	var seen []*models.User
	stop := signal.OnChange(func(u *models.User) { seen = append(seen, u) })

	signal.Set(user)
	signal.Set(nil)

	if signal.Current() != nil {
		t.Error("Expected anonymous state after sign-out")
	}
	if len(seen) != 2 || seen[0] != user || seen[1] != nil {
		t.Errorf("Expected [user, nil] transitions, got %v", seen)
	}

	stop()
	signal.Set(user)
	if len(seen) != 2 {
		t.Error("Expected no notifications after stop")
	}
}

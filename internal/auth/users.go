package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/wellhouse/stockroom/internal/models"
	"github.com/wellhouse/stockroom/internal/storage"
)

const keyUsers = "auth-users"

var json = jsoniter.ConfigFastest

// Ensure KVUserStore implements UserStorage
var _ UserStorage = (*KVUserStore)(nil)

// KVUserStore persists user accounts as a JSON list in the local key-value
// store. The account registry is device-local either way, so it shares the
// store the anonymous inventory lives in.
type KVUserStore struct {
	mu sync.Mutex
	kv storage.KV
}

// NewKVUserStore creates a user store over kv.
func NewKVUserStore(kv storage.KV) *KVUserStore {
	return &KVUserStore{kv: kv}
}

// CreateUser appends a new account; the email must be unused.
func (s *KVUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrEmailExists
		}
	}
	return s.save(append(users, *user))
}

// GetUserByEmail looks up an account by email, case-insensitively.
func (s *KVUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			found := user
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetUserByID looks up an account by id.
func (s *KVUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.ID == id {
			found := user
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

// UpdateUser replaces the stored account with the same id.
func (s *KVUserStore) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			return s.save(users)
		}
	}
	return ErrUserNotFound
}

// storedUser carries the password hash, which models.User keeps out of its
// own JSON encoding.
type storedUser struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func (s *KVUserStore) load() ([]models.User, error) {
	raw, ok, err := s.kv.Get(keyUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to read user registry: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var stored []storedUser
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode user registry: %w", err)
	}

	users := make([]models.User, len(stored))
	for i, su := range stored {
		users[i] = su.User
		users[i].PasswordHash = su.PasswordHash
	}
	return users, nil
}

func (s *KVUserStore) save(users []models.User) error {
	stored := make([]storedUser, len(users))
	for i, user := range users {
		stored[i] = storedUser{User: user, PasswordHash: user.PasswordHash}
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode user registry: %w", err)
	}
	if err := s.kv.Set(keyUsers, raw); err != nil {
		return fmt.Errorf("failed to write user registry: %w", err)
	}
	return nil
}

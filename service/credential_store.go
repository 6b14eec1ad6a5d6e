package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialStore verifies username/password pairs against an in-memory table
// fixed at construction. Passwords are only kept as bcrypt hashes.
type CredentialStore struct {
	hashes map[string][]byte
	// dummy is compared against for unknown users so both failure paths cost
	// one bcrypt comparison.
	dummy []byte
}

// NewCredentialStore hashes every password in users with the given bcrypt cost.
// A cost of 0 selects bcrypt.DefaultCost.
func NewCredentialStore(users map[string]string, cost int) (*CredentialStore, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	store := &CredentialStore{hashes: make(map[string][]byte, len(users))}
	for username, password := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", username, err)
		}
		store.hashes[username] = hash
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash dummy password: %w", err)
	}
	store.dummy = dummy
	return store, nil
}

// Verify reports whether username exists and password matches its entry.
func (s *CredentialStore) Verify(username, password string) bool {
	hash, ok := s.hashes[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

package registration

import (
	"sync"
	"time"

	"github.com/linesmerrill/training-calendar-api/models"
)

// PendingStore keeps pending registrations keyed by normalized email.
// Every method holds the lock for map work only, never across I/O.
type PendingStore struct {
	mu      sync.Mutex
	entries map[string]models.PendingRegistration
}

// NewPendingStore returns an empty store
func NewPendingStore() *PendingStore {
	return &PendingStore{entries: make(map[string]models.PendingRegistration)}
}

// Put inserts or replaces the entry for email.
func (s *PendingStore) Put(email string, rec models.PendingRegistration) {
	s.mu.Lock()
	s.entries[email] = rec
	s.mu.Unlock()
}

// Get returns a copy of the entry for email.
func (s *PendingStore) Get(email string) (models.PendingRegistration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.entries[email]
	return rec, ok
}

// Remove deletes the entry for email. Removing a missing entry is a no-op.
func (s *PendingStore) Remove(email string) {
	s.mu.Lock()
	delete(s.entries, email)
	s.mu.Unlock()
}

// IncrementAttempt bumps the wrong-code counter and returns the new count.
func (s *PendingStore) IncrementAttempt(email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.entries[email]
	if !ok {
		return 0, ErrNotFound
	}
	rec.AttemptCount++
	s.entries[email] = rec
	return rec.AttemptCount, nil
}

// Reissue swaps in a new code and expiry and resets the attempt counter.
// The updated entry is returned.
func (s *PendingStore) Reissue(email, code string, expiresAt time.Time) (models.PendingRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.entries[email]
	if !ok {
		return models.PendingRegistration{}, ErrNotFound
	}
	rec.Code = code
	rec.ExpiresAt = expiresAt
	rec.AttemptCount = 0
	s.entries[email] = rec
	return rec, nil
}

// Discard removes the entry for email only while it still carries code, so
// an entry replaced by a newer register or resend survives.
func (s *PendingStore) Discard(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.entries[email]
	if !ok || rec.Code != code {
		return false
	}
	delete(s.entries, email)
	return true
}

// Restore puts rec back unless something newer took its place.
func (s *PendingStore) Restore(rec models.PendingRegistration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[rec.Email]; ok {
		return false
	}
	s.entries[rec.Email] = rec
	return true
}

// Len returns the number of pending registrations
func (s *PendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

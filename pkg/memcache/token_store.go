package mem

import (
	"sync"
	"time"
)

// TokenStore keeps short-lived single-use tokens, e.g. password resets.
type TokenStore interface {
	Set(token string, subject string, ttl time.Duration)

	// Consume returns the subject for token and forgets it. Returns "" if missing or expired.
	Consume(token string) string

	Peek(token string) (string, bool)
}

type entry struct {
	subject   string
	expiresAt time.Time
}

type ResetTokens struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *ResetTokens) Set(token string, subject string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.data[token] = entry{
		subject:   subject,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *ResetTokens) Consume(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[token]
	if !ok {
		return ""
	}
	delete(s.data, token)
	if s.now().After(e.expiresAt) {
		return ""
	}
	return e.subject
}

func (s *ResetTokens) Peek(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[token]
	if !ok || s.now().After(e.expiresAt) {
		return "", false
	}
	return e.subject, true
}

func (s *ResetTokens) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// sweepLocked drops expired entries; callers hold mu.
func (s *ResetTokens) sweepLocked() {
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}

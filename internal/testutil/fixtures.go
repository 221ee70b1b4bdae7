package testutil

import (
	"time"

	"github.com/alexanderramin/focus/internal/domain"
	"github.com/google/uuid"
)

// Focus session options
type FocusSessionOption func(*domain.FocusSession)

func WithCompletedAt(t time.Time) FocusSessionOption {
	return func(s *domain.FocusSession) {
		s.CompletedAt = t
	}
}

func NewTestFocusSession(opts ...FocusSessionOption) *domain.FocusSession {
	now := time.Now().UTC()
	s := &domain.FocusSession{
		ID:          uuid.New().String(),
		CompletedAt: now,
		CreatedAt:   now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

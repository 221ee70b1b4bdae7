package service

import (
	"context"
	"time"

	"github.com/alexanderramin/focus/internal/domain"
)

type HistoryService interface {
	// Record stores a completed countdown.
	Record(ctx context.Context, completedAt time.Time) (*domain.FocusSession, error)
	// ListRecent returns sessions completed in the last days days, newest first.
	ListRecent(ctx context.Context, days int) ([]*domain.FocusSession, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type PreferenceService interface {
	TimerVisible(ctx context.Context) (bool, error)
	SetTimerVisible(ctx context.Context, visible bool) error
	// ToggleTimerVisible flips the flag and returns the new value.
	ToggleTimerVisible(ctx context.Context) (bool, error)
}

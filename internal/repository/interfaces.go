package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/focus/internal/domain"
)

// SettingsRepo is a durable string-keyed store. Get returns an error
// wrapping ErrNotFound for missing keys; Delete of a missing key succeeds.
type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}

type FocusSessionRepo interface {
	Create(ctx context.Context, s *domain.FocusSession) error
	GetByID(ctx context.Context, id string) (*domain.FocusSession, error)
	ListSince(ctx context.Context, since time.Time) ([]*domain.FocusSession, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	Delete(ctx context.Context, id string) error
}

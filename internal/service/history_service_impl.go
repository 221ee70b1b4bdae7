package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/focus/internal/domain"
	"github.com/alexanderramin/focus/internal/repository"
	"github.com/google/uuid"
)

type historyService struct {
	sessions repository.FocusSessionRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewHistoryService(sessions repository.FocusSessionRepo, observers ...UseCaseObserver) HistoryService {
	return &historyService{
		sessions: sessions,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *historyService) Record(ctx context.Context, completedAt time.Time) (session *domain.FocusSession, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "record-focus-session", startedAt, err, nil)
	}()

	session = &domain.FocusSession{
		ID:          uuid.New().String(),
		CompletedAt: completedAt.UTC(),
		CreatedAt:   s.now().UTC(),
	}
	if err = s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *historyService) ListRecent(ctx context.Context, days int) (sessions []*domain.FocusSession, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"days": days}
	defer func() {
		fields["count"] = len(sessions)
		observe(ctx, s.observer, "list-focus-sessions", startedAt, err, fields)
	}()

	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	since := s.now().UTC().AddDate(0, 0, -days)
	return s.sessions.ListSince(ctx, since)
}

func (s *historyService) CountSince(ctx context.Context, since time.Time) (int, error) {
	return s.sessions.CountSince(ctx, since)
}

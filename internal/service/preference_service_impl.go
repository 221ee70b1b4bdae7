package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/alexanderramin/focus/internal/repository"
)

// KeyTimerVisible is the persisted dashboard visibility flag.
const KeyTimerVisible = "timerVisible"

type preferenceService struct {
	settings repository.SettingsRepo
	observer UseCaseObserver
}

func NewPreferenceService(settings repository.SettingsRepo, observers ...UseCaseObserver) PreferenceService {
	return &preferenceService{settings: settings, observer: useCaseObserverOrNoop(observers)}
}

// TimerVisible defaults to hidden; only the literal "true" shows the timer.
func (s *preferenceService) TimerVisible(ctx context.Context) (bool, error) {
	v, err := s.settings.Get(ctx, KeyTimerVisible)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

func (s *preferenceService) SetTimerVisible(ctx context.Context, visible bool) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "set-timer-visible", startedAt, err, map[string]any{"visible": visible})
	}()

	return s.settings.Set(ctx, KeyTimerVisible, strconv.FormatBool(visible))
}

func (s *preferenceService) ToggleTimerVisible(ctx context.Context) (bool, error) {
	visible, err := s.TimerVisible(ctx)
	if err != nil {
		return false, err
	}
	if err := s.SetTimerVisible(ctx, !visible); err != nil {
		return false, err
	}
	return !visible, nil
}

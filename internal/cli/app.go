package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/focus/internal/repository"
	"github.com/alexanderramin/focus/internal/service"
	"github.com/alexanderramin/focus/internal/timer"
	"github.com/rs/zerolog"
)

// App holds the stores and services used by CLI commands.
type App struct {
	// Settings holds the persisted countdown and preferences.
	Settings repository.SettingsRepo
	History  service.HistoryService
	Prefs    service.PreferenceService
	Clock    timer.Clock
	Logger   zerolog.Logger
	// Presets are minute values bound to the dashboard's number keys.
	Presets []int

	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// newEngine recovers the persisted countdown. Each command is its own
// process start, so it builds an engine and closes it when done.
func (a *App) newEngine(listeners ...timer.Listener) *timer.Engine {
	if a.History != nil {
		listeners = append(listeners, service.NewCompletionRecorder(a.History, a.Clock, a.Logger))
	}
	return timer.New(a.Settings, a.Clock,
		timer.WithListener(timer.Listeners(listeners...)),
		timer.WithLogger(a.Logger.With().Str("component", "timer").Logger()),
	)
}

// todayCount returns how many sessions completed since local midnight.
// History is decoration here, so errors only get logged.
func (a *App) todayCount(ctx context.Context) int {
	if a.History == nil {
		return 0
	}
	now := a.Clock.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	n, err := a.History.CountSince(ctx, midnight)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("counting today's sessions failed")
		return 0
	}
	return n
}

// timerVisible reads the visibility preference, defaulting to hidden.
func (a *App) timerVisible(ctx context.Context) bool {
	if a.Prefs == nil {
		return false
	}
	visible, err := a.Prefs.TimerVisible(ctx)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("reading timer visibility failed")
		return false
	}
	return visible
}

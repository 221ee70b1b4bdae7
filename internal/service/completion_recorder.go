package service

import (
	"context"
	"time"

	"github.com/alexanderramin/focus/internal/timer"
	"github.com/rs/zerolog"
)

const recordTimeout = 2 * time.Second

// CompletionRecorder is a timer.Listener that writes each live completion
// to the history. It only reacts to OnSessionComplete.
type CompletionRecorder struct {
	timer.NopListener

	history HistoryService
	clock   timer.Clock
	logger  zerolog.Logger
}

func NewCompletionRecorder(history HistoryService, clock timer.Clock, logger zerolog.Logger) *CompletionRecorder {
	return &CompletionRecorder{history: history, clock: clock, logger: logger}
}

// OnSessionComplete runs under the engine lock, so the insert is bounded by
// recordTimeout and failures are only logged.
func (r *CompletionRecorder) OnSessionComplete() {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	session, err := r.history.Record(ctx, r.clock.Now())
	if err != nil {
		r.logger.Warn().Err(err).Msg("recording focus session failed")
		return
	}
	r.logger.Info().Str("session_id", session.ID).Msg("focus session completed")
}

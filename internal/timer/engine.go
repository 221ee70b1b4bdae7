package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/focus/internal/repository"
	"github.com/rs/zerolog"
)

// DefaultDuration is the countdown length, in seconds, restored by Reset and
// after a completion.
const DefaultDuration = 25 * 60

// MaxPresetMinutes caps a single countdown at one day.
const MaxPresetMinutes = 24 * 60

const maxSeconds = MaxPresetMinutes * 60

const (
	tickInterval     = time.Second
	defaultIOTimeout = 2 * time.Second
)

var (
	// ErrAlreadyRunning is returned by Start when a countdown is active.
	ErrAlreadyRunning = errors.New("timer already running")

	// ErrInvalidPreset is returned by SetPreset for minutes outside
	// 1..MaxPresetMinutes.
	ErrInvalidPreset = errors.New("invalid preset minutes")
)

// ValidatePreset reports whether minutes is an acceptable countdown length.
func ValidatePreset(minutes int) error {
	if minutes <= 0 || minutes > MaxPresetMinutes {
		return fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidPreset, minutes, MaxPresetMinutes)
	}
	return nil
}

// State is the engine's externally visible state. A completed countdown
// collapses straight back to StateIdle.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	default:
		return "idle"
	}
}

// Snapshot is a consistent read of the engine state.
type Snapshot struct {
	State     State
	Remaining int       // seconds
	Deadline  time.Time // zero unless running
}

// Running reports whether the snapshot was taken mid-countdown.
func (s Snapshot) Running() bool { return s.State == StateRunning }

// Display renders Remaining as MM:SS.
func (s Snapshot) Display() string { return FormatRemaining(s.Remaining) }

// Store is the durable key-value dependency. Get must return an error
// wrapping repository.ErrNotFound for missing keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithListener sets the notification target. Use Listeners to fan out.
func WithListener(l Listener) Option {
	return func(e *Engine) {
		if l != nil {
			e.listener = l
		}
	}
}

// WithLogger sets the logger used for store failures.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithIOTimeout bounds each store call.
func WithIOTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.ioTimeout = d
		}
	}
}

// Engine is the countdown state machine. The persisted deadline is the
// source of truth while running; Remaining is always derived from it.
//
// All methods are safe for concurrent use. State changes, ticks and
// listener callbacks are serialized by a single mutex.
type Engine struct {
	mu        sync.Mutex
	store     Store
	clock     Clock
	listener  Listener
	logger    zerolog.Logger
	ioTimeout time.Duration

	remaining int
	running   bool
	deadline  time.Time

	// At most one tick subscription is live. gen is bumped on every cancel
	// so a tick already in flight from an old subscription is ignored.
	stopTick func()
	gen      uint64
}

// New builds an Engine and immediately reconciles it with the persisted
// state: a countdown whose deadline is still ahead resumes ticking, one
// whose deadline passed while no process was running is silently reset.
func New(store Store, clock Clock, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		clock:     clock,
		listener:  NopListener{},
		logger:    zerolog.Nop(),
		ioTimeout: defaultIOTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.recoverLocked()
	return e
}

func (e *Engine) recoverLocked() {
	now := e.clock.Now()

	e.remaining = DefaultDuration
	if raw, ok := e.load(KeyTimeLeft); ok {
		if n, valid := decodeSeconds(raw); valid {
			e.remaining = n
		} else {
			e.logger.Debug().Str("key", KeyTimeLeft).Str("value", raw).Msg("ignoring malformed timer value")
		}
	}

	rawRunning, _ := e.load(KeyRunning)
	wasRunning := decodeRunning(rawRunning)

	rawEnd, hasEnd := e.load(KeyEndTime)
	deadline, validEnd := decodeDeadline(rawEnd)
	if validEnd && deadline.Sub(now) > maxSeconds*time.Second {
		validEnd = false
	}

	switch {
	case wasRunning && validEnd && deadline.After(now):
		// Keep the stored deadline rather than now+remaining so repeated
		// restarts cannot accumulate rounding drift. Rounding matches tick,
		// so the first tick after a restart always moves the display on.
		e.remaining = roundSeconds(deadline.Sub(now))
		e.deadline = deadline
		e.running = true
		e.armTickLocked()
		e.listener.OnRunningStateChanged(true)
		e.displayLocked()

	case wasRunning && hasEnd:
		// Expired (or unreadable) while nobody was watching: catch up
		// silently, no completion notification.
		e.logger.Info().Str("deadline", rawEnd).Msg("countdown expired while not running; resetting")
		e.clearPersistedLocked()
		e.remaining = DefaultDuration
		e.displayLocked()

	default:
		if wasRunning || hasEnd {
			e.clearPersistedLocked()
		}
		e.displayLocked()
	}
}

// Start begins counting down from the current remaining time.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return ErrAlreadyRunning
	}
	if e.remaining <= 0 || e.remaining > maxSeconds {
		e.remaining = DefaultDuration
	}

	e.deadline = e.clock.Now().Add(time.Duration(e.remaining) * time.Second)
	e.running = true
	e.set(KeyRunning, encodeRunning(true))
	e.set(KeyEndTime, encodeDeadline(e.deadline))
	e.armTickLocked()

	e.listener.OnRunningStateChanged(true)
	e.displayLocked()
	return nil
}

// Pause stops the countdown, keeping the last computed remaining time.
// It is a no-op when idle.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.pauseLocked()
}

// Reset stops any countdown and restores DefaultDuration.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelTickLocked()
	e.running = false
	e.deadline = time.Time{}
	e.remaining = DefaultDuration
	e.clearPersistedLocked()

	e.listener.OnRunningStateChanged(false)
	e.displayLocked()
}

// SetPreset replaces the remaining time with minutes*60. A running
// countdown is paused first and is not restarted.
func (e *Engine) SetPreset(minutes int) error {
	if err := ValidatePreset(minutes); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		e.pauseLocked()
	}
	e.remaining = minutes * 60
	e.displayLocked()
	return nil
}

// Close stops ticking without touching persisted state, the way a process
// exit would. The next Engine built on the same store resumes the countdown.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelTickLocked()
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{Remaining: e.remaining}
	if e.running {
		s.State = StateRunning
		s.Deadline = e.deadline
	}
	return s
}

// IsRunning reports whether a countdown is active.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Display returns the remaining time as MM:SS.
func (e *Engine) Display() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return FormatRemaining(e.remaining)
}

func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || !e.running {
		return
	}

	e.remaining = roundSeconds(e.deadline.Sub(e.clock.Now()))
	e.displayLocked()
	if e.remaining <= 0 {
		e.completeLocked()
	}
}

func (e *Engine) completeLocked() {
	e.pauseLocked()
	e.listener.OnSessionComplete()
	e.remaining = DefaultDuration
	e.displayLocked()
}

func (e *Engine) pauseLocked() {
	e.cancelTickLocked()
	e.running = false
	e.deadline = time.Time{}
	e.set(KeyRunning, encodeRunning(false))
	e.remove(KeyEndTime)
	e.listener.OnRunningStateChanged(false)
}

func (e *Engine) armTickLocked() {
	e.cancelTickLocked()
	gen := e.gen
	e.stopTick = e.clock.Every(tickInterval, func() { e.tick(gen) })
}

func (e *Engine) cancelTickLocked() {
	if e.stopTick != nil {
		e.stopTick()
		e.stopTick = nil
	}
	e.gen++
}

// displayLocked persists the remaining time and pushes it to the listener.
func (e *Engine) displayLocked() {
	e.set(KeyTimeLeft, encodeSeconds(e.remaining))
	e.listener.OnDisplayUpdate(FormatRemaining(e.remaining))
}

func (e *Engine) clearPersistedLocked() {
	e.remove(KeyEndTime)
	e.set(KeyRunning, encodeRunning(false))
}

// Store failures are logged and swallowed: in-memory state stays
// authoritative for the life of the process.

func (e *Engine) load(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), e.ioTimeout)
	defer cancel()

	v, err := e.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			e.logger.Warn().Err(err).Str("key", key).Msg("timer state read failed")
		}
		return "", false
	}
	return v, true
}

func (e *Engine) set(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), e.ioTimeout)
	defer cancel()

	if err := e.store.Set(ctx, key, value); err != nil {
		e.logger.Warn().Err(err).Str("key", key).Msg("timer state write failed")
	}
}

func (e *Engine) remove(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), e.ioTimeout)
	defer cancel()

	if err := e.store.Delete(ctx, key); err != nil {
		e.logger.Warn().Err(err).Str("key", key).Msg("timer state delete failed")
	}
}

// roundSeconds rounds d to the nearest whole second, clamping at zero.
func roundSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second/2) / time.Second)
}

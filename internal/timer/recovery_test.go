package timer

import (
	"strconv"
	"testing"
	"time"

	"github.com/alexanderramin/focus/internal/timer/timertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// restart builds a fresh engine on an existing store, as a new process would.
func restart(t *testing.T, store *timertest.Store, now time.Time) (*Engine, *timertest.Clock, *timertest.Recorder) {
	t.Helper()
	clock := timertest.NewClock(now)
	rec := &timertest.Recorder{}
	e := New(store, clock, WithListener(rec))
	t.Cleanup(e.Close)
	return e, clock, rec
}

func TestRecovery_ResumesRunningCountdown(t *testing.T) {
	saved := t0
	store := timertest.NewStore(map[string]string{
		KeyTimeLeft: "50",
		KeyRunning:  "true",
		KeyEndTime:  ms(saved.Add(50 * time.Second)),
	})

	e, clock, rec := restart(t, store, saved.Add(20*time.Second))

	snap := e.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.GreaterOrEqual(t, snap.Remaining, 29)
	assert.LessOrEqual(t, snap.Remaining, 31)
	assert.True(t, saved.Add(50*time.Second).Equal(snap.Deadline), "the stored deadline stays authoritative")
	assert.Equal(t, 0, rec.Completions())
	assert.Equal(t, []bool{true}, rec.RunningChanges())
	assert.Equal(t, 1, clock.Active())
	assert.Equal(t, "00:30", rec.LastDisplay())
}

func TestRecovery_ResumedCountdownCompletesLive(t *testing.T) {
	saved := t0
	store := timertest.NewStore(map[string]string{
		KeyRunning: "true",
		KeyEndTime: ms(saved.Add(50 * time.Second)),
	})

	e, clock, rec := restart(t, store, saved.Add(20*time.Second))
	clock.Advance(29 * time.Second)
	assert.Equal(t, 0, rec.Completions())
	assert.Equal(t, 1, e.Snapshot().Remaining)

	clock.Advance(time.Second)
	assert.Equal(t, 1, rec.Completions())
	assert.Equal(t, Snapshot{State: StateIdle, Remaining: DefaultDuration}, e.Snapshot())
}

func TestRecovery_SubSecondRemainderRounds(t *testing.T) {
	tests := []struct {
		left time.Duration
		want int
	}{
		{10*time.Second + 900*time.Millisecond, 11},
		{10*time.Second + 400*time.Millisecond, 10},
		{10 * time.Second, 10},
	}
	for _, tt := range tests {
		store := timertest.NewStore(map[string]string{
			KeyRunning: "true",
			KeyEndTime: ms(t0.Add(tt.left)),
		})
		e, _, _ := restart(t, store, t0)
		assert.Equal(t, tt.want, e.Snapshot().Remaining, "left=%s", tt.left)
	}
}

func TestRecovery_FirstTickAdvancesDisplay(t *testing.T) {
	for _, frac := range []time.Duration{100 * time.Millisecond, 500 * time.Millisecond, 900 * time.Millisecond} {
		store := timertest.NewStore(map[string]string{
			KeyRunning: "true",
			KeyEndTime: ms(t0.Add(29*time.Second + frac)),
		})
		e, clock, rec := restart(t, store, t0)

		for i := 0; i < 5; i++ {
			clock.Advance(time.Second)
		}
		displays := rec.Displays()
		require.Len(t, displays, 6, "frac=%s", frac)
		for i := 1; i < len(displays); i++ {
			assert.Less(t, displays[i], displays[i-1], "frac=%s: %v", frac, displays)
		}
		assert.True(t, e.IsRunning())
	}
}

func TestRecovery_NeverShowsMoreThanContinuousRun(t *testing.T) {
	const total = 50
	for gap := 0; gap < total; gap++ {
		store := timertest.NewStore(map[string]string{
			KeyTimeLeft: strconv.Itoa(total),
			KeyRunning:  "true",
			KeyEndTime:  ms(t0.Add(total * time.Second)),
		})
		e, _, rec := restart(t, store, t0.Add(time.Duration(gap)*time.Second+250*time.Millisecond))

		got := e.Snapshot().Remaining
		continuous := total - gap
		assert.LessOrEqual(t, got, continuous, "gap=%d", gap)
		assert.GreaterOrEqual(t, got, continuous-1, "gap=%d", gap)
		assert.Equal(t, 0, rec.Completions(), "gap=%d", gap)
	}
}

func TestRecovery_ExpiredWhileAbsent_ResetsSilently(t *testing.T) {
	saved := t0
	store := timertest.NewStore(map[string]string{
		KeyTimeLeft: "120",
		KeyRunning:  "true",
		KeyEndTime:  ms(saved.Add(-5 * time.Second)),
	})

	e, clock, rec := restart(t, store, saved)

	assert.Equal(t, Snapshot{State: StateIdle, Remaining: DefaultDuration}, e.Snapshot())
	assert.Equal(t, 0, rec.Completions())
	assert.Empty(t, rec.RunningChanges())
	assert.Equal(t, 0, clock.Active())

	running, _ := store.Value(KeyRunning)
	assert.Equal(t, "false", running)
	_, hasEnd := store.Value(KeyEndTime)
	assert.False(t, hasEnd)
	left, _ := store.Value(KeyTimeLeft)
	assert.Equal(t, "1500", left)

	clock.Advance(time.Minute)
	assert.Equal(t, 0, rec.Completions())
}

func TestRecovery_DeadlineExactlyNowCountsAsExpired(t *testing.T) {
	store := timertest.NewStore(map[string]string{
		KeyRunning: "true",
		KeyEndTime: ms(t0),
	})

	e, _, rec := restart(t, store, t0)
	assert.False(t, e.IsRunning())
	assert.Equal(t, DefaultDuration, e.Snapshot().Remaining)
	assert.Equal(t, 0, rec.Completions())
}

func TestRecovery_PausedStateLoadsAsIs(t *testing.T) {
	store := timertest.NewStore(map[string]string{
		KeyTimeLeft: "754",
		KeyRunning:  "false",
	})

	e, clock, rec := restart(t, store, t0)

	assert.Equal(t, Snapshot{State: StateIdle, Remaining: 754}, e.Snapshot())
	assert.Equal(t, "12:34", rec.LastDisplay())
	assert.Equal(t, 0, clock.Active())
}

func TestRecovery_MalformedValuesSelfHeal(t *testing.T) {
	tests := []struct {
		name          string
		seed          map[string]string
		wantRemaining int
	}{
		{
			name:          "non-numeric time left",
			seed:          map[string]string{KeyTimeLeft: "abc"},
			wantRemaining: DefaultDuration,
		},
		{
			name:          "negative time left",
			seed:          map[string]string{KeyTimeLeft: "-20"},
			wantRemaining: DefaultDuration,
		},
		{
			name:          "zero time left",
			seed:          map[string]string{KeyTimeLeft: "0"},
			wantRemaining: DefaultDuration,
		},
		{
			name: "running flag that is not the literal true",
			seed: map[string]string{
				KeyTimeLeft: "300",
				KeyRunning:  "yes",
				KeyEndTime:  ms(t0.Add(time.Minute)),
			},
			wantRemaining: 300,
		},
		{
			name: "unparseable deadline",
			seed: map[string]string{
				KeyTimeLeft: "300",
				KeyRunning:  "true",
				KeyEndTime:  "tomorrow",
			},
			wantRemaining: DefaultDuration,
		},
		{
			name:          "time left beyond one day",
			seed:          map[string]string{KeyTimeLeft: "99999999999"},
			wantRemaining: DefaultDuration,
		},
		{
			name: "deadline more than one day ahead",
			seed: map[string]string{
				KeyTimeLeft: "300",
				KeyRunning:  "true",
				KeyEndTime:  ms(t0.Add(48 * time.Hour)),
			},
			wantRemaining: DefaultDuration,
		},
		{
			name: "running without deadline",
			seed: map[string]string{
				KeyTimeLeft: "300",
				KeyRunning:  "true",
			},
			wantRemaining: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := timertest.NewStore(tt.seed)
			e, clock, rec := restart(t, store, t0)

			assert.Equal(t, Snapshot{State: StateIdle, Remaining: tt.wantRemaining}, e.Snapshot())
			assert.Equal(t, 0, rec.Completions())
			assert.Equal(t, 0, clock.Active())

			left, ok := store.Value(KeyTimeLeft)
			require.True(t, ok)
			assert.Equal(t, strconv.Itoa(tt.wantRemaining), left)
			if running, ok := store.Value(KeyRunning); ok {
				assert.Equal(t, "false", running)
			}
			_, hasEnd := store.Value(KeyEndTime)
			assert.False(t, hasEnd, "stale deadline must be cleared")
		})
	}
}

func TestRecovery_AcrossRepeatedRestarts(t *testing.T) {
	store := timertest.NewStore(nil)
	first, clock, _ := restart(t, store, t0)
	require.NoError(t, first.SetPreset(1))
	require.NoError(t, first.Start())
	clock.Advance(10 * time.Second)
	first.Close()

	// Three short-lived processes, each opening a few hundred ms off the
	// second boundary, must all agree with the original deadline.
	at := t0.Add(10 * time.Second)
	for i := 0; i < 3; i++ {
		at = at.Add(5*time.Second + 300*time.Millisecond)
		e, _, _ := restart(t, store, at)
		require.True(t, e.IsRunning())
		assert.True(t, t0.Add(time.Minute).Equal(e.Snapshot().Deadline))
		assert.Equal(t, int(t0.Add(time.Minute).Sub(at)/time.Second), e.Snapshot().Remaining)
		e.Close()
	}
}

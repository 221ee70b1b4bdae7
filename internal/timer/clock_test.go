package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/focus/internal/timer/timertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestSystemClock_Every_StopEndsGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var fired atomic.Int32
	stop := SystemClock{}.Every(5*time.Millisecond, func() { fired.Add(1) })

	require.Eventually(t, func() bool { return fired.Load() >= 3 }, time.Second, time.Millisecond)
	stop()
	stop() // idempotent

	after := fired.Load()
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, fired.Load(), after+1, "at most one in-flight tick after stop")
}

func TestSystemClock_Every_StopFromInsideCallback(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var fired atomic.Int32
	var stop func()
	ready := make(chan struct{})
	stop = SystemClock{}.Every(2*time.Millisecond, func() {
		<-ready
		if fired.Add(1) == 1 {
			stop()
		}
	})
	close(ready)

	require.Eventually(t, func() bool { return fired.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestEngine_SystemClock_CloseLeavesNoTickGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	store := timertest.NewStore(nil)
	e := New(store, SystemClock{})
	require.NoError(t, e.Start())
	require.NoError(t, e.SetPreset(1))
	require.NoError(t, e.Start())
	e.Reset()
	require.NoError(t, e.Start())
	e.Close()

	assert.True(t, e.IsRunning(), "Close ends the process view, not the countdown")
}

func TestEngine_SystemClock_CountsDown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rec := &timertest.Recorder{}
	store := timertest.NewStore(map[string]string{KeyTimeLeft: "1"})
	e := New(store, SystemClock{}, WithListener(rec))
	defer e.Close()

	require.NoError(t, e.Start())
	require.Eventually(t, func() bool { return rec.Completions() == 1 }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, Snapshot{State: StateIdle, Remaining: DefaultDuration}, e.Snapshot())
}

package timertest

import "sync"

// Recorder is a timer.Listener that remembers every notification.
type Recorder struct {
	mu        sync.Mutex
	displays  []string
	running   []bool
	completes int
}

func (r *Recorder) OnDisplayUpdate(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.displays = append(r.displays, text)
}

func (r *Recorder) OnRunningStateChanged(running bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = append(r.running, running)
}

func (r *Recorder) OnSessionComplete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes++
}

// Completions returns the number of OnSessionComplete calls.
func (r *Recorder) Completions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completes
}

// Displays returns a copy of every displayed text, oldest first.
func (r *Recorder) Displays() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.displays...)
}

// LastDisplay returns the most recent display text, or "".
func (r *Recorder) LastDisplay() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.displays) == 0 {
		return ""
	}
	return r.displays[len(r.displays)-1]
}

// RunningChanges returns a copy of every running-state notification.
func (r *Recorder) RunningChanges() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.running...)
}

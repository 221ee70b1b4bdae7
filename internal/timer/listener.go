package timer

// Listener receives engine notifications. Callbacks are invoked while the
// engine holds its lock: they must return quickly and must not call back
// into the Engine.
type Listener interface {
	OnDisplayUpdate(text string)
	OnRunningStateChanged(running bool)
	// OnSessionComplete fires once per countdown that reaches zero while
	// this process is ticking. Expiries found during recovery never fire it.
	OnSessionComplete()
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) OnDisplayUpdate(string)     {}
func (NopListener) OnRunningStateChanged(bool) {}
func (NopListener) OnSessionComplete()         {}

// ListenerFuncs adapts optional funcs to a Listener; nil fields are skipped.
type ListenerFuncs struct {
	DisplayUpdate       func(text string)
	RunningStateChanged func(running bool)
	SessionComplete     func()
}

func (l ListenerFuncs) OnDisplayUpdate(text string) {
	if l.DisplayUpdate != nil {
		l.DisplayUpdate(text)
	}
}

func (l ListenerFuncs) OnRunningStateChanged(running bool) {
	if l.RunningStateChanged != nil {
		l.RunningStateChanged(running)
	}
}

func (l ListenerFuncs) OnSessionComplete() {
	if l.SessionComplete != nil {
		l.SessionComplete()
	}
}

type multiListener []Listener

// Listeners fans notifications out to ls in order. nil entries are dropped.
func Listeners(ls ...Listener) Listener {
	out := make(multiListener, 0, len(ls))
	for _, l := range ls {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

func (m multiListener) OnDisplayUpdate(text string) {
	for _, l := range m {
		l.OnDisplayUpdate(text)
	}
}

func (m multiListener) OnRunningStateChanged(running bool) {
	for _, l := range m {
		l.OnRunningStateChanged(running)
	}
}

func (m multiListener) OnSessionComplete() {
	for _, l := range m {
		l.OnSessionComplete()
	}
}

// Package timertest provides deterministic fakes for the timer package:
// a manually advanced Clock and an in-memory Store.
package timertest

import (
	"sort"
	"sync"
	"time"
)

// Clock is a fake timer.Clock. Time only moves when Advance is called, and
// due subscriptions fire synchronously on the calling goroutine.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	nextID int
	subs   map[int]*subscription
}

type subscription struct {
	id     int
	every  time.Duration
	next   time.Time
	fn     func()
	active bool
}

// NewClock returns a Clock starting at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now, subs: make(map[int]*subscription)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Every(d time.Duration, fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	s := &subscription{id: c.nextID, every: d, next: c.now.Add(d), fn: fn, active: true}
	c.subs[s.id] = s

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		s.active = false
		delete(c.subs, s.id)
	}
}

// Active reports how many subscriptions have not been stopped.
func (c *Clock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Advance moves time forward by d, firing every subscription that falls due
// in order. Callbacks run without the clock lock held, so they may stop
// their own subscription or register new ones.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		s := c.nextDueLocked(target)
		if s == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = s.next
		s.next = s.next.Add(s.every)
		fn := s.fn
		c.mu.Unlock()

		fn()
	}
}

// Set jumps to t without firing anything, like a process that was not
// running while the wall clock moved on.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
	for _, s := range c.subs {
		for !s.next.After(t) {
			s.next = s.next.Add(s.every)
		}
	}
}

func (c *Clock) nextDueLocked(target time.Time) *subscription {
	due := make([]*subscription, 0, len(c.subs))
	for _, s := range c.subs {
		if s.active && !s.next.After(target) {
			due = append(due, s)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next.Equal(due[j].next) {
			return due[i].id < due[j].id
		}
		return due[i].next.Before(due[j].next)
	})
	return due[0]
}

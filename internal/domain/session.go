package domain

import "time"

// FocusSession is one countdown that ran to zero while a process was
// watching it.
type FocusSession struct {
	ID          string
	CompletedAt time.Time
	CreatedAt   time.Time
}

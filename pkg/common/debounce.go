package common

import (
	"sync"
	"time"
)

type Timer interface {
	Stop() bool
}

// Clock abstracts timer creation so debounce behavior can be tested
// with virtual time.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func RealClock() Clock {
	return realClock{}
}

// Debouncer coalesces bursts of triggers: each Trigger cancels any
// pending call and schedules the new one delay after itself, so only
// the last trigger in a quiet window fires.
type Debouncer struct {
	mu    sync.Mutex
	clock Clock
	timer Timer
	delay time.Duration
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return NewDebouncerWithClock(delay, realClock{})
}

func NewDebouncerWithClock(delay time.Duration, clock Clock) *Debouncer {
	return &Debouncer{clock: clock, delay: delay}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.delay, fn)
}

func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

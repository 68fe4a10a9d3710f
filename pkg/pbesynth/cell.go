package pbesynth

import (
	"context"
	"sync"
)

// ValueCell is the Absent/Pending/Ready primitive spec §4.2 describes for
// all-eq, and is reused by the len/substr/prefix dispatchers for their own
// per-key broadcast channels. It is the Go-idiomatic rendering of
// original_source/src/forward/future/futcell.rs: instead of a hand-rolled
// Waker list, Ready is signalled by closing a channel, so any number of
// goroutines blocked in Await wake together (the same close-on-publish
// shape gokando's ChannelResultStream/constraint-bus channels use).
type ValueCell struct {
	mu    sync.Mutex
	ready chan struct{}
	expr  *Expr
	isSet bool
}

// NewValueCell returns an Absent cell.
func NewValueCell() *ValueCell {
	return &ValueCell{ready: make(chan struct{})}
}

// Set transitions Absent/Pending -> Ready, recording expr and waking any
// waiters. Returns false if the cell was already Ready (spec invariant 4:
// "Pending all-eq channels are fulfilled exactly once").
func (c *ValueCell) Set(e *Expr) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isSet {
		return false
	}
	c.expr = e
	c.isSet = true
	close(c.ready)
	return true
}

// TryGet returns the ready expr without blocking, and whether it was set.
func (c *ValueCell) TryGet() (*Expr, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expr, c.isSet
}

// Await blocks until the cell is Ready or ctx is cancelled, whichever
// happens first. If ctx was cancelled because the top task resolved
// (errSolved), the zero Expr is returned along with that error so callers
// can unwind without further work (spec §5 Cancellation).
func (c *ValueCell) Await(ctx context.Context) (*Expr, error) {
	c.mu.Lock()
	if c.isSet {
		e := c.expr
		c.mu.Unlock()
		return e, nil
	}
	ch := c.ready
	c.mu.Unlock()

	select {
	case <-ch:
		return c.expr, nil
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}

// LenChannel is the per-inner-length-vector broadcast primitive used by
// dispatch_len.go: unlike ValueCell it is republished on every new value
// of that length (not "exactly once"), so it is a plain condition
// variable over a growable slice rather than a one-shot cell, mirroring
// original_source/src/forward/data/len.rs's broadcast channel per key.
type LenChannel struct {
	mu      sync.Mutex
	values  []ExprValue
	waiters []chan struct{}
}

// NewLenChannel returns an empty LenChannel.
func NewLenChannel() *LenChannel {
	return &LenChannel{}
}

// Publish appends a newly observed (Expr, Value) pair of this channel's
// length and wakes all current waiters; they re-scan Values() themselves.
func (c *LenChannel) Publish(ev ExprValue) {
	c.mu.Lock()
	c.values = append(c.values, ev)
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()
	for _, w := range waiters {
		close(w)
	}
}

// Values returns a snapshot of everything published so far.
func (c *LenChannel) Values() []ExprValue {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ExprValue, len(c.values))
	copy(out, c.values)
	return out
}

// WaitForNext blocks until Publish is called again or ctx is cancelled.
func (c *LenChannel) WaitForNext(ctx context.Context) error {
	c.mu.Lock()
	w := make(chan struct{})
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}

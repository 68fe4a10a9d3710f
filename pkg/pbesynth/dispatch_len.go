package pbesynth

import "sync"

// LenIndex maps per-row inner-length vectors (e.g. [2, 4, 3]) to the list
// of enumerated list-typed values having those lengths, with a broadcast
// channel per key (spec §4.2). Used by map deduction (ListDeducer) and by
// length-predicated decomposition (IntDeducer's length-bridge).
//
// Grounded on original_source/src/forward/data/len.rs.
type LenIndex struct {
	mu       sync.Mutex
	channels map[string]*LenChannel
}

// NewLenIndex returns an empty LenIndex.
func NewLenIndex() *LenIndex {
	return &LenIndex{channels: make(map[string]*LenChannel)}
}

// Update records a newly adopted list-typed value under its inner-length
// key and publishes it to that key's channel.
func (l *LenIndex) Update(expr *Expr, v Value) {
	lens := v.InnerLengths()
	if lens == nil {
		return
	}
	key := lenKey(lens)
	l.mu.Lock()
	ch, ok := l.channels[key]
	if !ok {
		ch = NewLenChannel()
		l.channels[key] = ch
	}
	l.mu.Unlock()
	ch.Publish(ExprValue{Expr: expr, Value: v})
}

// Channel returns the (possibly newly created) channel for a given
// inner-length vector, so a deducer can both snapshot current values and
// await future ones for the same key.
func (l *LenIndex) Channel(lens []int) *LenChannel {
	key := lenKey(lens)
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.channels[key]
	if !ok {
		ch = NewLenChannel()
		l.channels[key] = ch
	}
	return ch
}

package synthesis

import (
	"sync/atomic"
	"time"
)

// IDGenerator hands out order ids.
type IDGenerator interface {
	NextID() int64
}

// ClockIDs derives ids from the clock in Unix milliseconds. Ids never repeat
// or go backwards: a call in the same millisecond as the previous one (or
// after the clock stepped back) gets last+1.
type ClockIDs struct {
	now  func() time.Time
	last atomic.Int64
}

func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

func (c *ClockIDs) NextID() int64 {
	for {
		last := c.last.Load()
		next := c.now().UnixMilli()
		if next <= last {
			next = last + 1
		}
		if c.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// SequenceIDs counts up from a starting value. Useful for tests.
type SequenceIDs struct {
	n atomic.Int64
}

func NewSequenceIDs(start int64) *SequenceIDs {
	s := &SequenceIDs{}
	s.n.Store(start - 1)
	return s
}

func (s *SequenceIDs) NextID() int64 { return s.n.Add(1) }

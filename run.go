// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"context"
	"math/bits"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// DefaultLoopCapacity is the queue capacity NewLoop uses for capacity <= 0.
const DefaultLoopCapacity = 64

// Loop is a Bus decorator that delivers every event to the wrapped bus
// on a single designated goroutine: the one running Run, or calling
// TryDrain. Post may be called from any goroutine and never blocks.
//
// Posted events go into a bounded lock-free SPSC queue from lfq; the
// producer side is serialized by a mutex. When the queue is full, events
// spill into an overflow list that keeps FIFO order with the queue.
// Events are delivered in the order Post was called.
type Loop struct {
	next Bus
	cap  int

	mu       sync.Mutex // serializes producers
	q        lfq.SPSC[any]
	slot     any
	overflow []any

	draining atomix.Uint32
}

// NewLoop returns a Loop delivering to next. capacity is rounded up to
// a power of two, and is at least 2.
func NewLoop(next Bus, capacity int) *Loop {
	if capacity <= 0 {
		capacity = DefaultLoopCapacity
	}
	capacity = max(capacity, 2)
	l := &Loop{next: next, cap: 1 << bits.Len(uint(capacity-1))}
	l.q.Init(l.cap)
	return l
}

// Cap returns the capacity of the queue. Posts beyond it overflow.
func (l *Loop) Cap() int { return l.cap }

// Post implements Bus. It enqueues event for the draining goroutine.
func (l *Loop) Post(event any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	// Overflowed events are older than anything the queue can accept
	// now, so keep appending there until the drainer empties it.
	if len(l.overflow) == 0 {
		l.slot = event
		if err := l.q.Enqueue(&l.slot); err == nil {
			l.slot = nil
			return
		}
		l.slot = nil
	}
	l.overflow = append(l.overflow, event)
}

// TryDrain delivers every pending event to the wrapped bus on the
// calling goroutine and returns how many were delivered. It returns
// iox.ErrWouldBlock when nothing was pending.
//
// TryDrain and Run must not be called concurrently with each other.
func (l *Loop) TryDrain() (int, error) {
	if l.draining.Add(1) != 1 {
		panic("evcb: concurrent Loop drain")
	}
	defer l.draining.Store(0)

	n := 0
	for {
		v, err := l.q.Dequeue()
		if err != nil {
			break
		}
		l.next.Post(v)
		n++
	}

	// Producers may have refilled the queue and spilled again since the
	// loop above ended. With them held off, whatever is queued is older
	// than the overflow.
	var batch []any
	l.mu.Lock()
	if len(l.overflow) > 0 {
		for {
			v, err := l.q.Dequeue()
			if err != nil {
				break
			}
			batch = append(batch, v)
		}
		batch = append(batch, l.overflow...)
		l.overflow = nil
	}
	l.mu.Unlock()
	for _, v := range batch {
		l.next.Post(v)
		n++
	}

	if n == 0 {
		return 0, iox.ErrWouldBlock
	}
	return n, nil
}

// Run makes the calling goroutine the Loop's delivery goroutine until
// ctx is done, then returns ctx.Err(). Waits with adaptive backoff
// (iox.Backoff) while nothing is pending. Events still queued when Run
// returns stay queued for the next Run or TryDrain.
func (l *Loop) Run(ctx context.Context) error {
	var bo iox.Backoff
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := l.TryDrain(); err != nil {
			bo.Wait()
			continue
		}
		bo.Reset()
	}
}

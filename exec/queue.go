/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package exec

import (
	"sync"
)

// queue is a bounded FIFO byte buffer shared between a producer goroutine
// (push) and a consumer goroutine (pop). It tracks its own occupancy against
// a capacity and reports that occupancy to an optional flowGate so a single
// session can cap its combined memory use across several queues.
type queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	buf      []byte
	capacity int

	writeClosed bool
	aborted     bool

	gate *flowGate
}

func newQueue(capacity int, gate *flowGate) *queue {
	q := &queue{capacity: capacity, gate: gate}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// push appends p to the buffer, blocking while the buffer is at capacity.
// It returns false if the queue was closed or aborted before all of p could
// be accepted.
func (q *queue) push(p []byte) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(p) > 0 {
		if q.aborted || q.writeClosed {
			return false
		}
		free := q.capacity - len(q.buf)
		if free <= 0 {
			q.notFull.Wait()
			continue
		}
		n := free
		if n > len(p) {
			n = len(p)
		}
		q.buf = append(q.buf, p[:n]...)
		p = p[n:]
		if q.gate != nil {
			q.gate.add(int64(n))
		}
		q.notEmpty.Signal()
	}
	return true
}

// pop removes up to len(out) bytes, blocking until at least one byte is
// available, the queue is closed (with data still pending), or it is
// drained and closed (returns 0, false).
func (q *queue) pop(out []byte) (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.buf) == 0 {
		if q.aborted {
			return 0, false
		}
		if q.writeClosed {
			return 0, false
		}
		q.notEmpty.Wait()
	}

	n := copy(out, q.buf)
	q.buf = q.buf[n:]
	if q.gate != nil {
		q.gate.sub(int64(n))
	}
	q.notFull.Signal()
	return n, true
}

// closeWrite marks the queue as having no further producer input. Readers
// drain any remaining buffered bytes before observing EOF.
func (q *queue) closeWrite() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.writeClosed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// abort discards any buffered bytes and wakes every blocked push/pop
// immediately, used on fatal session termination.
func (q *queue) abort() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.gate != nil && len(q.buf) > 0 {
		q.gate.sub(int64(len(q.buf)))
	}
	q.buf = nil
	q.aborted = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

func (q *queue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

// Package semaphore bounds the number of concurrent async workers an
// aggregator (or any other caller) is allowed to spawn, optionally mirroring
// the active worker count onto an mpb progress bar.
package semaphore

import (
	"context"
	"sync/atomic"
)

// Semaphore limits concurrent workers and tracks their lifetime.
type Semaphore interface {
	// NewWorkerTry attempts to reserve a worker slot without blocking. It
	// returns false when the limiter is already at capacity.
	NewWorkerTry() bool

	// DeferWorker releases a worker slot reserved by NewWorkerTry.
	DeferWorker()

	// DeferMain releases resources held by the semaphore itself (its
	// optional progress bar), to be called once the owning loop exits.
	DeferMain()
}

type sem struct {
	ctx  context.Context
	slot chan struct{}
	cur  atomic.Int64
	bar  *progressBar
}

// New returns a Semaphore allowing at most max concurrent workers. When
// withProgress is true, the active worker count is mirrored onto an mpb bar.
func New(ctx context.Context, max int, withProgress bool) Semaphore {
	if max < 1 {
		max = 1
	}

	s := &sem{
		ctx:  ctx,
		slot: make(chan struct{}, max),
	}

	if withProgress {
		s.bar = newProgressBar(ctx, int64(max))
	}

	return s
}

func (s *sem) NewWorkerTry() bool {
	select {
	case s.slot <- struct{}{}:
		n := s.cur.Add(1)
		if s.bar != nil {
			s.bar.setCurrent(n)
		}
		return true
	default:
		return false
	}
}

func (s *sem) DeferWorker() {
	select {
	case <-s.slot:
		n := s.cur.Add(-1)
		if s.bar != nil {
			s.bar.setCurrent(n)
		}
	default:
	}
}

func (s *sem) DeferMain() {
	if s.bar != nil {
		s.bar.close()
	}
}

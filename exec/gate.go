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

import "sync"

// flowGate tracks the combined occupancy of every queue belonging to one
// session and implements pause/resume hysteresis: once the total crosses
// pauseAt, waitWhilePaused blocks the callers feeding those queues (the
// stream reader and the child's stdout/stderr pumps) until it drops back to
// or below resumeAt.
type flowGate struct {
	mu       sync.Mutex
	resumed  *sync.Cond
	total    int64
	pauseAt  int64
	resumeAt int64
	paused   bool
}

func newFlowGate(cfg FlowConfig) *flowGate {
	g := &flowGate{
		pauseAt:  cfg.pauseAt(),
		resumeAt: cfg.resumeAt(),
	}
	g.resumed = sync.NewCond(&g.mu)
	return g
}

func (g *flowGate) add(n int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.total += n
	if !g.paused && g.total >= g.pauseAt {
		g.paused = true
	}
}

func (g *flowGate) sub(n int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.total -= n
	if g.total < 0 {
		g.total = 0
	}
	if g.paused && g.total <= g.resumeAt {
		g.paused = false
		g.resumed.Broadcast()
	}
}

// waitWhilePaused blocks while the gate is over threshold, waking early if
// abortCh is closed. A watcher goroutine turns the abort channel into a
// Broadcast so the cond.Wait below can't outlive session termination.
func (g *flowGate) waitWhilePaused(abortCh <-chan struct{}) {
	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go func() {
		select {
		case <-abortCh:
			g.mu.Lock()
			g.resumed.Broadcast()
			g.mu.Unlock()
		case <-stopWatch:
		}
	}()

	g.mu.Lock()
	defer g.mu.Unlock()
	for g.paused {
		select {
		case <-abortCh:
			return
		default:
		}
		g.resumed.Wait()
	}
}

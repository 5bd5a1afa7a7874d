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

//go:build linux || darwin

package termio

import (
	"os"
	"os/signal"
	"syscall"
)

// SupportsWindowResize reports whether this platform can notify the
// process of a terminal resize asynchronously (SIGWINCH). Windows cannot;
// its console API requires polling instead.
func SupportsWindowResize() bool {
	return true
}

// ResizeWatcher delivers one notification per SIGWINCH until Stop is
// called.
type ResizeWatcher struct {
	ch chan os.Signal
}

// WatchResize starts watching for terminal resize signals.
func WatchResize() *ResizeWatcher {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	return &ResizeWatcher{ch: ch}
}

// C returns the channel a resize notification arrives on.
func (w *ResizeWatcher) C() <-chan os.Signal {
	return w.ch
}

// Stop releases the signal subscription.
func (w *ResizeWatcher) Stop() {
	signal.Stop(w.ch)
}

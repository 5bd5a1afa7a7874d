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

//go:build !linux && !darwin

package termio

import "os"

// SupportsWindowResize reports whether this platform can notify the
// process of a terminal resize asynchronously. Windows cannot: callers
// must poll ReadWindowSize themselves.
func SupportsWindowResize() bool {
	return false
}

// ResizeWatcher is a no-op placeholder on platforms with no async resize
// notification; its channel never fires.
type ResizeWatcher struct {
	ch chan os.Signal
}

// WatchResize returns a watcher whose channel never fires.
func WatchResize() *ResizeWatcher {
	return &ResizeWatcher{ch: make(chan os.Signal)}
}

// C returns the channel a resize notification arrives on (never, here).
func (w *ResizeWatcher) C() <-chan os.Signal {
	return w.ch
}

// Stop is a no-op.
func (w *ResizeWatcher) Stop() {}

/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package ipc

import (
	"context"
	"time"

	libstm "github.com/nabbar/golib/stream"
)

// Dial connects to path, retrying a busy endpoint with the given backoff
// schedule until it succeeds, ctx is done, or MaxRetries is exhausted.
func Dial(ctx context.Context, path string, b Backoff) (libstm.Stream, error) {
	delay := b.Initial
	attempt := 0

	for {
		c, err := dialOnce(ctx, path)
		if err == nil {
			return newConn(c), nil
		}

		if !isBusy(err) {
			return nil, mapErr(err)
		}

		attempt++
		if b.MaxRetries > 0 && attempt >= b.MaxRetries {
			return nil, mapErr(err)
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}

		delay = b.next(delay)
	}
}

// Listen exposes a raw net.Listener over the platform's IPC transport
// (Unix-domain socket, or named pipe on Windows); callers wrap each
// Accept() result with newConn.
func Listen(path string) (*Listener, error) {
	l, err := listenOnce(path)
	if err != nil {
		return nil, mapErr(err)
	}
	return &Listener{l: l}, nil
}

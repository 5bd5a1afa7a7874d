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

import "time"

// Backoff governs the retry schedule Dial uses when the endpoint reports a
// transient busy condition (ECONNREFUSED against a not-yet-listening Unix
// socket, or ERROR_PIPE_BUSY on the named-pipe backend).
type Backoff struct {
	Initial    time.Duration
	Factor     float64
	Ceiling    time.Duration
	MaxRetries int
}

// DefaultBackoff matches the fixed schedule named in the wrapper's
// construction contract: 10ms initial, doubling, capped at 5s.
func DefaultBackoff() Backoff {
	return Backoff{
		Initial:    10 * time.Millisecond,
		Factor:     2,
		Ceiling:    5 * time.Second,
		MaxRetries: 0, // 0 means retry until the caller's context is done
	}
}

func (b Backoff) next(cur time.Duration) time.Duration {
	d := time.Duration(float64(cur) * b.Factor)
	if d > b.Ceiling {
		d = b.Ceiling
	}
	return d
}

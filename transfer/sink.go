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

package transfer

import "io"

// Sink receives every byte that flows through the loop, in either
// direction, after CRLF translation but before any per-direction shaping
// delay. A Sink is an observer only: it is not in the critical path of
// correctness, and an error it returns is never propagated back into the
// loop.
//
// The output-to-file logger and hex dumper named as external collaborators
// are expected to be ordinary io.Writer implementations (os.File, or a
// wrapper that hex-encodes before writing); this package does not define
// either of them, only the seam they plug into.
type Sink = io.Writer

// writeSinks best-effort fans p out to every sink, swallowing write errors:
// a sink going bad (disk full on the capture file, closed hex-dump target)
// must never interrupt the transfer it is observing.
func writeSinks(sinks []Sink, p []byte) {
	if len(p) == 0 {
		return
	}
	for _, s := range sinks {
		if s == nil {
			continue
		}
		_, _ = s.Write(p)
	}
}

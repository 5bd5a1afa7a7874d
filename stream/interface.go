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

package stream

// Stream is the capability set every connection variant exposes. A Stream
// is single-owner: ownership is transferred into whatever consumes it (the
// transfer loop, the exec session) and that consumer is responsible for
// exactly one Close.
type Stream interface {
	// Read fills buf with available data. A return of (0, nil) signals an
	// orderly half-close from the peer; callers must not treat it as an
	// error.
	Read(buf []byte) (int, error)

	// Write sends buf. A short write (n < len(buf)) with a nil error
	// requires the caller to retry the remainder; it is not itself an
	// error condition.
	Write(buf []byte) (int, error)

	// Close releases the underlying resource. It is idempotent: a second
	// call is a no-op that returns nil. Where the variant's protocol
	// supports a graceful shutdown (TLS/DTLS/SRP close-notify), Close
	// attempts it on a best-effort basis before releasing the descriptor.
	Close() error

	// PollHandle returns the OS-level descriptor this Stream can be waited
	// on with a readiness primitive. For the Windows named-pipe IPC
	// variant this is a pipe handle, not a socket; callers must not assume
	// socket semantics from it.
	PollHandle() uintptr

	// Maintain performs opportunistic protocol housekeeping. It is called
	// by the transfer loop after every poll wakeup. Plain and crypto
	// streams treat it as a no-op; the telnet wrapper uses it to flush
	// queued NAWS/signal-translation bytes produced by out-of-band events.
	Maintain() error
}

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

package telnet

import (
	"sync"

	libstm "github.com/nabbar/golib/stream"
	libtel "github.com/nabbar/golib/telnet"
)

// conn adapts a telnet.Engine to the stream.Stream contract, wrapping an
// underlying raw stream (plain or TLS).
type conn struct {
	under libstm.Stream
	eng   *libtel.Engine

	mu   sync.Mutex
	pend []byte
}

// New wraps under with a telnet protocol engine. termType is advertised on
// TERMINAL-TYPE negotiation; winFunc, if non-nil, is consulted on Maintain
// after RequestResize to emit a NAWS subnegotiation; signalTranslate enables
// local-signal-to-IAC translation.
func New(under libstm.Stream, termType string, winFunc libtel.WindowFunc, signalTranslate bool) libstm.Stream {
	e := libtel.New(termType, winFunc, signalTranslate)
	e.InitialNegotiate()

	c := &conn{under: under, eng: e}
	_ = c.flush()

	return c
}

// RequestResize forwards a window-resize notification to the underlying
// engine; the NAWS subnegotiation itself is emitted on the next Maintain.
func (c *conn) RequestResize() {
	c.eng.RequestResize()
}

// Signal forwards a local signal for IAC translation.
func (c *conn) Signal(s libtel.Signal) {
	c.eng.Signal(s)
	_ = c.flush()
}

func (c *conn) flush() error {
	out := c.eng.Outbound()
	if len(out) == 0 {
		return nil
	}
	_, err := c.under.Write(out)
	return err
}

// Read fills buf with application data extracted from the telnet stream,
// consuming and replying to any negotiation traffic along the way.
func (c *conn) Read(buf []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.pend) == 0 {
		raw := make([]byte, len(buf))
		n, err := c.under.Read(raw)

		if n > 0 {
			c.pend = append(c.pend, c.eng.Filter(raw[:n])...)
			if ferr := c.flush(); ferr != nil {
				return 0, ferr
			}
		}

		if err != nil {
			if len(c.pend) == 0 {
				return 0, err
			}
			break
		}
	}

	n := copy(buf, c.pend)
	c.pend = c.pend[n:]
	return n, nil
}

// Write sends application data, doubling any literal IAC byte per RFC 854
// before handing it to the underlying stream.
func (c *conn) Write(buf []byte) (int, error) {
	out := escapeIAC(buf)
	if _, err := c.under.Write(out); err != nil {
		return 0, err
	}
	return len(buf), nil
}

func (c *conn) Close() error {
	return c.under.Close()
}

func (c *conn) PollHandle() uintptr {
	return c.under.PollHandle()
}

// Maintain resolves any pending resize into a NAWS subnegotiation and
// flushes it, then delegates to the underlying stream's own Maintain.
func (c *conn) Maintain() error {
	if err := c.eng.Maintain(); err != nil {
		return err
	}
	if err := c.flush(); err != nil {
		return err
	}
	return c.under.Maintain()
}

func escapeIAC(b []byte) []byte {
	n := 0
	for _, c := range b {
		if c == libtel.IAC {
			n++
		}
	}
	if n == 0 {
		return b
	}

	out := make([]byte, 0, len(b)+n)
	for _, c := range b {
		out = append(out, c)
		if c == libtel.IAC {
			out = append(out, libtel.IAC)
		}
	}
	return out
}

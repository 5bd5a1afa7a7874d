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

// Package plain wraps a connected io.ReadWriteCloser (a net.Conn, or any
// narrower socket-layer handle that only exposes Read/Write/Close) as a
// stream.Stream, translating reads/writes directly to the underlying
// primitives and performing no protocol work of its own.
package plain

import (
	"io"
	"sync/atomic"
	"syscall"

	libstm "github.com/nabbar/golib/stream"
)

type conn struct {
	c  io.ReadWriteCloser
	cl int32
}

// New wraps an already-connected io.ReadWriteCloser as a stream.Stream. The
// socket layer's own Client and Context types satisfy this directly, as
// does any net.Conn; PollHandle degrades to 0 when the concrete value
// doesn't also implement syscall.Conn.
func New(c io.ReadWriteCloser) libstm.Stream {
	return &conn{c: c}
}

func (p *conn) Read(buf []byte) (int, error) {
	n, err := p.c.Read(buf)
	if err != nil {
		return n, mapErr(err)
	}
	return n, nil
}

func (p *conn) Write(buf []byte) (int, error) {
	n, err := p.c.Write(buf)
	if err != nil {
		return n, mapErr(err)
	}
	return n, nil
}

func (p *conn) Close() error {
	if !atomic.CompareAndSwapInt32(&p.cl, 0, 1) {
		return nil
	}
	return p.c.Close()
}

// PollHandle returns the underlying file descriptor via syscall.RawConn,
// for readiness-wait primitives that want to poll the raw socket directly.
// Returns 0 when the connection type does not expose one.
func (p *conn) PollHandle() uintptr {
	sc, ok := p.c.(syscall.Conn)
	if !ok {
		return 0
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return 0
	}

	var fd uintptr
	_ = raw.Control(func(h uintptr) {
		fd = h
	})

	return fd
}

// Maintain is a no-op for plain connections: there is no protocol state to
// service between poll wakeups.
func (p *conn) Maintain() error {
	return nil
}

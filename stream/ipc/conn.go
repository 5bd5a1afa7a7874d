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
	"net"
	"sync/atomic"
	"syscall"

	libstm "github.com/nabbar/golib/stream"
)

type conn struct {
	c  net.Conn
	cl int32
}

func newConn(c net.Conn) libstm.Stream {
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

// PollHandle exposes the raw descriptor on platforms backed by a true
// syscall.Conn (Unix-domain sockets); the Windows named-pipe backend has
// no pollable descriptor and returns 0.
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
	_ = raw.Control(func(h uintptr) { fd = h })
	return fd
}

func (p *conn) Maintain() error {
	return nil
}

// Listener accepts IPC connections and wraps each into a stream.Stream.
type Listener struct {
	l net.Listener
}

func (l *Listener) Accept() (libstm.Stream, error) {
	c, err := l.l.Accept()
	if err != nil {
		return nil, mapErr(err)
	}
	return newConn(c), nil
}

func (l *Listener) Close() error {
	return l.l.Close()
}

func (l *Listener) Addr() net.Addr {
	return l.l.Addr()
}

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

package dtlsconn

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"github.com/pion/dtls/v2"

	libstm "github.com/nabbar/golib/stream"
)

// DefaultHandshakeTimeout bounds the DTLS handshake wall time; the
// construction contract gives TLS a flat 30s ceiling and DTLS roughly
// 50*RTT with loss tolerance, which in practice is bounded the same way
// via the context passed to the handshake.
const DefaultHandshakeTimeout = 30 * time.Second

type conn struct {
	c     *dtls.Conn
	cl    int32
	under net.Conn
}

func connectContext(timeout time.Duration) func() (context.Context, func()) {
	return func() (context.Context, func()) {
		return context.WithTimeout(context.Background(), timeout)
	}
}

// Client dials a DTLS client session over under (a connected net.PacketConn
// presented as net.Conn, e.g. from net.DialUDP).
func Client(under net.Conn, cfg *dtls.Config, timeout time.Duration) (libstm.Stream, error) {
	if timeout <= 0 {
		timeout = DefaultHandshakeTimeout
	}
	cfg.ConnectContextMaker = connectContext(timeout)

	c, err := dtls.Client(under, cfg)
	if err != nil {
		return nil, libstm.NewError(libstm.KindProtocol, err)
	}
	return &conn{c: c, under: under}, nil
}

// Server accepts a DTLS server session over under. The cookie exchange
// (RFC 6347 §4.2.1) is driven internally by pion's handshake state
// machine; callers that need a shared cookie secret across connections
// configure it via cfg before calling Server.
func Server(under net.Conn, cfg *dtls.Config, timeout time.Duration) (libstm.Stream, error) {
	if timeout <= 0 {
		timeout = DefaultHandshakeTimeout
	}
	cfg.ConnectContextMaker = connectContext(timeout)

	c, err := dtls.Server(under, cfg)
	if err != nil {
		return nil, libstm.NewError(libstm.KindProtocol, err)
	}
	return &conn{c: c, under: under}, nil
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

// Close sends a best-effort close-notify alert via the underlying
// connection's Close; DTLS has no reliable delivery so there is no second
// phase to await, unlike the TLS/SRP wrappers.
func (p *conn) Close() error {
	if !atomic.CompareAndSwapInt32(&p.cl, 0, 1) {
		return nil
	}
	return p.c.Close()
}

func (p *conn) PollHandle() uintptr {
	return 0
}

func (p *conn) Maintain() error {
	return nil
}

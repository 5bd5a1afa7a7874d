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

package tlsconn

import (
	"context"
	"crypto/tls"
	"net"
	"sync/atomic"
	"syscall"

	libstm "github.com/nabbar/golib/stream"
	libtls "github.com/nabbar/golib/certificates"
)

type closePhase int32

const (
	phaseOpen closePhase = iota
	phaseWriteClosed
	phaseClosed
)

type conn struct {
	c     *tls.Conn
	phase int32
}

// HandshakeClient wraps under in a TLS client session using cfg for the
// given serverName and completes the handshake before returning. The
// *tls.Conn it returns is itself a net.Conn, so a caller that needs to keep
// treating the connection as a net.Conn (socket/client/tcp's dial path,
// which stores it behind a net.Conn field) can do so directly instead of
// going through the Stream wrapper.
func HandshakeClient(ctx context.Context, under net.Conn, cfg libtls.TLSConfig, serverName string) (*tls.Conn, error) {
	tc := tls.Client(under, cfg.TLS(serverName))
	if err := tc.HandshakeContext(ctx); err != nil {
		return nil, libstm.NewError(libstm.KindProtocol, err)
	}
	return tc, nil
}

// HandshakeServer accepts a TLS server session over under using cfg and
// completes the handshake before returning.
func HandshakeServer(ctx context.Context, under net.Conn, cfg libtls.TLSConfig) (*tls.Conn, error) {
	ts := tls.Server(under, cfg.TLS(""))
	if err := ts.HandshakeContext(ctx); err != nil {
		return nil, libstm.NewError(libstm.KindProtocol, err)
	}
	return ts, nil
}

// Client dials a TLS client session over under using cfg for the given
// serverName, performing the handshake before returning it as a
// stream.Stream.
func Client(ctx context.Context, under net.Conn, cfg libtls.TLSConfig, serverName string) (libstm.Stream, error) {
	tc, err := HandshakeClient(ctx, under, cfg, serverName)
	if err != nil {
		return nil, err
	}
	return &conn{c: tc}, nil
}

// Server accepts a TLS server session over under using cfg, performing the
// handshake before returning it as a stream.Stream.
func Server(ctx context.Context, under net.Conn, cfg libtls.TLSConfig) (libstm.Stream, error) {
	ts, err := HandshakeServer(ctx, under, cfg)
	if err != nil {
		return nil, err
	}
	return &conn{c: ts}, nil
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

// Close performs a two-phase close-notify exchange: the first call sends
// this side's close-notify via CloseWrite and leaves the connection open
// for reading; the second call drains until the peer's close-notify (or
// any read error) arrives, then closes the underlying connection.
func (p *conn) Close() error {
	switch closePhase(atomic.LoadInt32(&p.phase)) {
	case phaseOpen:
		atomic.StoreInt32(&p.phase, int32(phaseWriteClosed))
		return p.c.CloseWrite()
	case phaseWriteClosed:
		atomic.StoreInt32(&p.phase, int32(phaseClosed))
		buf := make([]byte, 512)
		for {
			if _, err := p.c.Read(buf); err != nil {
				break
			}
		}
		return p.c.Close()
	default:
		return nil
	}
}

func (p *conn) PollHandle() uintptr {
	sc, ok := p.c.NetConn().(syscall.Conn)
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

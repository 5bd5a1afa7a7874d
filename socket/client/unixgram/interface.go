//go:build linux || darwin

/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package unixgram implements a socket.Client over a Unix domain datagram
// socket: lazy dial on Connect or Once, fire-and-forget Write semantics
// like the UDP client, since a datagram socket has no notion of an accepted
// peer or graceful half-close.
package unixgram

import (
	"context"
	"io"

	libtls "github.com/nabbar/golib/certificates"
	libsck "github.com/nabbar/golib/socket"
)

// ClientUnix is a client over a Unix domain datagram socket.
type ClientUnix interface {
	// Connect dials the socket path given to New.
	Connect(ctx context.Context) error

	// IsConnected reports whether the connection is currently established.
	IsConnected() bool

	// Once dials (unless already connected), writes request in full, then
	// hands the connection to responseHandler, if any, before closing it.
	// Unlike a stream client, Once never reads on the caller's behalf when
	// responseHandler is nil: a datagram socket has no natural EOF to wait
	// on.
	Once(ctx context.Context, request io.Reader, responseHandler func(io.Reader)) error

	io.Reader
	io.Writer

	// RegisterFuncError installs the callback notified of connection errors.
	RegisterFuncError(f libsck.FuncError)

	// RegisterFuncInfo installs the callback notified of connection state
	// changes.
	RegisterFuncInfo(f libsck.FuncInfo)

	// SetTLS is a no-op kept for interface parity with the other
	// transports: a Unix datagram socket carries no transport-level TLS.
	SetTLS(enabled bool, cfg libtls.TLSConfig, serverName string) error

	// Close closes the active connection.
	Close() error
}

// New builds a ClientUnix bound to socketPath, or returns nil if socketPath
// is empty. Dialing itself is deferred to Connect or Once.
func New(socketPath string) ClientUnix {
	if socketPath == "" {
		return nil
	}

	c := &cli{
		address: socketPath,
	}

	return c
}

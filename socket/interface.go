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

package socket

import (
	"context"
	"io"
	"net"
)

// Context is the per-connection handle passed to a HandlerFunc. It exposes
// just enough of the underlying net.Conn (plus the server's cancellation
// signal, as a context.Context) for a handler to read, write and tell when
// its peer is gone, without letting it reach into transport internals.
type Context interface {
	io.Reader
	io.Writer
	io.Closer
	context.Context

	// IsConnected reports whether the connection is still usable for I/O.
	IsConnected() bool

	// RemoteHost returns the peer address, formatted for logging.
	RemoteHost() string

	// LocalHost returns the local bound address, formatted for logging.
	LocalHost() string
}

// HandlerFunc processes one accepted (server) or dialed (client) connection.
// It owns ctx for the lifetime of the call: once it returns, the connection
// is torn down.
type HandlerFunc func(ctx Context)

// FuncError receives the non-nil errors surfaced by a Server or Client. It
// may be called concurrently from multiple connection goroutines.
type FuncError func(errs ...error)

// FuncInfo is notified of every ConnState transition a connection goes
// through, tagged with the local and remote addresses involved.
type FuncInfo func(local, remote net.Addr, state ConnState)

// Server accepts connections on a listening endpoint and dispatches each one
// to a HandlerFunc until Shutdown is called or Listen's context is canceled.
type Server interface {
	// RegisterFuncError installs the callback used to report background
	// errors (accept failures, per-connection I/O errors once filtered).
	RegisterFuncError(f FuncError)

	// RegisterFuncInfo installs the callback used to report ConnState
	// transitions for every connection the server handles.
	RegisterFuncInfo(f FuncInfo)

	// Listen opens the endpoint and blocks, accepting connections until ctx
	// is canceled or an unrecoverable error occurs.
	Listen(ctx context.Context) error

	// Shutdown stops accepting new connections and waits, up to ctx's
	// deadline, for in-flight handlers to finish.
	Shutdown(ctx context.Context) error

	// Listener reports the network and address actually bound by the last
	// successful Listen call, useful to recover the OS-assigned port after
	// listening on address ":0". It fails when the server is not currently
	// listening.
	Listener() (network string, address string, err error)
}

// Client dials a single remote endpoint and exposes it as a plain
// io.ReadWriteCloser once connected.
type Client interface {
	io.Reader
	io.Writer
	io.Closer

	// RegisterFuncError installs the callback used to report background
	// errors encountered after Connect returns.
	RegisterFuncError(f FuncError)

	// Connect dials the configured remote endpoint.
	Connect(ctx context.Context) error
}

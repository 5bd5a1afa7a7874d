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

// Package unixgram implements a socket.Server over a Unix domain datagram
// socket. Like UDP, it is connectionless: every datagram is dispatched to
// its own socket.HandlerFunc invocation, whose Context reads exactly that
// one datagram and writes replies back to its sender. Unlike UDP, the
// listening endpoint is a filesystem path whose permissions and group
// ownership are set once bound and whose file is removed on shutdown.
package unixgram

import (
	"net"

	libtls "github.com/nabbar/golib/certificates"
	libprm "github.com/nabbar/golib/file/perm"
	libsck "github.com/nabbar/golib/socket"
	sckcfg "github.com/nabbar/golib/socket/config"
)

// maxDatagramSize is the largest payload a single ReadFrom can return over a
// Unix datagram socket.
const maxDatagramSize = 65507

// ServerUnixGram receives datagrams on a Unix domain socket path and
// dispatches each one to the handler given to New.
type ServerUnixGram interface {
	libsck.Server

	// RegisterFuncInfoServer installs the callback notified of server-level
	// lifecycle events (listening, stopped).
	RegisterFuncInfoServer(f func(msg string))

	// RegisterSocket changes the socket path, file permissions and group
	// ownership applied by the next Listen call.
	RegisterSocket(path string, perm libprm.Perm, gid int32) error

	// SetTLS is a no-op kept for interface parity with the other
	// transports: a Unix datagram socket here carries no transport-level
	// TLS.
	SetTLS(enabled bool, cfg libtls.TLSConfig) error

	// IsRunning reports whether Listen is currently reading datagrams.
	IsRunning() bool

	// IsGone reports whether the server has not yet started, or has fully
	// stopped after a previous Listen call returned.
	IsGone() bool

	// OpenConnections always returns 0: a datagram socket is connectionless,
	// so there is no persistent per-peer state to count.
	OpenConnections() int64

	// Close stops reading immediately and removes the socket file;
	// in-flight handlers keep running until they return on their own.
	Close() error
}

// New validates cfg and builds a ServerUnixGram bound to cfg.Address. upd,
// when non-nil, is called once with the listening *net.UnixConn before the
// first datagram is read, letting callers tune socket options. handler
// processes every received datagram.
func New(upd func(net.Conn), handler libsck.HandlerFunc, cfg sckcfg.Server) (ServerUnixGram, error) {
	if handler == nil {
		return nil, ErrInvalidHandler
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &srv{
		upd:     upd,
		handler: handler,
		path:    cfg.Address,
		perm:    cfg.PermFile,
		gid:     cfg.GroupPerm,
	}
	s.gone.Store(true)

	return s, nil
}

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

// Package unix implements a socket.Server over a Unix domain socket
// listener: one accept loop dispatching every connection to a
// socket.HandlerFunc, with the socket file's permissions and group
// ownership set once bound and the file removed on shutdown.
package unix

import (
	"net"

	libtls "github.com/nabbar/golib/certificates"
	libprm "github.com/nabbar/golib/file/perm"
	libsck "github.com/nabbar/golib/socket"
	sckcfg "github.com/nabbar/golib/socket/config"
)

// ServerUnix listens on a Unix domain socket and dispatches every accepted
// connection to the handler given to New.
type ServerUnix interface {
	libsck.Server

	// RegisterFuncInfoServer installs the callback notified of server-level
	// lifecycle events (listening, stopped).
	RegisterFuncInfoServer(f func(msg string))

	// RegisterSocket changes the socket path, file permissions and group
	// ownership applied by the next Listen call.
	RegisterSocket(path string, perm libprm.Perm, gid int32) error

	// SetTLS is a no-op kept for interface parity with the other
	// transports: a Unix domain socket here carries no transport-level TLS.
	SetTLS(enabled bool, cfg libtls.TLSConfig) error

	// IsRunning reports whether Listen is currently accepting connections.
	IsRunning() bool

	// IsGone reports whether the server has not yet started, or has fully
	// stopped after a previous Listen call returned.
	IsGone() bool

	// OpenConnections returns the number of connections currently being
	// served.
	OpenConnections() int64

	// Close stops the listener immediately and removes the socket file;
	// in-flight handlers keep running until their connection is closed or
	// they return on their own.
	Close() error
}

// New validates cfg and builds a ServerUnix bound to cfg.Address. upd, when
// non-nil, is called on every accepted net.Conn before it reaches handler,
// letting callers tune socket options. handler processes each connection
// until it returns or the connection closes.
func New(upd func(net.Conn), handler libsck.HandlerFunc, cfg sckcfg.Server) (ServerUnix, error) {
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
		idle:    cfg.ConIdleTimeout,
	}
	s.gone.Store(true)

	return s, nil
}

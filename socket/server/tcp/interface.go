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

// Package tcp implements a socket.Server over a TCP listener: one accept
// loop dispatching every connection to a socket.HandlerFunc, with optional
// TLS wrapping and per-connection idle timeouts.
package tcp

import (
	"net"

	libtls "github.com/nabbar/golib/certificates"
	libsck "github.com/nabbar/golib/socket"
	sckcfg "github.com/nabbar/golib/socket/config"
)

// ServerTcp listens on a TCP endpoint and dispatches every accepted
// connection to the handler given to New.
type ServerTcp interface {
	libsck.Server

	// RegisterFuncInfoServer installs the callback notified of server-level
	// lifecycle events (listening, stopped), separate from RegisterFuncInfo
	// which tracks per-connection state transitions.
	RegisterFuncInfoServer(f func(msg string))

	// SetTLS switches TLS wrapping on or off for future Listen calls. It
	// fails when enabled is true and cfg carries no certificate.
	SetTLS(enabled bool, cfg libtls.TLSConfig) error

	// IsRunning reports whether Listen is currently accepting connections.
	IsRunning() bool

	// IsGone reports whether the server has not yet started, or has fully
	// stopped after a previous Listen call returned.
	IsGone() bool

	// OpenConnections returns the number of connections currently being
	// served.
	OpenConnections() int64

	// Close stops the listener immediately; in-flight handlers keep running
	// until their connection is closed or they return on their own.
	Close() error
}

// New validates cfg and builds a ServerTcp bound to cfg.Address. upd, when
// non-nil, is called on every accepted net.Conn before it reaches handler,
// letting callers tune socket options. handler processes each connection
// until it returns or the connection closes.
func New(upd func(net.Conn), handler libsck.HandlerFunc, cfg sckcfg.Server) (ServerTcp, error) {
	if cfg.Address == "" {
		return nil, ErrInvalidAddress
	}

	if handler == nil {
		return nil, ErrInvalidHandler
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &srv{
		upd:     upd,
		handler: handler,
		cfg:     cfg,
	}
	s.gone.Store(true)

	if cfg.TLS.Enabled {
		s.tlsEnabled = true
		s.tlsCfg = cfg.TLS.Config.New()
	}

	return s, nil
}

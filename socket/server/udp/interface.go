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

// Package udp implements a socket.Server over a UDP packet connection. UDP
// is connectionless: every datagram is dispatched to its own
// socket.HandlerFunc invocation, whose Context reads exactly that one
// datagram and writes replies back to its sender.
package udp

import (
	"net"

	libtls "github.com/nabbar/golib/certificates"
	libsck "github.com/nabbar/golib/socket"
	sckcfg "github.com/nabbar/golib/socket/config"
)

// maxDatagramSize is the largest UDP payload a single ReadFrom can return.
const maxDatagramSize = 65507

// ServerUdp receives datagrams on a UDP endpoint and dispatches each one to
// the handler given to New.
type ServerUdp interface {
	libsck.Server

	// RegisterFuncInfoServer installs the callback notified of server-level
	// lifecycle events (listening, stopped).
	RegisterFuncInfoServer(f func(msg string))

	// RegisterServer changes the address Listen binds to. It has no effect
	// on a Listen call already in progress.
	RegisterServer(address string) error

	// SetTLS is a no-op kept for interface parity with the other
	// transports: UDP here carries no transport-level TLS.
	SetTLS(enabled bool, cfg libtls.TLSConfig) error

	// IsRunning reports whether Listen is currently reading datagrams.
	IsRunning() bool

	// IsGone reports whether the server has not yet started, or has fully
	// stopped after a previous Listen call returned.
	IsGone() bool

	// OpenConnections always returns 0: UDP is connectionless, so there is
	// no persistent per-peer state to count.
	OpenConnections() int64

	// Close stops reading immediately; in-flight handlers keep running
	// until they return on their own.
	Close() error
}

// New validates cfg and builds a ServerUdp bound to cfg.Address. upd, when
// non-nil, is called once with the listening *net.UDPConn before the first
// datagram is read, letting callers tune socket options. handler processes
// every received datagram.
func New(upd func(net.Conn), handler libsck.HandlerFunc, cfg sckcfg.Server) (ServerUdp, error) {
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
		address: cfg.Address,
	}
	s.gone.Store(true)

	return s, nil
}

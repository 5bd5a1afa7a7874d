/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package server is the protocol-agnostic factory for this module's socket
// servers: it reads a config.Server's Network field and delegates to the
// matching server/tcp, server/udp, server/unix or server/unixgram
// constructor.
package server

import (
	"net"

	libsck "github.com/nabbar/golib/socket"
	sckcfg "github.com/nabbar/golib/socket/config"
	srvtcp "github.com/nabbar/golib/socket/server/tcp"
	srvudp "github.com/nabbar/golib/socket/server/udp"
)

// New validates cfg and returns a socket.Server for the protocol it names.
// upd, when non-nil, is called on every accepted/bound net.Conn before it
// reaches handler, letting callers tune socket options. handler processes
// each connection or datagram until it returns or the peer disconnects.
func New(upd func(net.Conn), handler libsck.HandlerFunc, cfg sckcfg.Server) (libsck.Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case cfg.Network.IsTCP():
		return srvtcp.New(upd, handler, cfg)
	case cfg.Network.IsUDP():
		return srvudp.New(upd, handler, cfg)
	case cfg.Network.IsUnix():
		return newUnixServer(upd, handler, cfg)
	default:
		return nil, sckcfg.ErrInvalidProtocol
	}
}

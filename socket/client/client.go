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

// Package client is the protocol-agnostic factory for this module's socket
// clients: it reads a config.Client's Network field and delegates to the
// matching client/tcp, client/udp, client/unix or client/unixgram
// constructor, wiring TLS when requested.
package client

import (
	"net"

	libptc "github.com/nabbar/golib/network/protocol"
	libsck "github.com/nabbar/golib/socket"
	clttcp "github.com/nabbar/golib/socket/client/tcp"
	cltudp "github.com/nabbar/golib/socket/client/udp"
	sckcfg "github.com/nabbar/golib/socket/config"
)

// New validates cfg and returns a socket.Client for the protocol it
// names. upd is accepted for symmetry with server.New but is currently
// unused: a client owns its single outbound connection outright through the
// returned Client (Connect/IsConnected/Close), so there is no accepted
// socket for a callback to tune before the caller sees it.
func New(cfg sckcfg.Client, upd func(net.Conn)) (libsck.Client, error) {
	_ = upd

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case cfg.Network.IsTCP():
		return newTCPClient(cfg)
	case cfg.Network.IsUDP():
		return cltudp.New(cfg.Address)
	case cfg.Network.IsUnix():
		return newUnixClient(cfg)
	default:
		return nil, sckcfg.ErrInvalidProtocol
	}
}

func newTCPClient(cfg sckcfg.Client) (libsck.Client, error) {
	cli, err := clttcp.New(cfg.Address)
	if err != nil {
		return nil, err
	}

	if cfg.TLS.Enabled {
		if err = cli.SetTLS(true, cfg.TLS.Config.New(), cfg.TLS.ServerName); err != nil {
			return nil, err
		}
	}

	return cli, nil
}

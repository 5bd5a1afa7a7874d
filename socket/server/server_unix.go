//go:build linux || darwin

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

package server

import (
	"net"

	libptc "github.com/nabbar/golib/network/protocol"
	libsck "github.com/nabbar/golib/socket"
	sckcfg "github.com/nabbar/golib/socket/config"
	srvunix "github.com/nabbar/golib/socket/server/unix"
	srvugm "github.com/nabbar/golib/socket/server/unixgram"
)

// newUnixServer builds the Unix domain socket server named by cfg.Network.
// Unix domain sockets are only available through this build on Linux and
// Darwin; cfg.Validate already rejects them on any other platform before
// New ever reaches here.
func newUnixServer(upd func(net.Conn), handler libsck.HandlerFunc, cfg sckcfg.Server) (libsck.Server, error) {
	switch cfg.Network {
	case libptc.NetworkUnix:
		return srvunix.New(upd, handler, cfg)
	case libptc.NetworkUnixGram:
		return srvugm.New(upd, handler, cfg)
	default:
		return nil, sckcfg.ErrInvalidProtocol
	}
}

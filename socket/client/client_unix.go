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

package client

import (
	libptc "github.com/nabbar/golib/network/protocol"
	libsck "github.com/nabbar/golib/socket"
	cltunix "github.com/nabbar/golib/socket/client/unix"
	cltugm "github.com/nabbar/golib/socket/client/unixgram"
	sckcfg "github.com/nabbar/golib/socket/config"
)

// newUnixClient builds the Unix domain socket client named by cfg.Network.
// Unix domain sockets are only available through this build on Linux and
// Darwin; cfg.Validate already rejects them on any other platform before
// New ever reaches here.
func newUnixClient(cfg sckcfg.Client) (libsck.Client, error) {
	switch cfg.Network {
	case libptc.NetworkUnix:
		if cli := cltunix.New(cfg.Address); cli != nil {
			return cli, nil
		}
		return nil, sckcfg.ErrInvalidProtocol
	case libptc.NetworkUnixGram:
		if cli := cltugm.New(cfg.Address); cli != nil {
			return cli, nil
		}
		return nil, sckcfg.ErrInvalidProtocol
	default:
		return nil, sckcfg.ErrInvalidProtocol
	}
}

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

package main

import (
	"context"

	"github.com/nabbar/golib/relay"
	libsrp "github.com/nabbar/golib/srp"
	libstm "github.com/nabbar/golib/stream"
	"github.com/nabbar/golib/stream/srpconn"
)

// dialRelay rendezvous with the configured relay and layers an SRP tunnel
// on top of the raw connection it returns. Both peers derive the verifier
// from the same shared secret; the relay only decides who plays which
// role, by connection order.
func (o *options) dialRelay(ctx context.Context) (libstm.Stream, error) {
	cfg := relay.Config{
		Address:  o.RelayAddress,
		ProxyURL: o.RelayProxy,
		Secret:   []byte(o.RelaySecret),
	}

	conn, role, err := relay.Dial(ctx, cfg)
	if err != nil {
		return nil, err
	}

	stretched, err := libsrp.StretchSecret([]byte(o.RelaySecret))
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	switch role {
	case libsrp.RoleServer:
		v, verr := libsrp.NewVerifier(libsrp.FixedUsername, stretched)
		if verr != nil {
			_ = conn.Close()
			return nil, verr
		}
		return srpconn.Server(conn, v)
	default:
		return srpconn.Client(conn, stretched)
	}
}

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

// Package udp implements a socket client over a single UDP association. Each
// Write sends one datagram to the configured address; each Read returns one
// received datagram. Callbacks registered with RegisterFuncError and
// RegisterFuncInfo are dispatched on their own goroutine, matching UDP's
// fire-and-forget character: no operation blocks on a slow or panicking
// callback.
package udp

import (
	"context"
	"io"
	"net"

	libtls "github.com/nabbar/golib/certificates"
	libsck "github.com/nabbar/golib/socket"
)

// ClientUDP sends and receives datagrams with a single remote address.
type ClientUDP interface {
	Connect(ctx context.Context) error
	IsConnected() bool
	Once(ctx context.Context, request io.Reader, responseHandler func(io.Reader)) error
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	RegisterFuncError(f libsck.FuncError)
	RegisterFuncInfo(f libsck.FuncInfo)

	// SetTLS is a no-op kept for interface parity with the other client
	// transports: a UDP association here carries no transport-level TLS.
	SetTLS(enabled bool, cfg libtls.TLSConfig, serverName string) error

	Close() error
}

// New validates address and builds a ClientUDP targeting it. The underlying
// socket is opened lazily on the first Connect or Once call.
func New(address string) (ClientUDP, error) {
	if address == "" {
		return nil, ErrAddress
	}

	if _, err := net.ResolveUDPAddr("udp", address); err != nil {
		return nil, ErrAddress
	}

	return &cli{
		address: address,
	}, nil
}

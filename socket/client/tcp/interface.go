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

// Package tcp implements a socket.Client dialing a single TCP endpoint, with
// optional TLS and a one-shot request/response helper built on a half-close.
package tcp

import (
	"context"
	"io"
	"net"

	libtls "github.com/nabbar/golib/certificates"
	libsck "github.com/nabbar/golib/socket"
)

// ClientTCP dials a TCP endpoint and exchanges data over the resulting
// connection.
type ClientTCP interface {
	// Connect dials the configured address, honoring ctx's deadline and
	// cancellation, and performs the TLS handshake when TLS is enabled.
	Connect(ctx context.Context) error

	// IsConnected reports the client's own view of its connection state; it
	// is not updated by a peer-initiated close until the next Read, Write or
	// Close call observes the failure.
	IsConnected() bool

	// Once dials (if not already connected), writes request in full, half
	// closes the write side so a peer blocked reading to EOF can reply, then
	// drains the response into responseHandler before closing the
	// connection. A nil responseHandler discards the response.
	Once(ctx context.Context, request io.Reader, responseHandler func(io.Reader)) error

	// Read reads from the connection. It fails with ErrConnection when not
	// connected.
	Read(p []byte) (int, error)

	// Write writes to the connection. It fails with ErrConnection when not
	// connected.
	Write(p []byte) (int, error)

	// RegisterFuncError installs the callback notified of connection-level
	// errors.
	RegisterFuncError(f libsck.FuncError)

	// RegisterFuncInfo installs the callback notified of connection state
	// transitions.
	RegisterFuncInfo(f libsck.FuncInfo)

	// SetTLS switches TLS wrapping on or off for future Connect/Once calls.
	// It fails when enabled is true and cfg is nil or carries no
	// certificate.
	SetTLS(enabled bool, cfg libtls.TLSConfig, serverName string) error

	// Close closes the active connection. It fails with ErrConnection when
	// there is no connection to close, including on a second call.
	Close() error
}

// New validates address and returns a ClientTCP bound to it. No network
// dial occurs until Connect or Once is called.
func New(address string) (ClientTCP, error) {
	if address == "" {
		return nil, ErrAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", address); err != nil {
		return nil, err
	}

	return &cli{
		address: address,
	}, nil
}

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

package udp

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync/atomic"
)

// dCtx implements socket.Context over a single received datagram. Its data
// is exhausted after the first Read, mirroring the one-shot nature of a UDP
// packet; Write sends a reply back to remote over the shared listening
// socket.
type dCtx struct {
	context.Context

	con    *net.UDPConn
	cancel context.CancelFunc

	local  net.Addr
	remote net.Addr
	data   []byte

	consumed atomic.Bool
	closed   atomic.Bool
}

func newContext(con *net.UDPConn, local, remote net.Addr, data []byte, ctx context.Context, cancel context.CancelFunc) *dCtx {
	return &dCtx{
		Context: ctx,
		con:     con,
		cancel:  cancel,
		local:   local,
		remote:  remote,
		data:    data,
	}
}

// Read returns the datagram payload on its first call and io.EOF on every
// call after, since a socket.Context here represents exactly one datagram.
func (c *dCtx) Read(p []byte) (int, error) {
	if c.consumed.Swap(true) {
		return 0, io.EOF
	}

	return copy(p, c.data), nil
}

// Write sends p back to the datagram's sender over the shared listening
// socket.
func (c *dCtx) Write(p []byte) (int, error) {
	if c.closed.Load() {
		return 0, net.ErrClosed
	}

	return c.con.WriteTo(p, c.remote)
}

func (c *dCtx) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.cancel()

	return nil
}

func (c *dCtx) IsConnected() bool {
	return !c.closed.Load()
}

func (c *dCtx) RemoteHost() string {
	if c.remote == nil {
		return ""
	}

	return fmt.Sprintf("%s %s", c.remote.Network(), c.remote.String())
}

func (c *dCtx) LocalHost() string {
	if c.local == nil {
		return ""
	}

	return fmt.Sprintf("%s %s", c.local.Network(), c.local.String())
}

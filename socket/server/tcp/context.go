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

package tcp

import (
	"context"
	"net"
	"sync/atomic"
	"time"
)

// sCtx implements socket.Context over one accepted net.Conn. The embedded
// context.Context is connCtx, a child of the Listen context canceled either
// by the server's own shutdown or by this connection's idle watchdog; it
// supplies Deadline/Done/Err/Value.
type sCtx struct {
	context.Context

	con    net.Conn
	cancel context.CancelFunc

	closed atomic.Bool
	touch  chan struct{}
}

func newContext(con net.Conn, ctx context.Context, cancel context.CancelFunc) *sCtx {
	return &sCtx{
		Context: ctx,
		con:     con,
		cancel:  cancel,
		touch:   make(chan struct{}, 1),
	}
}

func (c *sCtx) touchActivity() {
	select {
	case c.touch <- struct{}{}:
	default:
	}
}

func (c *sCtx) Read(p []byte) (int, error) {
	n, err := c.con.Read(p)
	if n > 0 {
		c.touchActivity()
	}
	return n, err
}

func (c *sCtx) Write(p []byte) (int, error) {
	n, err := c.con.Write(p)
	if n > 0 {
		c.touchActivity()
	}
	return n, err
}

func (c *sCtx) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.cancel()

	return c.con.Close()
}

func (c *sCtx) IsConnected() bool {
	return !c.closed.Load()
}

func (c *sCtx) RemoteHost() string {
	if a := c.con.RemoteAddr(); a != nil {
		return a.String()
	}

	return ""
}

func (c *sCtx) LocalHost() string {
	if a := c.con.LocalAddr(); a != nil {
		return a.String()
	}

	return ""
}

// watchIdle closes the connection once timeout elapses without a Read or
// Write, resetting on every touchActivity call. It exits without acting
// once stop or the connection context fires first.
func (c *sCtx) watchIdle(timeout time.Duration, stop <-chan struct{}) {
	t := time.NewTimer(timeout)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-c.Context.Done():
			return
		case <-c.touch:
			if !t.Stop() {
				select {
				case <-t.C:
				default:
				}
			}
			t.Reset(timeout)
		case <-t.C:
			_ = c.Close()
			return
		}
	}
}

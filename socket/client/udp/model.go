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
	"io"
	"net"
	"sync"
	"sync/atomic"

	libtls "github.com/nabbar/golib/certificates"
	libsck "github.com/nabbar/golib/socket"
)

// cli implements ClientUDP over a single net.Conn dialed with net.Dialer on
// "udp", which in Go gives a connected UDP socket: Read/Write need no
// explicit peer address, matching this package's one-association model.
type cli struct {
	mu sync.RWMutex

	address string

	con net.Conn // set while connected, guarded by mu

	connected atomic.Bool

	fctErr  libsck.FuncError
	fctInfo libsck.FuncInfo
}

func (c *cli) RegisterFuncError(f libsck.FuncError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fctErr = f
}

func (c *cli) RegisterFuncInfo(f libsck.FuncInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fctInfo = f
}

// errorf dispatches to the registered error callback on its own goroutine,
// so a slow or panicking callback never blocks or crashes a Read/Write/Close
// call.
func (c *cli) errorf(errs ...error) {
	c.mu.RLock()
	f := c.fctErr
	c.mu.RUnlock()

	if f == nil {
		return
	}

	go func() {
		defer func() {
			_ = recover()
		}()
		f(errs...)
	}()
}

// infof dispatches to the registered info callback on its own goroutine, for
// the same reason as errorf.
func (c *cli) infof(state libsck.ConnState) {
	c.mu.RLock()
	f := c.fctInfo
	con := c.con
	c.mu.RUnlock()

	if f == nil {
		return
	}

	var local, remote net.Addr

	if con != nil {
		local = con.LocalAddr()
		remote = con.RemoteAddr()
	}

	go func() {
		defer func() {
			_ = recover()
		}()
		f(local, remote, state)
	}()
}

// SetTLS is a no-op: a UDP association here carries no transport-level TLS.
func (c *cli) SetTLS(_ bool, _ libtls.TLSConfig, _ string) error {
	return nil
}

func (c *cli) getConn() (net.Conn, error) {
	c.mu.RLock()
	con := c.con
	c.mu.RUnlock()

	if con == nil {
		return nil, ErrConnection
	}

	return con, nil
}

func (c *cli) setConn(con net.Conn) {
	c.mu.Lock()
	c.con = con
	c.mu.Unlock()
}

func (c *cli) IsConnected() bool {
	return c.connected.Load()
}

// Connect dials c.address. Dialing "udp" never actually contacts the peer;
// it only binds a local socket and records the destination, so Connect
// succeeds even when nothing is listening on the other end.
func (c *cli) Connect(ctx context.Context) error {
	c.mu.RLock()
	address := c.address
	c.mu.RUnlock()

	c.infof(libsck.ConnectionDial)

	var d net.Dialer

	con, err := d.DialContext(ctx, "udp", address)
	if err != nil {
		c.errorf(err)
		return err
	}

	c.setConn(con)
	c.connected.Store(true)

	c.infof(libsck.ConnectionNew)

	return nil
}

func (c *cli) Read(p []byte) (int, error) {
	con, err := c.getConn()
	if err != nil {
		c.errorf(err)
		return 0, err
	}

	n, err := con.Read(p)
	if err != nil {
		c.connected.Store(false)
		c.errorf(err)
		return n, err
	}

	c.infof(libsck.ConnectionRead)

	return n, nil
}

func (c *cli) Write(p []byte) (int, error) {
	con, err := c.getConn()
	if err != nil {
		c.errorf(err)
		return 0, err
	}

	n, err := con.Write(p)
	if err != nil {
		c.connected.Store(false)
		c.errorf(err)
		return n, err
	}

	c.infof(libsck.ConnectionWrite)

	return n, nil
}

// Close closes the active socket. Calling Close without a connection, or a
// second time after a successful Close, is itself an error.
func (c *cli) Close() error {
	con, err := c.getConn()
	if err != nil {
		c.errorf(err)
		return err
	}

	c.setConn(nil)
	c.connected.Store(false)

	err = con.Close()

	c.infof(libsck.ConnectionClose)

	return err
}

// Once dials (unless already connected), sends request as a single datagram
// and, when responseHandler is given, hands it the raw socket to read a
// reply from; it never reads on the caller's behalf, since a UDP peer may
// never answer. The socket is closed before Once returns.
func (c *cli) Once(ctx context.Context, request io.Reader, responseHandler func(io.Reader)) error {
	if !c.IsConnected() {
		if err := c.Connect(ctx); err != nil {
			return err
		}
	}

	con, err := c.getConn()
	if err != nil {
		return err
	}

	defer func() {
		_ = c.Close()
	}()

	if request != nil {
		if _, err = io.Copy(con, request); err != nil {
			c.errorf(err)
			return err
		}

		c.infof(libsck.ConnectionWrite)
	}

	if responseHandler != nil {
		responseHandler(con)
		c.infof(libsck.ConnectionRead)
	}

	return nil
}

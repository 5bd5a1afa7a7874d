//go:build linux || darwin

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

package unix

import (
	"context"
	"io"
	"net"
	"sync"
	"sync/atomic"

	libtls "github.com/nabbar/golib/certificates"
	libsck "github.com/nabbar/golib/socket"
)

// cli implements ClientUnix over a single net.Conn, dialed lazily on Connect
// or Once. It follows the mutex-protected-struct shape used across this
// module: private fields guarded by mu, a lock-free atomic for the hot-path
// IsConnected check.
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

func (c *cli) errorf(errs ...error) {
	c.mu.RLock()
	f := c.fctErr
	c.mu.RUnlock()

	if f != nil {
		f(errs...)
	}
}

func (c *cli) infof(state libsck.ConnState) {
	c.mu.RLock()
	f := c.fctInfo
	c.mu.RUnlock()

	if f == nil {
		return
	}

	var local, remote net.Addr

	c.mu.RLock()
	con := c.con
	c.mu.RUnlock()

	if con != nil {
		local = con.LocalAddr()
		remote = con.RemoteAddr()
	}

	f(local, remote, state)
}

// SetTLS is a no-op: a Unix domain socket carries no transport-level TLS,
// relying instead on filesystem permissions.
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

// Connect dials c.address over the Unix domain socket namespace.
func (c *cli) Connect(ctx context.Context) error {
	c.mu.RLock()
	address := c.address
	c.mu.RUnlock()

	c.infof(libsck.ConnectionDial)

	var d net.Dialer

	con, err := d.DialContext(ctx, "unix", address)
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

// Close closes the active connection. Calling Close without a connection is
// itself an error: unlike the server side, a client has no idle listener to
// keep around.
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

// Once dials (unless already connected), writes request in full, half
// closes the write side so a peer blocked on io.Copy(conn, conn) observes
// EOF and echoes back, then drains the response into responseHandler before
// closing the connection.
func (c *cli) Once(ctx context.Context, request io.Reader, responseHandler func(io.Reader)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

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

	if cw, ok := con.(interface{ CloseWrite() error }); ok {
		_ = cw.CloseWrite()
	}

	if responseHandler != nil {
		responseHandler(con)
	} else {
		_, _ = io.Copy(io.Discard, con)
	}

	c.infof(libsck.ConnectionRead)

	return nil
}

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

package unixgram

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	libprm "github.com/nabbar/golib/file/perm"
	libtls "github.com/nabbar/golib/certificates"
	libsck "github.com/nabbar/golib/socket"
)

// srv implements ServerUnixGram. It follows the mutex-protected-struct shape
// used across this module's long-running components: private fields
// guarded by mu, public methods taking the lock only for the duration of
// the access.
type srv struct {
	mu sync.RWMutex

	upd     func(net.Conn)
	handler libsck.HandlerFunc

	path string
	perm libprm.Perm
	gid  int32

	fctErr     libsck.FuncError
	fctInfo    libsck.FuncInfo
	fctInfoSrv func(msg string)

	con *net.UnixConn

	running atomic.Bool
	gone    atomic.Bool
	active  atomic.Int64 // in-flight handler goroutines, not exposed as OpenConnections
}

func (s *srv) RegisterFuncError(f libsck.FuncError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fctErr = f
}

func (s *srv) RegisterFuncInfo(f libsck.FuncInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fctInfo = f
}

func (s *srv) RegisterFuncInfoServer(f func(msg string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fctInfoSrv = f
}

// RegisterSocket validates gid and stores path/perm/gid for the next Listen
// call.
func (s *srv) RegisterSocket(path string, perm libprm.Perm, gid int32) error {
	if gid < -1 || gid > MaxGID {
		return ErrInvalidGroup
	}

	s.mu.Lock()
	s.path = path
	s.perm = perm
	s.gid = gid
	s.mu.Unlock()

	return nil
}

// SetTLS is a no-op: a Unix datagram socket carries no transport-level TLS.
func (s *srv) SetTLS(_ bool, _ libtls.TLSConfig) error {
	return nil
}

func (s *srv) IsRunning() bool {
	return s.running.Load()
}

func (s *srv) IsGone() bool {
	return s.gone.Load()
}

// OpenConnections always reports 0: a datagram socket is connectionless, so
// there is no per-peer state to count the way a stream server counts
// accepted sockets.
func (s *srv) OpenConnections() int64 {
	return 0
}

func (s *srv) errorf(errs ...error) {
	s.mu.RLock()
	f := s.fctErr
	s.mu.RUnlock()

	if f != nil {
		f(errs...)
	}
}

func (s *srv) infof(local, remote net.Addr, state libsck.ConnState) {
	s.mu.RLock()
	f := s.fctInfo
	s.mu.RUnlock()

	if f != nil {
		f(local, remote, state)
	}
}

func (s *srv) infoServer(msg string) {
	s.mu.RLock()
	f := s.fctInfoSrv
	s.mu.RUnlock()

	if f != nil {
		f(msg)
	}
}

// Listener reports the network and address (socket file path) actually
// bound by the current socket.
func (s *srv) Listener() (string, string, error) {
	s.mu.RLock()
	con := s.con
	s.mu.RUnlock()

	if con == nil {
		return "", "", ErrNotListening
	}

	addr := con.LocalAddr()
	return addr.Network(), addr.String(), nil
}

func (s *srv) setConn(con *net.UnixConn) {
	s.mu.Lock()
	s.con = con
	s.mu.Unlock()
}

// closeConn closes and forgets the current listening socket, then removes
// the socket file; safe to call more than once.
func (s *srv) closeConn() error {
	s.mu.RLock()
	path := s.path
	s.mu.RUnlock()

	s.mu.Lock()
	con := s.con
	s.con = nil
	s.mu.Unlock()

	var err error
	if con != nil {
		err = con.Close()
	}

	if path != "" {
		_ = os.Remove(path)
	}

	return err
}

// Listen opens the Unix datagram socket described by path and reads
// datagrams until ctx is canceled or Close/Shutdown closes the socket. A
// stale socket file left behind by a previous run is removed first; once
// bound, the file's permissions and group are set from perm and gid. Every
// datagram is dispatched to handler on its own goroutine.
func (s *srv) Listen(ctx context.Context) error {
	if s.running.Load() {
		return ErrAlreadyRunning
	}

	s.mu.RLock()
	path := s.path
	perm := s.perm
	gid := s.gid
	s.mu.RUnlock()

	_ = os.Remove(path)

	addr, err := net.ResolveUnixAddr("unixgram", path)
	if err != nil {
		s.errorf(err)
		return err
	}

	con, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		s.errorf(err)
		return err
	}

	if path != "" {
		if chmodErr := os.Chmod(path, perm.FileMode()); chmodErr != nil {
			s.errorf(chmodErr)
		}

		if gid >= 0 {
			if chownErr := os.Chown(path, -1, int(gid)); chownErr != nil {
				s.errorf(chownErr)
			}
		}
	}

	if s.upd != nil {
		s.upd(con)
	}

	s.setConn(con)
	s.running.Store(true)
	s.gone.Store(false)
	s.infoServer(fmt.Sprintf("unixgram server starting listening on %s", path))

	defer func() {
		_ = s.closeConn()
		s.running.Store(false)
		s.gone.Store(true)
		s.infoServer(fmt.Sprintf("unixgram server stopped listening on %s", path))
	}()

	watchDone := make(chan struct{})
	defer close(watchDone)

	go func() {
		select {
		case <-ctx.Done():
			_ = s.closeConn()
		case <-watchDone:
		}
	}()

	var wg sync.WaitGroup

	for {
		buf := make([]byte, maxDatagramSize)

		n, raddr, rerr := con.ReadFrom(buf)
		if rerr != nil {
			wg.Wait()

			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			return libsck.ErrorFilter(rerr)
		}

		data := buf[:n]

		wg.Add(1)
		s.active.Add(1)

		go func(data []byte, raddr net.Addr) {
			defer wg.Done()
			defer s.active.Add(-1)
			s.serve(ctx, con, raddr, data)
		}(data, raddr)
	}
}

// Shutdown stops reading new datagrams and waits, up to ctx's deadline, for
// in-flight handlers to finish.
func (s *srv) Shutdown(ctx context.Context) error {
	if err := s.closeConn(); err != nil {
		return err
	}

	for {
		if s.active.Load() == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}
}

// Close stops reading immediately without waiting for in-flight handlers to
// drain, and removes the socket file.
func (s *srv) Close() error {
	return s.closeConn()
}

// serve runs handler over one received datagram, recovering a panicking
// handler the way the read loop must to keep serving other datagrams.
func (s *srv) serve(ctx context.Context, con *net.UnixConn, remote net.Addr, data []byte) {
	local := con.LocalAddr()

	s.infof(local, remote, libsck.ConnectionNew)

	connCtx, cancel := context.WithCancel(ctx)
	c := newContext(con, local, remote, data, connCtx, cancel)

	defer func() {
		if r := recover(); r != nil {
			s.errorf(fmt.Errorf("unixgram handler panic: %v", r))
		}

		cancel()
		s.infof(local, remote, libsck.ConnectionClose)
	}()

	s.infof(local, remote, libsck.ConnectionHandler)
	s.handler(c)
}

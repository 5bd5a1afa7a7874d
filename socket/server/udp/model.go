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
	"net"
	"sync"
	"sync/atomic"
	"time"

	libtls "github.com/nabbar/golib/certificates"
	libsck "github.com/nabbar/golib/socket"
)

// srv implements ServerUdp. It follows the mutex-protected-struct shape used
// across this module's long-running components: private fields guarded by
// mu, public methods taking the lock only for the duration of the access.
type srv struct {
	mu sync.RWMutex

	upd     func(net.Conn)
	handler libsck.HandlerFunc
	address string

	fctErr     libsck.FuncError
	fctInfo    libsck.FuncInfo
	fctInfoSrv func(msg string)

	con *net.UDPConn

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

// RegisterServer validates address and stores it for the next Listen call.
func (s *srv) RegisterServer(address string) error {
	if address == "" {
		return ErrInvalidAddress
	}

	if _, err := net.ResolveUDPAddr("udp", address); err != nil {
		return err
	}

	s.mu.Lock()
	s.address = address
	s.mu.Unlock()

	return nil
}

// SetTLS is a no-op: UDP datagrams are not wrapped in a TLS record layer
// here, so there is nothing to configure.
func (s *srv) SetTLS(_ bool, _ libtls.TLSConfig) error {
	return nil
}

func (s *srv) IsRunning() bool {
	return s.running.Load()
}

func (s *srv) IsGone() bool {
	return s.gone.Load()
}

// OpenConnections always reports 0: UDP is connectionless, so there is no
// per-peer state to count the way a stream server counts accepted sockets.
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

// Listener reports the network and address actually bound by the current
// socket, letting a caller that listened on ":0" recover the OS-assigned
// port.
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

func (s *srv) setConn(con *net.UDPConn) {
	s.mu.Lock()
	s.con = con
	s.mu.Unlock()
}

// closeConn closes and forgets the current listening socket; safe to call
// more than once.
func (s *srv) closeConn() error {
	s.mu.Lock()
	con := s.con
	s.con = nil
	s.mu.Unlock()

	if con == nil {
		return nil
	}

	return con.Close()
}

// Listen opens the UDP socket described by address and reads datagrams
// until ctx is canceled or Close/Shutdown closes the socket. Every datagram
// is dispatched to handler on its own goroutine.
func (s *srv) Listen(ctx context.Context) error {
	if s.running.Load() {
		return ErrAlreadyRunning
	}

	s.mu.RLock()
	address := s.address
	s.mu.RUnlock()

	udpAddr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		s.errorf(err)
		return err
	}

	con, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		s.errorf(err)
		return err
	}

	if s.upd != nil {
		s.upd(con)
	}

	s.setConn(con)
	s.running.Store(true)
	s.gone.Store(false)
	s.infoServer(fmt.Sprintf("udp server listening on %s", con.LocalAddr().String()))

	defer func() {
		_ = s.closeConn()
		s.running.Store(false)
		s.gone.Store(true)
		s.infoServer(fmt.Sprintf("udp server stopped on %s", address))
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
// drain.
func (s *srv) Close() error {
	return s.closeConn()
}

// serve runs handler over one received datagram, recovering a panicking
// handler the way the read loop must to keep serving other datagrams.
func (s *srv) serve(ctx context.Context, con *net.UDPConn, remote net.Addr, data []byte) {
	local := con.LocalAddr()

	s.infof(local, remote, libsck.ConnectionNew)

	connCtx, cancel := context.WithCancel(ctx)
	c := newContext(con, local, remote, data, connCtx, cancel)

	defer func() {
		if r := recover(); r != nil {
			s.errorf(fmt.Errorf("udp handler panic: %v", r))
		}

		cancel()
		s.infof(local, remote, libsck.ConnectionClose)
	}()

	s.infof(local, remote, libsck.ConnectionHandler)
	s.handler(c)
}

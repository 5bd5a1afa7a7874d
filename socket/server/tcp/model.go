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
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	libtls "github.com/nabbar/golib/certificates"
	libsck "github.com/nabbar/golib/socket"
	sckcfg "github.com/nabbar/golib/socket/config"
)

// srv implements ServerTcp. It follows the mutex-protected-struct shape used
// across this module's long-running components: private fields guarded by
// mu, public methods taking the lock only for the duration of the access.
type srv struct {
	mu sync.RWMutex

	upd     func(net.Conn)
	handler libsck.HandlerFunc
	cfg     sckcfg.Server

	tlsEnabled bool
	tlsCfg     libtls.TLSConfig

	fctErr     libsck.FuncError
	fctInfo    libsck.FuncInfo
	fctInfoSrv func(msg string)

	ln net.Listener

	running atomic.Bool
	gone    atomic.Bool
	conns   atomic.Int64
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

func (s *srv) SetTLS(enabled bool, cfg libtls.TLSConfig) error {
	if enabled && (cfg == nil || cfg.LenCertificatePair() == 0) {
		return ErrInvalidTLSConfig
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tlsEnabled = enabled
	s.tlsCfg = cfg

	return nil
}

func (s *srv) IsRunning() bool {
	return s.running.Load()
}

func (s *srv) IsGone() bool {
	return s.gone.Load()
}

func (s *srv) OpenConnections() int64 {
	return s.conns.Load()
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
// listener, letting a caller that listened on ":0" recover the OS-assigned
// port.
func (s *srv) Listener() (string, string, error) {
	s.mu.RLock()
	ln := s.ln
	s.mu.RUnlock()

	if ln == nil {
		return "", "", ErrNotListening
	}

	addr := ln.Addr()
	return addr.Network(), addr.String(), nil
}

func (s *srv) setListener(ln net.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ln = ln
}

// closeListener closes and forgets the current listener; safe to call more
// than once, and a no-op once the listener has already been cleared.
func (s *srv) closeListener() error {
	s.mu.Lock()
	ln := s.ln
	s.ln = nil
	s.mu.Unlock()

	if ln == nil {
		return nil
	}

	return ln.Close()
}

// Listen opens the TCP (optionally TLS) listener described by cfg and
// accepts connections until ctx is canceled or Close/Shutdown closes the
// listener. It returns the reason the accept loop stopped.
func (s *srv) Listen(ctx context.Context) error {
	if s.running.Load() {
		return ErrAlreadyRunning
	}

	s.mu.RLock()
	network := s.cfg.Network.String()
	address := s.cfg.Address
	tlsEnabled := s.tlsEnabled
	tlsCfg := s.tlsCfg
	idle := s.cfg.ConIdleTimeout
	s.mu.RUnlock()

	ln, err := net.Listen(network, address)
	if err != nil {
		s.errorf(err)
		return err
	}

	if tlsEnabled {
		ln = tls.NewListener(ln, tlsCfg.TlsConfig(""))
	}

	s.setListener(ln)
	s.running.Store(true)
	s.gone.Store(false)
	s.infoServer(fmt.Sprintf("tcp server listening on %s", address))

	defer func() {
		_ = s.closeListener()
		s.running.Store(false)
		s.gone.Store(true)
		s.infoServer(fmt.Sprintf("tcp server stopped on %s", address))
	}()

	watchDone := make(chan struct{})
	defer close(watchDone)

	go func() {
		select {
		case <-ctx.Done():
			_ = s.closeListener()
		case <-watchDone:
		}
	}()

	var wg sync.WaitGroup

	for {
		con, acceptErr := ln.Accept()
		if acceptErr != nil {
			wg.Wait()

			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			return libsck.ErrorFilter(acceptErr)
		}

		if s.upd != nil {
			s.upd(con)
		}

		wg.Add(1)
		s.conns.Add(1)

		go func(c net.Conn) {
			defer wg.Done()
			defer s.conns.Add(-1)
			s.serve(ctx, c, idle.Time())
		}(con)
	}
}

// Shutdown stops accepting new connections and waits, up to ctx's deadline,
// for in-flight handlers to finish.
func (s *srv) Shutdown(ctx context.Context) error {
	if err := s.closeListener(); err != nil {
		return err
	}

	for {
		if s.conns.Load() == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}
}

// Close stops the listener immediately without waiting for in-flight
// handlers to drain.
func (s *srv) Close() error {
	return s.closeListener()
}

// serve runs handler over one accepted connection, recovering a panicking
// handler the way an accept loop must to keep serving other connections.
func (s *srv) serve(ctx context.Context, con net.Conn, idle time.Duration) {
	local := con.LocalAddr()
	remote := con.RemoteAddr()

	s.infof(local, remote, libsck.ConnectionNew)

	connCtx, cancel := context.WithCancel(ctx)
	c := newContext(con, connCtx, cancel)

	stopIdle := make(chan struct{})

	if idle > 0 {
		go c.watchIdle(idle, stopIdle)
	}

	defer func() {
		close(stopIdle)

		if r := recover(); r != nil {
			s.errorf(fmt.Errorf("tcp handler panic: %v", r))
		}

		cancel()
		_ = con.Close()
		s.infof(local, remote, libsck.ConnectionClose)
	}()

	s.infof(local, remote, libsck.ConnectionHandler)
	s.handler(c)
}

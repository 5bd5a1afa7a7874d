/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package srpconn

import (
	"math/big"
	"net"
	"sync/atomic"
	"syscall"

	libstm "github.com/nabbar/golib/stream"
	libsrp "github.com/nabbar/golib/srp"
)

type closePhase int32

const (
	phaseOpen closePhase = iota
	phaseSent
	phaseClosed
)

type conn struct {
	c    net.Conn
	wkey recordKeys
	rkey recordKeys

	phase int32
	pend  []byte
}

// Client drives the client side of the SRP handshake over under, then
// returns a Stream whose record layer is keyed from the derived secret.
func Client(under net.Conn, password []byte) (libstm.Stream, error) {
	s := libsrp.NewClient(password)

	A, err := s.ClientStart()
	if err != nil {
		return nil, err
	}
	if err = writeFrame(under, A.Bytes()); err != nil {
		return nil, err
	}

	saltB, err := readFrame(under)
	if err != nil {
		return nil, err
	}
	pubB, err := readFrame(under)
	if err != nil {
		return nil, err
	}

	m1, err := s.ClientFinish(saltB, new(big.Int).SetBytes(pubB))
	if err != nil {
		return nil, err
	}
	if err = writeFrame(under, m1); err != nil {
		return nil, err
	}

	m2, err := readFrame(under)
	if err != nil {
		return nil, err
	}
	if err = s.ClientVerify(m2); err != nil {
		return nil, err
	}

	return newConn(under, s.Key(), "c2s", "s2c")
}

// Server drives the server side of the SRP handshake over under against
// the enrolled verifier v.
func Server(under net.Conn, v *libsrp.Verifier) (libstm.Stream, error) {
	s := libsrp.NewServer(v)

	aBytes, err := readFrame(under)
	if err != nil {
		return nil, err
	}

	salt, B, err := s.ServerStart(new(big.Int).SetBytes(aBytes))
	if err != nil {
		return nil, err
	}
	if err = writeFrame(under, salt); err != nil {
		return nil, err
	}
	if err = writeFrame(under, B.Bytes()); err != nil {
		return nil, err
	}

	m1, err := readFrame(under)
	if err != nil {
		return nil, err
	}

	m2, err := s.ServerFinish(m1)
	if err != nil {
		return nil, err
	}
	if err = writeFrame(under, m2); err != nil {
		return nil, err
	}

	return newConn(under, s.Key(), "s2c", "c2s")
}

func newConn(under net.Conn, sessionKey []byte, writeLabel, readLabel string) (libstm.Stream, error) {
	wkey, err := deriveKeys(sessionKey, writeLabel)
	if err != nil {
		return nil, libstm.NewError(libstm.KindProtocol, err)
	}
	rkey, err := deriveKeys(sessionKey, readLabel)
	if err != nil {
		return nil, libstm.NewError(libstm.KindProtocol, err)
	}
	return &conn{c: under, wkey: wkey, rkey: rkey}, nil
}

func (p *conn) Read(buf []byte) (int, error) {
	for len(p.pend) == 0 {
		record, err := readFrame(p.c)
		if err != nil {
			return 0, err
		}
		if len(record) == 0 {
			// peer's close record.
			return 0, libstm.NewError(libstm.KindClosed)
		}
		pt, err := openRecord(p.rkey, record)
		if err != nil {
			return 0, libstm.NewError(libstm.KindProtocol, err)
		}
		p.pend = pt
	}

	n := copy(buf, p.pend)
	p.pend = p.pend[n:]
	return n, nil
}

func (p *conn) Write(buf []byte) (int, error) {
	record, err := sealRecord(p.wkey, buf)
	if err != nil {
		return 0, libstm.NewError(libstm.KindProtocol, err)
	}
	if err = writeFrame(p.c, record); err != nil {
		return 0, err
	}
	return len(buf), nil
}

// Close performs a two-phase shutdown: the first call sends an empty
// close record (best-effort) and leaves the socket open for any
// in-flight peer data; the second call closes the underlying connection.
func (p *conn) Close() error {
	switch closePhase(atomic.LoadInt32(&p.phase)) {
	case phaseOpen:
		atomic.StoreInt32(&p.phase, int32(phaseSent))
		_ = writeFrame(p.c, nil)
		return nil
	case phaseSent:
		atomic.StoreInt32(&p.phase, int32(phaseClosed))
		return p.c.Close()
	default:
		return nil
	}
}

func (p *conn) PollHandle() uintptr {
	sc, ok := p.c.(syscall.Conn)
	if !ok {
		return 0
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return 0
	}
	var fd uintptr
	_ = raw.Control(func(h uintptr) { fd = h })
	return fd
}

func (p *conn) Maintain() error {
	return nil
}

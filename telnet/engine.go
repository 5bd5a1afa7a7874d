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

package telnet

import "sync"

// Signal identifies a local signal the engine translates into an IAC
// command for the peer.
type Signal uint8

const (
	SigInterrupt Signal = iota // SIGINT-equivalent -> IP
	SigAbort                   // SIGTERM-equivalent -> AO
	SigBreak                   // SIGQUIT-equivalent -> BRK
)

// WindowFunc reads the current terminal dimensions, as supplied by the
// termio collaborator.
type WindowFunc func() (Dims, error)

// Engine is the incremental IAC parser and option negotiator. It is not
// safe for concurrent Filter calls, but Signal and RequestResize may be
// called from a signal handler concurrently with Filter/Maintain; those
// paths only touch the mutex-protected outbound queue.
type Engine struct {
	opts map[byte]*optionState

	st    parserState
	sbOpt byte
	sbBuf []byte

	termType        string
	signalTranslate bool
	winFunc         WindowFunc
	dims            Dims
	dimsKnown       bool
	pendingResize   bool

	negotiated bool

	mu  sync.Mutex
	out []byte
}

// New builds an Engine. termType is the value advertised in response to a
// TERMINAL-TYPE SEND; winFunc, if non-nil, is consulted by Maintain after a
// RequestResize to read current dimensions for a NAWS subnegotiation;
// signalTranslate enables IP/AO/BRK emission from Signal.
func New(termType string, winFunc WindowFunc, signalTranslate bool) *Engine {
	return &Engine{
		opts:            make(map[byte]*optionState),
		termType:        termType,
		winFunc:         winFunc,
		signalTranslate: signalTranslate,
	}
}

func (e *Engine) option(code byte) *optionState {
	o, ok := e.opts[code]
	if !ok {
		o = &optionState{}
		e.opts[code] = o
	}
	return o
}

func (e *Engine) queue(b ...byte) {
	e.mu.Lock()
	e.out = append(e.out, b...)
	e.mu.Unlock()
}

// Outbound drains and returns all bytes queued for the peer (negotiation
// replies, NAWS subnegotiations, translated signal commands).
func (e *Engine) Outbound() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.out) == 0 {
		return nil
	}

	b := e.out
	e.out = nil
	return b
}

// InitialNegotiate emits the unsolicited WILLs/DOs implied by this
// engine's fixed option policy. Calling it more than once is idempotent:
// an option already in YES/WANT_YES is not re-offered.
func (e *Engine) InitialNegotiate() {
	e.offerWill(OptSuppressGoAhead)
	e.offerWill(OptTerminalType)
	e.offerWill(OptBinary)
	e.offerDo(OptBinary)
	e.offerDo(OptEcho)

	if e.dimsKnown {
		e.offerWill(OptNAWS)
	}

	e.negotiated = true
}

func (e *Engine) offerWill(code byte) {
	o := e.option(code)
	if o.local == qNo {
		o.local = qWantYes
		e.queue(IAC, WILL, code)
	}
}

func (e *Engine) offerDo(code byte) {
	o := e.option(code)
	if o.remote == qNo {
		o.remote = qWantYes
		e.queue(IAC, DO, code)
	}
}

// Signal translates a local signal into its IAC command and queues it for
// the next write, ahead of any already-buffered application bytes from
// this call onward. It is a no-op when signal translation is disabled.
func (e *Engine) Signal(s Signal) {
	if !e.signalTranslate {
		return
	}

	switch s {
	case SigInterrupt:
		e.queue(IAC, IP)
	case SigAbort:
		e.queue(IAC, AO)
	case SigBreak:
		e.queue(IAC, BRK)
	}
}

// RequestResize marks a window-resize event observed out-of-band; the
// actual dimension read and NAWS enqueue happen in Maintain, per this
// engine's contract with the owning Stream.
func (e *Engine) RequestResize() {
	e.pendingResize = true
}

// Maintain services queued out-of-band work: a pending resize is resolved
// here by reading current dimensions and enqueueing a NAWS subnegotiation,
// if NAWS is active.
func (e *Engine) Maintain() error {
	if !e.pendingResize {
		return nil
	}
	e.pendingResize = false

	if e.winFunc == nil {
		return nil
	}

	d, err := e.winFunc()
	if err != nil {
		return err
	}

	e.dims = d
	e.dimsKnown = true

	o := e.option(OptNAWS)
	if e.negotiated && o.local == qNo {
		e.offerWill(OptNAWS)
	}
	if o.local == qYes {
		e.queueNAWS(d)
	}

	return nil
}

func (e *Engine) queueNAWS(d Dims) {
	body := escapeIAC([]byte{
		byte(d.Cols >> 8), byte(d.Cols),
		byte(d.Rows >> 8), byte(d.Rows),
	})

	e.queue(IAC, SB, OptNAWS)
	e.queue(body...)
	e.queue(IAC, SE)
}

func escapeIAC(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		out = append(out, c)
		if c == IAC {
			out = append(out, IAC)
		}
	}
	return out
}

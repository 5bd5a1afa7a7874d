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

package stream

import "github.com/nabbar/golib/errors"

// ErrKind is the uniform error taxonomy every Stream variant maps its
// library- or OS-specific errors onto before surfacing them to a caller.
type ErrKind uint8

const (
	// KindWouldBlock means a non-blocking op made no progress; the caller
	// re-suspends on readiness and retries. Never surfaced past the
	// variant that produced it.
	KindWouldBlock ErrKind = iota

	// KindClosed means the far end closed in an orderly fashion.
	KindClosed

	// KindTimeout means an idle/connect/handshake/overall deadline
	// elapsed.
	KindTimeout

	// KindProtocol means a TLS/DTLS/SRP/telnet invariant was violated.
	KindProtocol

	// KindIO means an OS-level I/O failure occurred.
	KindIO

	// KindConfig means the caller-supplied configuration was invalid
	// (bad version range, missing cert, oversized path, empty secret).
	// Returned before any resource is acquired.
	KindConfig

	// KindExecFlow means an exec session exceeded its hard buffer
	// ceiling.
	KindExecFlow
)

// String implements fmt.Stringer.
func (k ErrKind) String() string {
	switch k {
	case KindWouldBlock:
		return "would_block"
	case KindClosed:
		return "closed"
	case KindTimeout:
		return "timeout"
	case KindProtocol:
		return "protocol"
	case KindIO:
		return "io"
	case KindConfig:
		return "config"
	case KindExecFlow:
		return "exec_flow"
	default:
		return "unknown"
	}
}

const (
	ErrorParamsEmpty errors.CodeError = iota + errors.MinPkgStream
	ErrorWouldBlock
	ErrorClosed
	ErrorTimeout
	ErrorProtocol
	ErrorIO
	ErrorConfig
	ErrorExecFlow
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorParamsEmpty)
	errors.RegisterIdFctMessage(ErrorParamsEmpty, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorParamsEmpty:
		return "given parameters is empty"
	case ErrorWouldBlock:
		return "operation would block"
	case ErrorClosed:
		return "stream closed by peer"
	case ErrorTimeout:
		return "stream deadline exceeded"
	case ErrorProtocol:
		return "stream protocol violation"
	case ErrorIO:
		return "stream I/O error"
	case ErrorConfig:
		return "stream configuration invalid"
	case ErrorExecFlow:
		return "exec session buffer ceiling exceeded"
	}

	return ""
}

// kindCode maps an ErrKind to its registered CodeError, for wrappers that
// need to surface a typed error from a library-specific failure.
func kindCode(k ErrKind) errors.CodeError {
	switch k {
	case KindWouldBlock:
		return ErrorWouldBlock
	case KindClosed:
		return ErrorClosed
	case KindTimeout:
		return ErrorTimeout
	case KindProtocol:
		return ErrorProtocol
	case KindIO:
		return ErrorIO
	case KindConfig:
		return ErrorConfig
	case KindExecFlow:
		return ErrorExecFlow
	default:
		return ErrorIO
	}
}

// NewError builds a CodeError of the given kind, optionally wrapping parent
// errors (the underlying net.Conn/library error that triggered it).
func NewError(k ErrKind, parent ...error) errors.Error {
	return kindCode(k).Error(parent...)
}

/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

package termio

import (
	"golang.org/x/term"
)

// IsTTY reports whether fd refers to a terminal device.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// RawMode is a scoped raw-mode acquisition: Restore must be called exactly
// once to put the terminal back in its original mode, regardless of
// whether the caller exits normally or on an error path.
type RawMode struct {
	fd    int
	state *term.State
}

// EnableRawMode switches the terminal at fd into raw mode and returns a
// handle whose Restore undoes it. It fails if fd is not a terminal.
func EnableRawMode(fd uintptr) (*RawMode, error) {
	if !term.IsTerminal(int(fd)) {
		return nil, ErrorNotATerminal.Error()
	}

	st, err := term.MakeRaw(int(fd))
	if err != nil {
		return nil, ErrorRawModeFailed.Error(err)
	}

	return &RawMode{fd: int(fd), state: st}, nil
}

// Restore puts the terminal back to the state captured by EnableRawMode.
// It is idempotent: calling it more than once after the first is a no-op.
func (r *RawMode) Restore() error {
	if r == nil || r.state == nil {
		return nil
	}
	st := r.state
	r.state = nil
	if err := term.Restore(r.fd, st); err != nil {
		return ErrorRawModeFailed.Error(err)
	}
	return nil
}

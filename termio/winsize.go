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
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// WindowSize is the terminal geometry reported to the telnet engine's NAWS
// subnegotiation.
type WindowSize struct {
	Cols int
	Rows int
}

// ReadWindowSize reports fd's current terminal geometry. It tries the
// ioctl fd has already opened first; if that fails (fd is not the
// controlling terminal, or the platform's x/term backend has no hook for
// it), it falls back to opening the controlling tty directly through
// go-tty, which covers every platform go-tty supports.
func ReadWindowSize(fd uintptr) (WindowSize, error) {
	if cols, rows, err := term.GetSize(int(fd)); err == nil {
		return WindowSize{Cols: cols, Rows: rows}, nil
	}

	t, err := tty.Open()
	if err != nil {
		return WindowSize{}, ErrorWindowSizeUnavailable.Error(err)
	}
	defer func() { _ = t.Close() }()

	cols, rows, err := t.Size()
	if err != nil {
		return WindowSize{}, ErrorWindowSizeUnavailable.Error(err)
	}
	return WindowSize{Cols: cols, Rows: rows}, nil
}

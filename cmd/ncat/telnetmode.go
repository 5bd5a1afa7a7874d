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

package main

import (
	"os"

	libstm "github.com/nabbar/golib/stream"
	stmtel "github.com/nabbar/golib/stream/telnet"
	"github.com/nabbar/golib/telnet"
	"github.com/nabbar/golib/termio"
)

// wrapTelnet layers the telnet option-negotiation engine on top of s when
// --telnet is set. winFunc reads the controlling terminal's current size
// on every NAWS opportunity; signal translation (local SIGINT/SIGWINCH
// etc. to IAC) is only offered on platforms termio knows how to install
// handlers for.
func (o *options) wrapTelnet(s libstm.Stream) libstm.Stream {
	if !o.Telnet {
		return s
	}

	winFunc := func() (telnet.Dims, error) {
		ws, err := termio.ReadWindowSize(os.Stdin.Fd())
		if err != nil {
			return telnet.Dims{}, err
		}
		return telnet.Dims{Cols: uint16(ws.Cols), Rows: uint16(ws.Rows)}, nil
	}

	return stmtel.New(s, "xterm", winFunc, termio.SupportsSignalTranslation())
}

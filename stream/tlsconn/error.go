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

package tlsconn

import (
	"errors"
	"io"
	"net"

	libstm "github.com/nabbar/golib/stream"
)

// mapErr classifies a *tls.Conn error: an io.EOF or closed-network error
// (including the peer's close-notify surfacing as EOF) becomes KindClosed,
// a timeout becomes KindTimeout, anything else (handshake/record errors)
// becomes KindProtocol.
func mapErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return libstm.NewError(libstm.KindClosed, err)
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return libstm.NewError(libstm.KindTimeout, err)
	}

	return libstm.NewError(libstm.KindProtocol, err)
}

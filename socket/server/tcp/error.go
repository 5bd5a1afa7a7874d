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

import "errors"

// ErrInvalidAddress is returned by New when the configured address is empty.
var ErrInvalidAddress = errors.New("invalid tcp listen address")

// ErrInvalidHandler is returned by New when handler is nil.
var ErrInvalidHandler = errors.New("invalid tcp handler")

// ErrInvalidTLSConfig is returned by SetTLS when enabling TLS with a
// configuration that carries no certificate.
var ErrInvalidTLSConfig = errors.New("invalid tcp tls config")

// ErrAlreadyRunning is returned by Listen when the server is already
// accepting connections.
var ErrAlreadyRunning = errors.New("tcp server already running")

// ErrNotListening is returned by Listener when no Listen call is currently
// bound to a socket.
var ErrNotListening = errors.New("tcp server is not listening")

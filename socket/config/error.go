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

package config

import "errors"

var (
	// ErrInvalidProtocol is returned when Network is not a protocol this
	// package knows how to validate, or is unsupported on the current
	// platform (Unix/Unixgram on Windows).
	ErrInvalidProtocol = errors.New("config: invalid protocol")

	// ErrInvalidTLSConfig is returned when TLS.Enabled is set but the
	// configuration cannot produce a usable crypto/tls.Config, or TLS was
	// requested on a protocol that does not carry it (UDP, Unix).
	ErrInvalidTLSConfig = errors.New("config: invalid TLS config")

	// ErrInvalidGroup is returned when GroupPerm falls outside [-1, MaxGID].
	ErrInvalidGroup = errors.New("config: invalid unix group")
)

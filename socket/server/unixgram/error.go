//go:build linux || darwin

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

package unixgram

import (
	"errors"

	sckcfg "github.com/nabbar/golib/socket/config"
)

// ErrInvalidHandler is returned by New when handler is nil.
var ErrInvalidHandler = errors.New("invalid unixgram handler")

// ErrAlreadyRunning is returned by Listen when the server is already
// reading datagrams.
var ErrAlreadyRunning = errors.New("unixgram server already running")

// ErrNotListening is returned by Listener when no Listen call is currently
// bound to a socket.
var ErrNotListening = errors.New("unixgram server is not listening")

// ErrInvalidGroup is config.ErrInvalidGroup under another name, kept visible
// on this package so callers need not import socket/config just to compare
// errors.
var ErrInvalidGroup = sckcfg.ErrInvalidGroup

// MaxGID is the largest group id accepted for a socket file's group
// ownership; re-exported from socket/config for the same reason as
// ErrInvalidGroup.
const MaxGID = sckcfg.MaxGID

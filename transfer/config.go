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

package transfer

import "time"

// defaultReadBufferBytes is the per-iteration read ceiling when Config
// leaves ReadBufferBytes unset.
const defaultReadBufferBytes = 64 * 1024

// maintenanceInterval bounds how long Stream.Maintain can go un-called
// while a direction is quiescent; any channel activity also triggers it.
const maintenanceInterval = 100 * time.Millisecond

// Config mirrors the transfer configuration data model: idle/connect
// timeouts, directional gating, shutdown and shaping behavior, and the
// per-iteration read ceiling.
type Config struct {
	// IdleTimeoutMS is the inactivity deadline, reset on every successful
	// byte movement in either direction. Zero disables the idle timer.
	IdleTimeoutMS int64

	// ConnectTimeoutMS is carried here only to complete the data model; it
	// is applied by the connection establishment paths, never read by Loop.
	ConnectTimeoutMS int64

	// SendOnly, when true, never installs the remote-to-local channel.
	SendOnly bool

	// RecvOnly, when true, never installs the local-to-remote channel.
	RecvOnly bool

	// CloseOnEOF closes the whole connection and ends the loop as soon as
	// stdin reaches EOF, instead of continuing to drain remote-to-local.
	CloseOnEOF bool

	// NoShutdown skips half-closing the Stream's write side on stdin EOF;
	// the local-to-remote channel is simply dropped from the loop.
	NoShutdown bool

	// CRLFTranslate rewrites every bare '\n' to "\r\n" on the
	// local-to-remote direction only.
	CRLFTranslate bool

	// DelayMS, when positive, suspends the local-to-remote channel for
	// this many milliseconds after each write (traffic shaping). The
	// remote-to-local channel is never affected.
	DelayMS int64

	// ReadBufferBytes bounds each non-blocking read+write pair. Defaults
	// to 64 KiB when zero or negative.
	ReadBufferBytes int
}

func (c Config) withDefaults() Config {
	if c.ReadBufferBytes <= 0 {
		c.ReadBufferBytes = defaultReadBufferBytes
	}
	return c
}

func (c Config) idleTimeout() time.Duration {
	if c.IdleTimeoutMS <= 0 {
		return 0
	}
	return time.Duration(c.IdleTimeoutMS) * time.Millisecond
}

func (c Config) shapingDelay() time.Duration {
	if c.DelayMS <= 0 {
		return 0
	}
	return time.Duration(c.DelayMS) * time.Millisecond
}

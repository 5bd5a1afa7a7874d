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

// Package config declares the Client and Server configuration structs used
// to describe a socket endpoint: which protocol/address to use, whether TLS
// wraps it, and (for Unix listeners) the filesystem permissions to apply to
// the created socket file.
package config

import (
	libtls "github.com/nabbar/golib/certificates"
	libdur "github.com/nabbar/golib/duration"
	libprm "github.com/nabbar/golib/file/perm"
	libptc "github.com/nabbar/golib/network/protocol"
)

// MaxGID is the largest group id accepted for GroupPerm; it matches the
// traditional 16-bit gid_t ceiling used by most Unix permission tooling.
const MaxGID int32 = 32767

// ClientTLS carries the TLS settings applied on top of a dialed connection.
type ClientTLS struct {
	// Enabled switches the dialed connection through crypto/tls.
	Enabled bool

	// Config is the certificate/cipher/curve configuration merged with any
	// default supplied to DefaultTLS.
	Config libtls.Config

	// ServerName is required whenever Enabled is true: it drives both SNI
	// and the peer certificate's hostname verification.
	ServerName string
}

// ServerTLS carries the TLS settings applied to a listening endpoint.
type ServerTLS struct {
	// Enabled switches the listener through crypto/tls.
	Enabled bool

	// Config is the certificate/cipher/curve configuration merged with any
	// default supplied to DefaultTLS.
	Config libtls.Config
}

// Client describes a single outbound connection: the network/address to
// dial and, optionally, the TLS settings to wrap it with.
type Client struct {
	// Network selects the dial protocol.
	Network libptc.NetworkProtocol

	// Address is the dial target, in the format expected by net.Dial for
	// Network (host:port for stream/datagram protocols, filesystem path
	// for unix/unixgram).
	Address string

	// TLS configures an optional TLS wrapper around the dialed connection.
	TLS ClientTLS
}

// Server describes a single listening endpoint: the network/address to
// bind, the Unix socket file's permissions (when applicable), and
// optionally the TLS settings to wrap accepted connections with.
type Server struct {
	// Network selects the listen protocol.
	Network libptc.NetworkProtocol

	// Address is the listen target, in the format expected by net.Listen
	// for Network.
	Address string

	// PermFile is the file mode applied to a Unix socket file once bound;
	// ignored for non-Unix protocols.
	PermFile libprm.Perm

	// GroupPerm is the group id applied to a Unix socket file once bound;
	// -1 leaves the creating process's group unchanged. Ignored for
	// non-Unix protocols.
	GroupPerm int32

	// TLS configures an optional TLS wrapper around accepted connections.
	TLS ServerTLS

	// ConIdleTimeout bounds how long an accepted connection may sit idle
	// (no read/write) before the server closes it; zero disables the
	// timeout and a negative value is treated as zero by Validate.
	ConIdleTimeout libdur.Duration
}

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

import (
	"net"
	"runtime"

	libtls "github.com/nabbar/golib/certificates"
	libptc "github.com/nabbar/golib/network/protocol"
)

// Validate resolves Address against Network and, when TLS is enabled,
// checks that it is a stream protocol carrying a server name to verify
// against. Unlike Server, an empty TLS.Config is accepted: a client has
// no certificate of its own to present and can verify the peer against
// the system root pool with library defaults alone.
func (c Client) Validate() error {
	if err := validateAddress(c.Network, c.Address); err != nil {
		return err
	}

	if !c.TLS.Enabled {
		return nil
	}

	if !isTCP(c.Network) {
		return ErrInvalidTLSConfig
	}

	if c.TLS.ServerName == "" {
		return ErrInvalidTLSConfig
	}

	return nil
}

// Validate resolves Address against Network, checks GroupPerm's range and,
// when TLS is enabled, that it is a stream protocol carrying a non-empty
// configuration.
func (s Server) Validate() error {
	if err := validateAddress(s.Network, s.Address); err != nil {
		return err
	}

	if s.Network.IsUnix() && (s.GroupPerm < -1 || s.GroupPerm > MaxGID) {
		return ErrInvalidGroup
	}

	if !s.TLS.Enabled {
		return nil
	}

	if !isTCP(s.Network) {
		return ErrInvalidTLSConfig
	}

	if tlsConfigEmpty(s.TLS.Config) {
		return ErrInvalidTLSConfig
	}

	return nil
}

// isTCP reports whether n is one of the TCP variants, the only protocols
// that carry TLS in this package (UDP uses DTLS, Unix sockets carry neither).
func isTCP(n libptc.NetworkProtocol) bool {
	switch n {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6:
		return true
	default:
		return false
	}
}

func validateAddress(n libptc.NetworkProtocol, addr string) error {
	switch n {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6:
		_, err := net.ResolveTCPAddr(n.String(), addr)
		return err
	case libptc.NetworkUDP, libptc.NetworkUDP4, libptc.NetworkUDP6:
		_, err := net.ResolveUDPAddr(n.String(), addr)
		return err
	case libptc.NetworkIP, libptc.NetworkIP4, libptc.NetworkIP6:
		_, err := net.ResolveIPAddr(n.String(), addr)
		return err
	case libptc.NetworkUnix, libptc.NetworkUnixGram:
		if runtime.GOOS == "windows" {
			return ErrInvalidProtocol
		}
		_, err := net.ResolveUnixAddr(n.String(), addr)
		return err
	default:
		return ErrInvalidProtocol
	}
}

// tlsConfigEmpty reports whether a certificates.Config is an unconfigured
// zero value: no curves, ciphers or certificates to build a crypto/tls.Config
// from.
func tlsConfigEmpty(c libtls.Config) bool {
	return len(c.CurveList) == 0 && len(c.CipherList) == 0 && len(c.Certs) == 0
}

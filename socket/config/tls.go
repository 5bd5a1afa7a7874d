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
	libtls "github.com/nabbar/golib/certificates"
)

// DefaultTLS merges def into the server's TLS configuration wherever a field
// has been left at its zero value, then reduces it to a usable TLSConfig.
// A nil def is a no-op.
func (s *Server) DefaultTLS(def libtls.TLSConfig) {
	if def == nil {
		return
	}

	if merged := s.TLS.Config.NewFrom(def).Config(); merged != nil {
		s.TLS.Config = *merged
	}
}

// GetTLS returns whether TLS is enabled and, if so, the TLSConfig built from
// the merged configuration.
func (s Server) GetTLS() (bool, libtls.TLSConfig) {
	if !s.TLS.Enabled {
		return false, nil
	}

	return true, s.TLS.Config.New()
}

// DefaultTLS merges def into the client's TLS configuration wherever a field
// has been left at its zero value, then reduces it to a usable TLSConfig.
// A nil def is a no-op.
func (c *Client) DefaultTLS(def libtls.TLSConfig) {
	if def == nil {
		return
	}

	if merged := c.TLS.Config.NewFrom(def).Config(); merged != nil {
		c.TLS.Config = *merged
	}
}

// GetTLS returns whether TLS is enabled, the TLSConfig built from the merged
// configuration, and the server name to verify the peer certificate against.
func (c Client) GetTLS() (bool, libtls.TLSConfig, string) {
	if !c.TLS.Enabled {
		return false, nil, ""
	}

	return true, c.TLS.Config.New(), c.TLS.ServerName
}

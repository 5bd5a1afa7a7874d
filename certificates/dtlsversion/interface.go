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

// Package dtlsversion provides DTLS version management and parsing,
// paralleling certificates/tlsversion for the datagram transport.
//
// Unlike TLS, pion/dtls/v2 (the engine behind stream/dtlsconn) does not
// expose a negotiable min/max version field on its Config: the library
// speaks DTLS 1.2 on the wire today. Version here is therefore a floor
// a caller declares and Supported validates against, not a value handed
// to the dtls.Config directly.
package dtlsversion

import "strings"

// Version represents a DTLS protocol version. The wire values mirror the
// negative offset from 0xffff used by the DTLS record layer version field
// (RFC 6347 §4.1), the same convention crypto/tls uses for its own
// VersionTLSxx constants' DTLS counterparts.
type Version int

const (
	// VersionUnknown represents an unsupported or unrecognized DTLS version.
	VersionUnknown Version = iota

	// VersionDTLS10 represents DTLS 1.0 (RFC 4347, deprecated).
	VersionDTLS10 = Version(0xfeff)

	// VersionDTLS12 represents DTLS 1.2 (RFC 6347). This is the only
	// version stream/dtlsconn's pion/dtls/v2 engine actually speaks.
	VersionDTLS12 = Version(0xfefd)

	// VersionDTLS13 represents DTLS 1.3 (RFC 9147). Not implemented by
	// the pion/dtls/v2 engine in use; Supported reports it unsupported.
	VersionDTLS13 = Version(0xfefc)
)

// List returns all known DTLS versions, highest first.
func List() []Version {
	return []Version{
		VersionDTLS13,
		VersionDTLS12,
		VersionDTLS10,
	}
}

// Supported reports whether stream/dtlsconn's engine can negotiate v.
func Supported(v Version) bool {
	return v == VersionDTLS12
}

// Parse returns the DTLS version corresponding to a string such as
// "1.2", "dtls1.2", or "DTLS 1.2". VersionUnknown is returned when no
// known version matches.
func Parse(s string) Version {
	s = strings.ToLower(s)
	s = strings.Replace(s, "\"", "", -1) // nolint
	s = strings.Replace(s, "'", "", -1)  // nolint
	s = strings.Replace(s, "dtls", "", -1)
	s = strings.Replace(s, ".", "", -1) // nolint
	s = strings.Replace(s, "-", "", -1) // nolint
	s = strings.Replace(s, "_", "", -1) // nolint
	s = strings.Replace(s, " ", "", -1) // nolint
	s = strings.TrimSpace(s)

	switch {
	case strings.EqualFold(s, "1"):
		return VersionDTLS10
	case strings.EqualFold(s, "10"):
		return VersionDTLS10
	case strings.EqualFold(s, "12"):
		return VersionDTLS12
	case strings.EqualFold(s, "13"):
		return VersionDTLS13
	default:
		return VersionUnknown
	}
}

// ParseInt returns the DTLS version matching the record-layer wire value d.
func ParseInt(d int) Version {
	switch Version(d) {
	case VersionDTLS10:
		return VersionDTLS10
	case VersionDTLS12:
		return VersionDTLS12
	case VersionDTLS13:
		return VersionDTLS13
	default:
		return VersionUnknown
	}
}

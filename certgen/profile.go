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

package certgen

import (
	"strings"

	tlscrv "github.com/nabbar/golib/certificates/curves"
	tlsvrs "github.com/nabbar/golib/certificates/tlsversion"
)

// Profile is the tag §6 names: a point in the key-algorithm / TLS-floor
// space a generated ephemeral certificate is sized for.
type Profile uint8

const (
	// Modern favors the smallest, fastest key and restricts the floor to
	// TLS 1.3 only, for peers under this process's own control.
	Modern Profile = iota
	// Intermediate is the general-purpose default: an ECDSA P-256 key
	// with a TLS 1.2 floor, matching Mozilla's intermediate tier.
	Intermediate
	// Compatible trades key/handshake efficiency for the broadest client
	// support: an RSA-2048 key with a TLS 1.0 floor.
	Compatible
)

func (p Profile) String() string {
	switch p {
	case Modern:
		return "modern"
	case Intermediate:
		return "intermediate"
	case Compatible:
		return "compatible"
	default:
		return "unknown"
	}
}

// ParseProfile maps a profile tag string (case-insensitive) to a Profile.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "modern":
		return Modern, nil
	case "intermediate", "":
		return Intermediate, nil
	case "compatible":
		return Compatible, nil
	default:
		return 0, ErrorProfileUnknown.Error()
	}
}

type keyAlgo uint8

const (
	// algoEd25519 backs Modern: x509 signs natively with Ed25519 keys, the
	// actual "smallest, fastest, TLS-1.3-native" key algorithm; X25519 is
	// a key-exchange curve, not a certificate signature algorithm, so it
	// has no role here despite curves.X25519 naming the preferred ECDHE
	// curve a TLS 1.3 handshake over this certificate would negotiate.
	algoEd25519 keyAlgo = iota
	algoECDSA
	algoRSA
)

type profileSpec struct {
	algo       keyAlgo
	curve      tlscrv.Curves
	versionMin tlsvrs.Version
}

// TLSVersionMin reports the minimum TLS version a handshake using a
// certificate generated for p should be allowed to negotiate down to.
func (p Profile) TLSVersionMin() (tlsvrs.Version, error) {
	spec, err := p.spec()
	if err != nil {
		return 0, err
	}
	return spec.versionMin, nil
}

// Curve reports the ECDHE curve a TLS 1.3 handshake over a certificate
// generated for p would prefer to negotiate; zero-value for profiles that
// don't pin one (Compatible lets the peer's own preference decide).
func (p Profile) Curve() (tlscrv.Curves, error) {
	spec, err := p.spec()
	if err != nil {
		return 0, err
	}
	return spec.curve, nil
}

func (p Profile) spec() (profileSpec, error) {
	switch p {
	case Modern:
		return profileSpec{algo: algoEd25519, curve: tlscrv.X25519, versionMin: tlsvrs.VersionTLS13}, nil
	case Intermediate:
		return profileSpec{algo: algoECDSA, curve: tlscrv.P256, versionMin: tlsvrs.VersionTLS12}, nil
	case Compatible:
		return profileSpec{algo: algoRSA, versionMin: tlsvrs.VersionTLS10}, nil
	default:
		return profileSpec{}, ErrorProfileUnknown.Error()
	}
}

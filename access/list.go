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

package access

import (
	"net"
	"strings"
)

// Rule is one compiled allow/deny entry: either a single address (Net's
// mask covers exactly one host) or a CIDR block.
type Rule struct {
	Net net.IPNet
	Raw string
}

func (r Rule) contains(ip net.IP) bool {
	return r.Net.Contains(ip)
}

// ParseRule compiles one line of an access list: a bare IP ("192.0.2.1",
// "::1") or a CIDR block ("192.0.2.0/24").
func ParseRule(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rule{}, ErrorInvalidRule.Error()
	}

	if strings.Contains(s, "/") {
		_, ipnet, err := net.ParseCIDR(s)
		if err != nil {
			return Rule{}, ErrorInvalidRule.Error(err)
		}
		return Rule{Net: *ipnet, Raw: s}, nil
	}

	ip := net.ParseIP(s)
	if ip == nil {
		return Rule{}, ErrorInvalidRule.Error()
	}

	bits := 32
	if ip.To4() == nil {
		bits = 128
	}
	return Rule{Net: net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, Raw: s}, nil
}

// List is a compiled allow list, deny list and default policy, the
// compiled form of a Config. Deny always takes precedence over Allow.
type List struct {
	allow        []Rule
	deny         []Rule
	defaultAllow bool
}

// IsAllowed implements the is_allowed(peer_addr) predicate named in §6: a
// match in deny always rejects; otherwise a match in allow accepts;
// otherwise the default policy applies.
func (l List) IsAllowed(addr net.Addr) bool {
	ip := hostIP(addr)
	if ip == nil {
		return false
	}

	for _, r := range l.deny {
		if r.contains(ip) {
			return false
		}
	}
	for _, r := range l.allow {
		if r.contains(ip) {
			return true
		}
	}
	return l.defaultAllow
}

func hostIP(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.TCPAddr:
		return a.IP
	case *net.UDPAddr:
		return a.IP
	case *net.IPAddr:
		return a.IP
	}

	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return net.ParseIP(addr.String())
	}
	return net.ParseIP(host)
}

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

package protocol

import "strings"

var byName = map[string]NetworkProtocol{
	"tcp":      NetworkTCP,
	"tcp4":     NetworkTCP4,
	"tcp6":     NetworkTCP6,
	"udp":      NetworkUDP,
	"udp4":     NetworkUDP4,
	"udp6":     NetworkUDP6,
	"unix":     NetworkUnix,
	"unixgram": NetworkUnixGram,
	"ip":       NetworkIP,
	"ip4":      NetworkIP4,
	"ip6":      NetworkIP6,
}

// Parse resolves a network protocol name, case-insensitively, trimming
// surrounding whitespace and a single layer of quoting (", ' or `).
// Unknown input returns NetworkEmpty rather than an error: callers that need
// to reject unknown protocols should compare the result against NetworkEmpty.
func Parse(s string) NetworkProtocol {
	s = strings.TrimSpace(s)
	s = unquote(s)
	s = strings.ToLower(s)

	if p, ok := byName[s]; ok {
		return p
	}

	return NetworkEmpty
}

// ParseBytes is the []byte counterpart of Parse.
func ParseBytes(b []byte) NetworkProtocol {
	return Parse(string(b))
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

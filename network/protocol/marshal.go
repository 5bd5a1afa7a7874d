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

import (
	"encoding/json"
)

// MarshalJSON encodes the protocol as its lowercase name. An unregistered
// value (including NetworkEmpty) encodes as an empty JSON string rather than
// failing the marshal of the surrounding struct.
func (n NetworkProtocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// MarshalYAML encodes the protocol as its lowercase name.
func (n NetworkProtocol) MarshalYAML() (interface{}, error) {
	return n.String(), nil
}

// MarshalTOML encodes the protocol as a TOML quoted string.
func (n NetworkProtocol) MarshalTOML() ([]byte, error) {
	return []byte(`"` + n.String() + `"`), nil
}

// MarshalText implements encoding.TextMarshaler.
func (n NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// MarshalCBOR implements the cbor.Marshaler contract used by fxamacker/cbor.
func (n NetworkProtocol) MarshalCBOR() ([]byte, error) {
	return cborTextString(n.String()), nil
}

// cborTextString encodes a short ASCII string as a CBOR major-type-3 text
// string without pulling in the full cbor encoder for a single scalar.
func cborTextString(s string) []byte {
	l := len(s)
	var head []byte

	switch {
	case l < 24:
		head = []byte{0x60 | byte(l)}
	case l < 256:
		head = []byte{0x78, byte(l)}
	default:
		head = []byte{0x79, byte(l >> 8), byte(l)}
	}

	return append(head, s...)
}

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
	"fmt"
)

// UnmarshalJSON accepts a JSON string and resolves it via Parse. An empty
// string decodes to NetworkEmpty without error; an unknown non-empty name is
// rejected so malformed config files fail fast instead of silently dialing
// nothing.
func (n *NetworkProtocol) UnmarshalJSON(b []byte) error {
	var s string

	if len(b) == 0 {
		*n = NetworkEmpty
		return nil
	}

	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	return n.fromString(s)
}

// UnmarshalYAML decodes a YAML scalar node via Parse.
func (n *NetworkProtocol) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string

	if err := unmarshal(&s); err != nil {
		return err
	}

	return n.fromString(s)
}

// UnmarshalTOML decodes a TOML value (string or already-quoted) via Parse.
func (n *NetworkProtocol) UnmarshalTOML(v interface{}) error {
	switch t := v.(type) {
	case string:
		return n.fromString(t)
	case []byte:
		return n.fromString(string(t))
	default:
		return fmt.Errorf("protocol: unsupported TOML value %T", v)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NetworkProtocol) UnmarshalText(b []byte) error {
	return n.fromString(string(b))
}

func (n *NetworkProtocol) fromString(s string) error {
	if s == "" {
		*n = NetworkEmpty
		return nil
	}

	p := Parse(s)

	if p == NetworkEmpty {
		return fmt.Errorf("protocol: unknown network protocol %q", s)
	}

	*n = p
	return nil
}

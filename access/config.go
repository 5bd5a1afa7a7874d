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
	"bufio"
	"io"
	"strings"
)

// Config is the unit of configuration consumed by cmd/ncat: two lists of
// IP/CIDR rule strings (as loaded from flags, a config file, or an access
// list file, one entry per line) plus the policy for anything matched by
// neither.
type Config struct {
	Allow        []string `mapstructure:"allow" json:"allow" yaml:"allow"`
	Deny         []string `mapstructure:"deny" json:"deny" yaml:"deny"`
	DefaultAllow bool     `mapstructure:"default_allow" json:"default_allow" yaml:"default_allow"`
}

// Compile parses every rule in c and returns a List ready for IsAllowed
// checks. It stops at the first malformed rule.
func (c Config) Compile() (List, error) {
	allow, err := compileRules(c.Allow)
	if err != nil {
		return List{}, err
	}
	deny, err := compileRules(c.Deny)
	if err != nil {
		return List{}, err
	}
	return List{allow: allow, deny: deny, defaultAllow: c.DefaultAllow}, nil
}

func compileRules(lines []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(lines))
	for _, s := range lines {
		r, err := ParseRule(s)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// ParseFile reads one IP/CIDR rule per line from r. Blank lines and lines
// starting with '#' are ignored, matching the plain flat-file format the
// UI layer's "one IP per line" access list convention expects.
func ParseFile(r io.Reader) ([]string, error) {
	var out []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, ErrorFileRead.Error(err)
	}
	return out, nil
}

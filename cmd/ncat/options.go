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

package main

import (
	"time"

	"github.com/nabbar/golib/access"
	"github.com/nabbar/golib/certgen"
	"github.com/nabbar/golib/exec"
	"github.com/nabbar/golib/transfer"
)

// options is the flattened set of every flag cmd/ncat exposes, bound to
// viper so a config file or environment variables can supply the same
// keys the flags do. buildXxxConfig below turns this flat shape into the
// structured config each collaborator package actually consumes.
type options struct {
	// Endpoint selection.
	Listen bool
	UDP    bool
	Unix   bool
	Host   string
	Port   string

	// TLS.
	SSL        bool
	SSLCert    string
	SSLKey     string
	SSLProfile string
	SSLVerify  bool

	// SRP relay tunnel.
	RelayAddress string
	RelaySecret  string
	RelayProxy   string

	// Telnet.
	Telnet bool

	// Exec.
	ExecCmd string

	// Transfer tuning.
	IdleTimeoutMS   int64
	ConnectTimeoutS int64
	SendOnly        bool
	RecvOnly        bool
	CloseOnEOF      bool
	NoShutdown      bool
	CRLF            bool
	DelayMS         int64
	ReadBufferBytes int

	// Access control (listen mode only).
	Allow      []string
	Deny       []string
	AccessFile string
	DenyByDflt bool

	// Verbosity.
	Verbose bool
}

func (o *options) transferConfig() transfer.Config {
	return transfer.Config{
		IdleTimeoutMS:   o.IdleTimeoutMS,
		SendOnly:        o.SendOnly,
		RecvOnly:        o.RecvOnly,
		CloseOnEOF:      o.CloseOnEOF,
		NoShutdown:      o.NoShutdown,
		CRLFTranslate:   o.CRLF,
		DelayMS:         o.DelayMS,
		ReadBufferBytes: o.ReadBufferBytes,
	}
}

func (o *options) execConfig() exec.Config {
	var cfg exec.Config
	if o.IdleTimeoutMS > 0 {
		cfg.Timeout.IdleMS = o.IdleTimeoutMS
	}
	if o.ConnectTimeoutS > 0 {
		cfg.Timeout.ConnectionMS = o.ConnectTimeoutS * 1000
	}
	return cfg
}

func (o *options) accessList() (access.List, error) {
	cfg := access.Config{
		Allow:        append([]string(nil), o.Allow...),
		Deny:         append([]string(nil), o.Deny...),
		DefaultAllow: !o.DenyByDflt,
	}
	return cfg.Compile()
}

func (o *options) certProfile() (certgen.Profile, error) {
	return certgen.ParseProfile(o.SSLProfile)
}

func (o *options) connectTimeout() time.Duration {
	if o.ConnectTimeoutS <= 0 {
		return 10 * time.Second
	}
	return time.Duration(o.ConnectTimeoutS) * time.Second
}

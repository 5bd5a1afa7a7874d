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
	"context"
	"net"
	"os"
	osexec "os/exec"

	libsck "github.com/nabbar/golib/socket"
	sckcfg "github.com/nabbar/golib/socket/config"
	scksrv "github.com/nabbar/golib/socket/server"
	libstm "github.com/nabbar/golib/stream"
	libpln "github.com/nabbar/golib/stream/plain"

	"github.com/nabbar/golib/access"
	"github.com/nabbar/golib/exec"
	"github.com/nabbar/golib/transfer"
)

// runServer drives the listen-mode control flow: bind the configured
// endpoint, and for every accepted connection that clears the access list,
// wrap it exactly the same way a dialed client connection would be (TLS
// already terminated by socket/server, optional telnet wrap, then exec or
// transfer) before handing it to the one handler goroutine serving it.
func (o *options) runServer(ctx context.Context) error {
	acl, err := o.accessList()
	if err != nil {
		return err
	}

	cfg := sckcfg.Server{
		Network:   resolveNetwork(o),
		Address:   net.JoinHostPort(o.Host, o.Port),
		GroupPerm: -1,
	}
	if o.Unix {
		cfg.Address = o.Host
	}

	if o.SSL {
		tcfg, terr := o.tlsConfig([]string{o.Host})
		if terr != nil {
			return terr
		}
		cfg.TLS = sckcfg.ServerTLS{Enabled: true, Config: tcfg}
	}

	handler := func(c libsck.Context) {
		if !acl.IsAllowed(strAddr(c.RemoteHost())) {
			_ = c.Close()
			return
		}

		var s libstm.Stream = libpln.New(c)
		s = o.wrapTelnet(s)

		if o.ExecCmd != "" {
			cmd := osexec.CommandContext(c, "/bin/sh", "-c", o.ExecCmd)
			_ = exec.New(cmd, s, o.execConfig()).Run(c)
			return
		}
		_ = transfer.New(o.transferConfig()).Run(c, s, os.Stdin, os.Stdout)
	}

	srv, err := scksrv.New(nil, handler, cfg)
	if err != nil {
		return err
	}

	return srv.Listen(ctx)
}

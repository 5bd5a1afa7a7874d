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

	libptc "github.com/nabbar/golib/network/protocol"
	sckclt "github.com/nabbar/golib/socket/client"
	sckcfg "github.com/nabbar/golib/socket/config"
	libstm "github.com/nabbar/golib/stream"
	libpln "github.com/nabbar/golib/stream/plain"

	"github.com/nabbar/golib/exec"
	"github.com/nabbar/golib/transfer"
)

// runClient drives the client-mode control flow: resolve a raw stream
// (relay tunnel, or a direct dial optionally upgraded through TLS),
// optionally wrap it with the telnet engine, and hand the result to
// either the exec session or the transfer loop.
func (o *options) runClient(ctx context.Context) error {
	s, err := o.dialStream(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	s = o.wrapTelnet(s)

	if o.ExecCmd != "" {
		return o.runExec(ctx, s)
	}
	return transfer.New(o.transferConfig()).Run(ctx, s, os.Stdin, os.Stdout)
}

// dialStream obtains the raw connection: a relay/SRP tunnel when
// --relay-secret is set, otherwise a direct (optionally TLS) dial through
// socket/client.
func (o *options) dialStream(ctx context.Context) (libstm.Stream, error) {
	if o.RelaySecret != "" {
		return o.dialRelay(ctx)
	}

	network := resolveNetwork(o)

	cfg := sckcfg.Client{
		Network: network,
		Address: net.JoinHostPort(o.Host, o.Port),
	}
	if o.Unix {
		cfg.Address = o.Host
	}

	if o.SSL {
		tcfg, err := o.tlsConfig([]string{o.Host})
		if err != nil {
			return nil, err
		}
		cfg.TLS = sckcfg.ClientTLS{
			Enabled:    true,
			Config:     tcfg,
			ServerName: o.Host,
		}
	}

	cli, err := sckclt.New(cfg, nil)
	if err != nil {
		return nil, err
	}

	dctx, cancel := context.WithTimeout(ctx, o.connectTimeout())
	defer cancel()
	if err = cli.Connect(dctx); err != nil {
		return nil, err
	}

	return libpln.New(cli), nil
}

func (o *options) runExec(ctx context.Context, s libstm.Stream) error {
	cmd := osexec.CommandContext(ctx, "/bin/sh", "-c", o.ExecCmd)
	return exec.New(cmd, s, o.execConfig()).Run(ctx)
}

func resolveNetwork(o *options) libptc.NetworkProtocol {
	switch {
	case o.Unix:
		return libptc.NetworkUnix
	case o.UDP:
		return libptc.NetworkUDP
	default:
		return libptc.NetworkTCP
	}
}

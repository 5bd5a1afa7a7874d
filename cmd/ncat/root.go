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

// Command ncat is a netcat-class network utility: it connects to, or
// listens on, a TCP/UDP/Unix endpoint and shuttles bytes between that
// connection and the local stdin/stdout, optionally through a TLS wrapper,
// an SRP-authenticated relay tunnel, a telnet option-negotiation layer, or
// a spawned command in place of the local terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/golib/access"
)

var (
	opt = &options{}
	cfg = viper.New()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ncat [flags] host port",
		Short: "connect to or listen on a network endpoint and shuttle stdin/stdout over it",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runRoot,
	}

	fl := cmd.Flags()
	fl.BoolVarP(&opt.Listen, "listen", "l", false, "listen instead of connecting")
	fl.BoolVarP(&opt.UDP, "udp", "u", false, "use UDP instead of TCP")
	fl.BoolVar(&opt.Unix, "unix", false, "treat host as a Unix socket path")

	fl.BoolVar(&opt.SSL, "ssl", false, "wrap the connection in TLS")
	fl.StringVar(&opt.SSLCert, "ssl-cert", "", "PEM certificate file (generates an ephemeral one if unset)")
	fl.StringVar(&opt.SSLKey, "ssl-key", "", "PEM private key file, paired with --ssl-cert")
	fl.StringVar(&opt.SSLProfile, "ssl-profile", "intermediate", "ephemeral certificate profile: modern, intermediate, compatible")
	fl.BoolVar(&opt.SSLVerify, "ssl-verify", false, "verify the peer certificate (client mode only)")

	fl.StringVar(&opt.RelayAddress, "relay", "", "relay address to rendezvous through instead of dialing directly")
	fl.StringVar(&opt.RelaySecret, "relay-secret", "", "shared secret identifying this tunnel's pair on the relay")
	fl.StringVar(&opt.RelayProxy, "relay-proxy", "", "SOCKS4/5 or HTTP CONNECT proxy URL to reach the relay through")

	fl.BoolVar(&opt.Telnet, "telnet", false, "negotiate the telnet protocol over the connection")

	fl.StringVarP(&opt.ExecCmd, "exec", "e", "", "run a command with its stdio attached to the connection instead of the local terminal")

	fl.Int64Var(&opt.IdleTimeoutMS, "idle-timeout-ms", 0, "close the connection after this many idle milliseconds (0 disables)")
	fl.Int64Var(&opt.ConnectTimeoutS, "connect-timeout", 10, "seconds to wait for a dial or relay rendezvous to complete")
	fl.BoolVar(&opt.SendOnly, "send-only", false, "never read from the connection")
	fl.BoolVar(&opt.RecvOnly, "recv-only", false, "never read from stdin")
	fl.BoolVar(&opt.CloseOnEOF, "close-on-eof", false, "end the session as soon as stdin reaches EOF")
	fl.BoolVar(&opt.NoShutdown, "no-shutdown", false, "keep reading the remote side after stdin reaches EOF")
	fl.BoolVar(&opt.CRLF, "crlf", false, "translate outgoing line endings to CRLF")
	fl.Int64Var(&opt.DelayMS, "delay-ms", 0, "pause this many milliseconds between writes")
	fl.IntVar(&opt.ReadBufferBytes, "read-buffer", 0, "per-iteration read buffer size (0 uses the default)")

	fl.StringSliceVar(&opt.Allow, "allow", nil, "allow rule (IP or CIDR), repeatable")
	fl.StringSliceVar(&opt.Deny, "deny", nil, "deny rule (IP or CIDR), repeatable")
	fl.StringVar(&opt.AccessFile, "access-file", "", "file of allow rules, one IP or CIDR per line")
	fl.BoolVar(&opt.DenyByDflt, "deny-by-default", false, "reject any peer not matched by --allow (listen mode only)")

	fl.BoolVarP(&opt.Verbose, "verbose", "v", false, "log connection lifecycle events")

	_ = cfg.BindPFlags(fl)
	cfg.SetEnvPrefix("ncat")
	cfg.AutomaticEnv()

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		opt.Host = args[0]
	}
	if len(args) > 1 {
		opt.Port = args[1]
	}

	if opt.AccessFile != "" {
		f, err := os.Open(opt.AccessFile)
		if err != nil {
			return err
		}
		rules, err := access.ParseFile(f)
		_ = f.Close()
		if err != nil {
			return err
		}
		opt.Allow = append(opt.Allow, rules...)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opt.Listen {
		return opt.runServer(ctx)
	}
	return opt.runClient(ctx)
}

// Execute runs the ncat command line, wiring a cancelable root context.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

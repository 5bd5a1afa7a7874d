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

package relay

import (
	"context"
	"net"
	"net/url"

	"golang.org/x/net/proxy"

	libsrp "github.com/nabbar/golib/srp"
)

// roleByte values exchanged in the rendezvous reply, one byte, right
// after both ends of a pair have sent their Token frame.
const (
	roleClient byte = iota
	roleServer
)

// Dial connects to the relay named by cfg.Address, through cfg.ProxyURL
// when set, sends the rendezvous token derived from cfg.Secret, and
// returns the raw connection plus the Role this process must take in the
// SRP handshake the caller drives next over that connection.
func Dial(ctx context.Context, cfg Config) (net.Conn, libsrp.Role, error) {
	if cfg.Address == "" {
		return nil, 0, ErrorAddressEmpty.Error()
	}

	d, err := dialerFor(cfg.ProxyURL)
	if err != nil {
		return nil, 0, err
	}

	conn, err := dialWithContext(ctx, d, cfg.Address)
	if err != nil {
		return nil, 0, ErrorDial.Error(err)
	}

	role, err := rendezvous(conn, Token(cfg.Secret))
	if err != nil {
		_ = conn.Close()
		return nil, 0, err
	}

	return conn, role, nil
}

func dialerFor(proxyURL string) (proxy.Dialer, error) {
	if proxyURL == "" {
		return proxy.Direct, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, ErrorProxyURLInvalid.Error(err)
	}

	d, err := proxy.FromURL(u, proxy.Direct)
	if err != nil {
		return nil, ErrorProxyDial.Error(err)
	}
	return d, nil
}

// dialWithContext honors ctx cancellation even though proxy.Dialer's
// plain Dial method predates context.Context: it prefers the optional
// proxy.ContextDialer extension most transports (including x/net/proxy's
// SOCKS and HTTP CONNECT dialers) implement, and otherwise races a plain
// Dial against ctx.Done in a goroutine.
func dialWithContext(ctx context.Context, d proxy.Dialer, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, "tcp", addr)
	}

	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := d.Dial("tcp", addr)
		ch <- result{c, err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.conn != nil {
				_ = r.conn.Close()
			}
		}()
		return nil, ctx.Err()
	case r := <-ch:
		return r.conn, r.err
	}
}

// rendezvous sends the token frame and reads back the single role byte
// the relay assigns by connection order: the first of a paired pair to
// arrive plays the server role, the second plays the client role.
func rendezvous(conn net.Conn, token []byte) (libsrp.Role, error) {
	if err := writeFrame(conn, token); err != nil {
		return 0, err
	}

	reply, err := readFrame(conn)
	if err != nil {
		return 0, err
	}
	if len(reply) != 1 {
		return 0, ErrorRendezvous.Error()
	}

	switch reply[0] {
	case roleServer:
		return libsrp.RoleServer, nil
	case roleClient:
		return libsrp.RoleClient, nil
	default:
		return 0, ErrorRendezvous.Error()
	}
}

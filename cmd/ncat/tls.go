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
	"os"

	libtls "github.com/nabbar/golib/certificates"
	tlscrt "github.com/nabbar/golib/certificates/certs"
	"github.com/nabbar/golib/certgen"
)

// loadOrGenerateCert resolves the certificate/key pair a TLS listener or
// dialer needs: a cert/key file pair when --ssl-cert/--ssl-key are set, or
// an ephemeral self-signed pair sized for the requested profile otherwise.
// hosts seeds the SAN list when generating; it is ignored when loading an
// explicit pair.
func (o *options) loadOrGenerateCert(hosts []string) (tlscrt.Certif, error) {
	if o.SSLCert != "" && o.SSLKey != "" {
		keyPEM, err := os.ReadFile(o.SSLKey)
		if err != nil {
			return tlscrt.Certif{}, err
		}
		pubPEM, err := os.ReadFile(o.SSLCert)
		if err != nil {
			return tlscrt.Certif{}, err
		}
		c, err := tlscrt.ParsePair(string(keyPEM), string(pubPEM))
		if err != nil {
			return tlscrt.Certif{}, err
		}
		return modelOf(c), nil
	}

	profile, err := o.certProfile()
	if err != nil {
		return tlscrt.Certif{}, err
	}

	pair, err := certgen.Generate(profile, hosts, certgen.DefaultValidity)
	if err != nil {
		return tlscrt.Certif{}, err
	}

	c, err := tlscrt.ParsePair(string(pair.KeyPEM), string(pair.CertPEM))
	if err != nil {
		return tlscrt.Certif{}, err
	}
	return modelOf(c), nil
}

func modelOf(c tlscrt.Cert) tlscrt.Certif {
	if m, ok := c.(interface{ Model() tlscrt.Certif }); ok {
		return m.Model()
	}
	return tlscrt.Certif{}
}

// tlsConfig builds the certificates.Config backing either side of the
// connection: the generated or loaded certificate, plus the version floor
// the requested profile names (ignored when an explicit cert/key pair is
// used, since there is then no profile to consult).
func (o *options) tlsConfig(hosts []string) (libtls.Config, error) {
	cert, err := o.loadOrGenerateCert(hosts)
	if err != nil {
		return libtls.Config{}, err
	}

	cfg := libtls.Config{
		Certs:          []tlscrt.Certif{cert},
		InheritDefault: true,
	}

	if o.SSLCert == "" || o.SSLKey == "" {
		profile, perr := o.certProfile()
		if perr != nil {
			return libtls.Config{}, perr
		}
		if v, verr := profile.TLSVersionMin(); verr == nil {
			cfg.VersionMin = v
		}
		if c, cerr := profile.Curve(); cerr == nil && c != 0 {
			cfg.CurveList = append(cfg.CurveList, c)
		}
	}

	return cfg, nil
}

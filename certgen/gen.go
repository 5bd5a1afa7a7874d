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

package certgen

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"time"
)

// DefaultValidity is how long a generated certificate stays valid when
// Generate's caller doesn't need a longer-lived one; an ncat server only
// needs the certificate for the lifetime of the process that generated
// it.
const DefaultValidity = 24 * time.Hour

// Pair is the PEM-encoded result of Generate: a certificate and its
// matching private key, ready to be handed straight to
// certificates/certs.Parse or tls.X509KeyPair.
type Pair struct {
	CertPEM []byte
	KeyPEM  []byte
}

// Generate builds a self-signed certificate sized for profile, valid for
// validity (DefaultValidity if zero), covering hosts as both DNS names
// and, where a host parses as an IP, as an IP SAN.
func Generate(profile Profile, hosts []string, validity time.Duration) (Pair, error) {
	spec, err := profile.spec()
	if err != nil {
		return Pair{}, err
	}
	if validity <= 0 {
		validity = DefaultValidity
	}

	pub, signer, keyDER, err := generateKey(spec.algo)
	if err != nil {
		return Pair{}, err
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return Pair{}, ErrorCertGeneration.Error(err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Organization: []string{"ncat ephemeral"},
			CommonName:   commonName(hosts),
		},
		NotBefore:             time.Now().Add(-5 * time.Minute),
		NotAfter:              time.Now().Add(validity),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			tmpl.IPAddresses = append(tmpl.IPAddresses, ip)
		} else {
			tmpl.DNSNames = append(tmpl.DNSNames, h)
		}
	}

	certDER, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, pub, signer)
	if err != nil {
		return Pair{}, ErrorCertGeneration.Error(err)
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})
	if certPEM == nil || keyPEM == nil {
		return Pair{}, ErrorEncoding.Error()
	}

	return Pair{CertPEM: certPEM, KeyPEM: keyPEM}, nil
}

func generateKey(algo keyAlgo) (pub crypto.PublicKey, signer crypto.Signer, pkcs8DER []byte, err error) {
	switch algo {
	case algoEd25519:
		p, s, e := ed25519.GenerateKey(rand.Reader)
		if e != nil {
			return nil, nil, nil, ErrorKeyGeneration.Error(e)
		}
		der, e := x509.MarshalPKCS8PrivateKey(s)
		if e != nil {
			return nil, nil, nil, ErrorKeyGeneration.Error(e)
		}
		return p, s, der, nil

	case algoECDSA:
		s, e := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if e != nil {
			return nil, nil, nil, ErrorKeyGeneration.Error(e)
		}
		der, e := x509.MarshalPKCS8PrivateKey(s)
		if e != nil {
			return nil, nil, nil, ErrorKeyGeneration.Error(e)
		}
		return &s.PublicKey, s, der, nil

	case algoRSA:
		s, e := rsa.GenerateKey(rand.Reader, 2048)
		if e != nil {
			return nil, nil, nil, ErrorKeyGeneration.Error(e)
		}
		der, e := x509.MarshalPKCS8PrivateKey(s)
		if e != nil {
			return nil, nil, nil, ErrorKeyGeneration.Error(e)
		}
		return &s.PublicKey, s, der, nil

	default:
		return nil, nil, nil, ErrorProfileUnknown.Error()
	}
}

func commonName(hosts []string) string {
	if len(hosts) == 0 {
		return "localhost"
	}
	return hosts[0]
}

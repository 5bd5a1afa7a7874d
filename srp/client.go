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

package srp

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"
)

// NewClient builds a client-role session for the relay's fixed username,
// with password already stretched by StretchSecret.
func NewClient(password []byte) *Session {
	return &Session{role: RoleClient, username: FixedUsername, password: password}
}

// ClientStart generates the client's ephemeral keypair (a, A) and returns
// A for transmission to the peer.
func (s *Session) ClientStart() (*big.Int, error) {
	a, err := randExponent()
	if err != nil {
		return nil, err
	}
	s.priv = a
	s.pub = new(big.Int).Exp(groupG, a, groupN)
	return s.pub, nil
}

// ClientFinish consumes the server's salt and public key B, derives the
// shared key K, and returns this side's proof M1 for the server to check.
func (s *Session) ClientFinish(salt []byte, serverPub *big.Int) ([]byte, error) {
	if isZeroModN(serverPub) {
		return nil, ErrorPublicKeyZero.Error()
	}
	s.salt = salt
	s.peer = serverPub

	u := computeU(s.pub, serverPub)
	x := computeX(salt, s.username, s.password)
	k := computeK()

	// S = (B - k*g^x) ^ (a + u*x) mod N
	gx := new(big.Int).Exp(groupG, x, groupN)
	kgx := new(big.Int).Mul(k, gx)
	base := new(big.Int).Sub(serverPub, kgx)
	base.Mod(base, groupN)

	exp := new(big.Int).Mul(u, x)
	exp.Add(exp, s.priv)

	shared := new(big.Int).Exp(base, exp, groupN)
	s.key = sha256Sum(shared.Bytes())

	return clientProof(s.pub, serverPub, s.key), nil
}

// ClientVerify checks the server's proof M2 against the session key.
func (s *Session) ClientVerify(serverProof []byte) error {
	want := serverProof2(s.pub, clientProof(s.pub, s.peer, s.key), s.key)
	if !constEq(want, serverProof) {
		return ErrorProofMismatch.Error()
	}
	return nil
}

// Key returns the derived session key once the handshake has completed.
func (s *Session) Key() []byte {
	return s.key
}

func randExponent() (*big.Int, error) {
	buf := make([]byte, (groupN.BitLen()+7)/8)
	if _, err := rand.Read(buf); err != nil {
		return nil, ErrorRandom.Error()
	}
	return new(big.Int).SetBytes(buf), nil
}

func computeU(a, b *big.Int) *big.Int {
	h := sha256.New()
	h.Write(padTo(a.Bytes(), len(groupN.Bytes())))
	h.Write(padTo(b.Bytes(), len(groupN.Bytes())))
	return new(big.Int).SetBytes(h.Sum(nil))
}

func isZeroModN(v *big.Int) bool {
	m := new(big.Int).Mod(v, groupN)
	return m.Sign() == 0
}

func sha256Sum(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

func clientProof(a, b *big.Int, key []byte) []byte {
	h := sha256.New()
	h.Write(a.Bytes())
	h.Write(b.Bytes())
	h.Write(key)
	return h.Sum(nil)
}

func serverProof2(a *big.Int, m1 []byte, key []byte) []byte {
	h := sha256.New()
	h.Write(a.Bytes())
	h.Write(m1)
	h.Write(key)
	return h.Sum(nil)
}

func constEq(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

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

import "math/big"

// NewServer builds a server-role session from a previously enrolled
// Verifier (the "verifier database" entry the relay's username callback
// looked up).
func NewServer(v *Verifier) *Session {
	return &Session{role: RoleServer, username: v.Username, salt: v.Salt, v: v.V}
}

// ServerStart consumes the client's public key A, generates the server's
// ephemeral keypair (b, B), and returns (salt, B) for transmission.
func (s *Session) ServerStart(clientPub *big.Int) ([]byte, *big.Int, error) {
	if isZeroModN(clientPub) {
		return nil, nil, ErrorPublicKeyZero.Error()
	}
	s.peer = clientPub

	b, err := randExponent()
	if err != nil {
		return nil, nil, err
	}
	s.priv = b

	k := computeK()
	kv := new(big.Int).Mul(k, s.v)
	gb := new(big.Int).Exp(groupG, b, groupN)
	B := new(big.Int).Add(kv, gb)
	B.Mod(B, groupN)
	s.pub = B

	return s.salt, B, nil
}

// ServerFinish derives the shared key K and checks the client's proof M1,
// returning this side's proof M2 on success.
func (s *Session) ServerFinish(clientProofBytes []byte) ([]byte, error) {
	u := computeU(s.peer, s.pub)

	// S = (A * v^u) ^ b mod N
	vu := new(big.Int).Exp(s.v, u, groupN)
	base := new(big.Int).Mul(s.peer, vu)
	base.Mod(base, groupN)

	shared := new(big.Int).Exp(base, s.priv, groupN)
	s.key = sha256Sum(shared.Bytes())

	want := clientProof(s.peer, s.pub, s.key)
	if !constEq(want, clientProofBytes) {
		return nil, ErrorProofMismatch.Error()
	}

	return serverProof2(s.peer, clientProofBytes, s.key), nil
}

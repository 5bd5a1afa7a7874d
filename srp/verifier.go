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

// StretchSecret validates the shared secret's length and stretches it into
// a fixed-length password via SHA-256, matching the relay's "derived
// password" handshake step.
func StretchSecret(secret []byte) ([]byte, error) {
	if len(secret) < MinSecretLen || len(secret) > MaxSecretLen {
		return nil, ErrorSecretLength.Error()
	}
	sum := sha256.Sum256(secret)
	return sum[:], nil
}

// NewVerifier builds a Verifier for username from a stretched password,
// generating a fresh random salt.
func NewVerifier(username string, password []byte) (*Verifier, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, ErrorRandom.Error()
	}

	x := computeX(salt, username, password)
	v := new(big.Int).Exp(groupG, x, groupN)

	return &Verifier{Username: username, Salt: salt, V: v}, nil
}

// computeX derives x = H(salt || H(username || ":" || password)) mod N,
// the standard SRP-6a private-key derivation.
func computeX(salt []byte, username string, password []byte) *big.Int {
	inner := sha256.New()
	inner.Write([]byte(username))
	inner.Write([]byte(":"))
	inner.Write(password)
	innerSum := inner.Sum(nil)

	outer := sha256.New()
	outer.Write(salt)
	outer.Write(innerSum)
	outerSum := outer.Sum(nil)

	return new(big.Int).SetBytes(outerSum)
}

// computeK derives k = H(N || g), the SRP-6a multiplier parameter.
func computeK() *big.Int {
	h := sha256.New()
	h.Write(groupN.Bytes())
	h.Write(padTo(groupG.Bytes(), len(groupN.Bytes())))
	return new(big.Int).SetBytes(h.Sum(nil))
}

func padTo(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}

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

// Role identifies which side of the handshake a session plays; the relay
// assigns this by connection order, independent of the user's listen or
// connect invocation.
type Role uint8

const (
	RoleClient Role = iota
	RoleServer
)

// MinSecretLen and MaxSecretLen bound the shared secret accepted from the
// operator before it is stretched into a fixed-length password.
const (
	MinSecretLen = 8
	MaxSecretLen = 1024
)

// Verifier is the server-side enrollment record for one username: a
// random salt and the verifier value v = g^x mod N.
type Verifier struct {
	Username string
	Salt     []byte
	V        *big.Int
}

// Session holds one SRP-6a handshake's running state. Exactly one of the
// client/server step sequences below is driven depending on Role.
type Session struct {
	role Role

	// long-term input
	username string
	password []byte

	// per-session ephemeral keys
	priv *big.Int // client: a, server: b
	pub  *big.Int // client: A, server: B
	peer *big.Int // client: B, server: A

	salt []byte
	v    *big.Int // server only

	key []byte // derived session key K, set once both sides agree
}

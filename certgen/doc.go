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

// Package certgen is the certificate generator external collaborator
// named in §6: given a profile tag (Modern, Intermediate, Compatible) it
// returns a PEM-encoded self-signed certificate and private key for
// ephemeral TLS server use, with no disk round-trip.
//
// A profile fixes the key algorithm/curve and the certificate's TLS
// version floor, matching the same three-tier naming and tiering the
// Mozilla server-side TLS recommendations use and that
// certificates/cipher, certificates/curves and certificates/tlsversion
// already encode as Cipher/Curves/Version constants. certgen only picks
// a point within that space to size the generated key; it does not
// replace certificates' own TLS configuration surface.
package certgen

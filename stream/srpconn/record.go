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

package srpconn

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// recordKeys holds the two directional key pairs (encrypt+MAC) derived
// from the SRP session key, one pair per direction so client-to-server and
// server-to-client traffic never share a keystream.
type recordKeys struct {
	encKey []byte
	macKey []byte
}

func deriveKeys(sessionKey []byte, label string) (recordKeys, error) {
	r := hkdf.New(sha256.New, sessionKey, nil, []byte(label))
	out := make([]byte, 64)
	if _, err := io.ReadFull(r, out); err != nil {
		return recordKeys{}, err
	}
	return recordKeys{encKey: out[:32], macKey: out[32:]}, nil
}

// sealRecord encrypts plaintext with AES-256-CBC under a fresh random IV
// and appends an HMAC-SHA256 tag over IV||ciphertext (encrypt-then-MAC).
func sealRecord(k recordKeys, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(k.encKey)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plaintext, block.BlockSize())
	iv := make([]byte, block.BlockSize())
	if _, err = rand.Read(iv); err != nil {
		return nil, err
	}

	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	out := append(iv, ct...)
	mac := hmac.New(sha256.New, k.macKey)
	mac.Write(out)
	return append(out, mac.Sum(nil)...), nil
}

// openRecord verifies the HMAC tag and decrypts the record sealed by
// sealRecord.
func openRecord(k recordKeys, record []byte) ([]byte, error) {
	const macLen = sha256.Size
	block, err := aes.NewCipher(k.encKey)
	if err != nil {
		return nil, err
	}
	bs := block.BlockSize()

	if len(record) < bs+macLen {
		return nil, errRecordShort
	}

	body, tag := record[:len(record)-macLen], record[len(record)-macLen:]
	mac := hmac.New(sha256.New, k.macKey)
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), tag) {
		return nil, errRecordAuth
	}

	iv, ct := body[:bs], body[bs:]
	if len(ct)%bs != 0 || len(ct) == 0 {
		return nil, errRecordAuth
	}

	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, ct)
	return pkcs7Unpad(pt)
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	pad := make([]byte, n)
	for i := range pad {
		pad[i] = byte(n)
	}
	return append(b, pad...)
}

func pkcs7Unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, errRecordAuth
	}
	n := int(b[len(b)-1])
	if n == 0 || n > len(b) {
		return nil, errRecordAuth
	}
	return b[:len(b)-n], nil
}

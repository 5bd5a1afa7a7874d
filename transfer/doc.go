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

// Package transfer implements the bidirectional byte-shuttling loop between
// a stream.Stream and the local process's standard I/O: the canonical
// consumer of a Stream once it has been dialed, upgraded through TLS/DTLS/
// SRP and optionally wrapped by the telnet engine.
//
// The loop is driven by two independent pump goroutines (local-to-remote,
// remote-to-local) feeding a single select-driven coordinator that owns all
// timing decisions: idle timeout, traffic-shaping delay, and periodic
// Stream.Maintain calls. This replaces the single-threaded non-blocking
// poll loop a C rendition would use with Go's native blocking-read-per-
// goroutine idiom; the externally observable EOF, timeout, shaping and
// shutdown semantics are unchanged.
package transfer

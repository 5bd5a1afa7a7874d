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

// Package exec owns a spawned child process's three pipes and multiplexes
// them against a connected stream.Stream: the Stream's bytes feed the
// child's stdin, and the child's stdout/stderr are fanned into the
// Stream's write side. Buffering is bounded per channel and globally, with
// hysteresis pause/resume so a slow peer cannot grow memory without limit.
//
// The public contract (Session, its Config types, its termination and
// failure semantics) is identical regardless of platform. Only the
// low-level "wait for the next readiness event" step would differ across
// a ring-based, poll-based or thread-per-pipe backend in a language without
// a managed runtime; in Go, every blocking Read/Write already multiplexes
// through the runtime's integrated netpoller (epoll on Linux, kqueue on
// BSD/Darwin, IOCP on Windows), so one goroutine-per-channel
// implementation already gets the effect all three backends exist to
// provide in the original design. See DESIGN.md for the detailed
// reasoning and the one genuine platform split this package keeps: how a
// still-alive child is told to terminate.
package exec

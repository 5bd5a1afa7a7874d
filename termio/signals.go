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

package termio

import (
	"os"
	"os/signal"
)

// SupportsSignalTranslation reports whether this process can receive the
// os.Signal values telnet's IP/BRK/AYT commands translate to. True
// everywhere Go's os/signal package itself works.
func SupportsSignalTranslation() bool {
	return true
}

// SignalHandlers delivers process signals translated from telnet command
// bytes (IP -> os.Interrupt, BRK -> a break signal where the platform
// has one) to the caller-supplied handle until Stop is called.
type SignalHandlers struct {
	ch chan os.Signal
}

// InstallSignalHandlers subscribes to sig and returns a handle whose C
// channel receives every occurrence until Stop is called.
func InstallSignalHandlers(sig ...os.Signal) *SignalHandlers {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sig...)
	return &SignalHandlers{ch: ch}
}

// C returns the channel signal occurrences arrive on.
func (h *SignalHandlers) C() <-chan os.Signal {
	return h.ch
}

// Stop releases the signal subscription.
func (h *SignalHandlers) Stop() {
	signal.Stop(h.ch)
}

//go:build linux || darwin

/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package unixgram_test

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	scksrv "github.com/nabbar/golib/socket/server/unixgram"
)

var _ = Describe("Unixgram Lifecycle", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		srv    scksrv.ServerUnixGram
		path   string
	)
	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)

		var err error
		srv, path, err = createServerWithHandler(newTestHandler(false).handler)
		Expect(err).ToNot(HaveOccurred())
	})
	AfterEach(func() {
		if srv != nil && srv.IsRunning() {
			_ = srv.Shutdown(ctx)
		}

		_ = os.Remove(path)

		if cancel != nil {
			cancel()
		}
	})
	Describe("Listen", func() {
		It("should start", func() {
			startServer(srv, ctx)
			Expect(srv.IsRunning()).To(BeTrue())
		})
		It("should create file", func() {
			startServer(srv, ctx)
			_, err := os.Stat(path)
			Expect(err).ToNot(HaveOccurred())
		})
	})
	Describe("Shutdown", func() {
		It("should stop", func() {
			startServer(srv, ctx)
			Expect(srv.Shutdown(ctx)).ToNot(HaveOccurred())
			Eventually(func() bool {
				return !srv.IsRunning()
			}, 3*time.Second, 10*time.Millisecond).Should(BeTrue())
		})
	})
	Describe("Close", func() {
		It("should stop", func() {
			startServer(srv, ctx)
			Expect(srv.Close()).ToNot(HaveOccurred())
			Eventually(func() bool {
				return !srv.IsRunning()
			}, 3*time.Second, 10*time.Millisecond).Should(BeTrue())
		})
	})
})

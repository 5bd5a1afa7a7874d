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

package udp_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/golib/socket/server/udp"
)

var _ = Describe("UDP Datagram Handling", func() {
	var (
		srv     udp.ServerUdp
		ctx     context.Context
		cancel  context.CancelFunc
		address string
	)
	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)

		var err error
		address = getTestAddress()
		srv, err = createServerWithHandler(newTestHandler(false).handler)
		Expect(err).ToNot(HaveOccurred())
		Expect(srv.RegisterServer(address)).ToNot(HaveOccurred())

		startServer(srv, ctx)
	})
	AfterEach(func() {
		if cancel != nil {
			cancel()
		}
		if srv != nil {
			_ = srv.Close()
		}
	})
	It("should handle single datagram", func() {
		data := []byte("test")
		Expect(sendUDPDatagram(address, data)).ToNot(HaveOccurred())
		time.Sleep(100 * time.Millisecond)
	})
	It("should handle multiple datagrams", func() {
		for i := 0; i < 10; i++ {
			Expect(sendUDPDatagram(address, []byte("test"))).ToNot(HaveOccurred())
		}
		time.Sleep(200 * time.Millisecond)
	})
})

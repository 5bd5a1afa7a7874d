/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

package semaphore

import (
	"context"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progressBar mirrors a semaphore's active worker count onto an mpb bar
// showing "<active>/<max> workers".
type progressBar struct {
	p *mpb.Progress
	b *mpb.Bar
}

func newProgressBar(ctx context.Context, max int64) *progressBar {
	p := mpb.NewWithContext(ctx)
	b := p.AddBar(max,
		mpb.PrependDecorators(decor.Name("workers")),
		mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
	)
	return &progressBar{p: p, b: b}
}

func (pb *progressBar) setCurrent(n int64) {
	if n < 0 {
		n = 0
	}
	pb.b.SetCurrent(n)
}

func (pb *progressBar) close() {
	if !pb.b.Completed() {
		pb.b.Abort(false)
	}
	pb.p.Wait()
}

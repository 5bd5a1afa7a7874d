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

// Package pidcontroller implements a minimal discrete PID feedback loop used
// to pace a value from a start point to a setpoint in unevenly spaced steps,
// instead of linear interpolation.
package pidcontroller

import "context"

// PID is a discrete proportional-integral-derivative controller.
type PID struct {
	rateP float64
	rateI float64
	rateD float64
}

// New returns a PID controller with the given proportional, integral and
// derivative rates.
func New(rateP, rateI, rateD float64) *PID {
	return &PID{rateP: rateP, rateI: rateI, rateD: rateD}
}

// next computes the correction to apply given the current error and the
// accumulated integral/previous error state.
func (p *PID) next(errVal, integral, prevErr float64) (out, newIntegral float64) {
	integral += errVal
	derivative := errVal - prevErr
	out = p.rateP*errVal + p.rateI*integral + p.rateD*derivative
	return out, integral
}

// RangeCtx walks from start to end, appending each intermediate value the
// controller settles on until the setpoint is reached or ctx is canceled.
// The step size shrinks as the remaining error shrinks, producing a
// front-loaded then fine-grained sequence instead of uniform spacing.
func (p *PID) RangeCtx(ctx context.Context, start, end float64) []float64 {
	var (
		out      = make([]float64, 0)
		cur      = start
		integral = 0.0
		prevErr  = 0.0
		dir      = 1.0
	)

	if end < start {
		dir = -1
	}
	if start == end {
		return []float64{start}
	}

	const maxSteps = 64
	for i := 0; i < maxSteps; i++ {
		select {
		case <-ctx.Done():
			return out
		default:
		}

		remaining := dir * (end - cur)
		if remaining <= 0 {
			break
		}

		step, newIntegral := p.next(remaining, integral, prevErr)
		integral = newIntegral
		prevErr = remaining

		if step <= 0 {
			step = remaining
		}
		if step > remaining {
			step = remaining
		}

		cur += dir * step
		out = append(out, cur)

		if dir*(end-cur) <= 1e-9 {
			break
		}
	}

	if len(out) == 0 || out[len(out)-1] != end {
		out = append(out, end)
	}

	return out
}

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

package exec

import "time"

const (
	defaultStdinCapacity  = 32 * 1024
	defaultStdoutCapacity = 64 * 1024
	defaultStderrCapacity = 32 * 1024

	defaultMaxTotalBufferBytes = 256 * 1024
	defaultPauseThresholdPct   = 0.85
	defaultResumeThresholdPct  = 0.60
)

// BufferConfig bounds the three per-channel byte queues sitting between the
// child process's pipes and the connected stream.
type BufferConfig struct {
	StdinCapacity  int
	StdoutCapacity int
	StderrCapacity int
}

func (b BufferConfig) withDefaults() BufferConfig {
	if b.StdinCapacity <= 0 {
		b.StdinCapacity = defaultStdinCapacity
	}
	if b.StdoutCapacity <= 0 {
		b.StdoutCapacity = defaultStdoutCapacity
	}
	if b.StderrCapacity <= 0 {
		b.StderrCapacity = defaultStderrCapacity
	}
	return b
}

// TimeoutConfig bounds the lifetime of a session. A zero value disables the
// corresponding timeout.
type TimeoutConfig struct {
	ConnectionMS int64
	IdleMS       int64
	OverallMS    int64
}

func (t TimeoutConfig) connection() time.Duration {
	return msDuration(t.ConnectionMS)
}

func (t TimeoutConfig) idle() time.Duration {
	return msDuration(t.IdleMS)
}

func (t TimeoutConfig) overall() time.Duration {
	return msDuration(t.OverallMS)
}

func msDuration(ms int64) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// FlowConfig caps the combined size of all buffered-but-not-yet-flushed
// bytes across the three channels, and sets the hysteresis thresholds at
// which the session pauses reading from the child/stream and resumes.
type FlowConfig struct {
	MaxTotalBufferBytes int64
	PauseThresholdPct   float64
	ResumeThresholdPct  float64
}

func (f FlowConfig) withDefaults() FlowConfig {
	if f.MaxTotalBufferBytes <= 0 {
		f.MaxTotalBufferBytes = defaultMaxTotalBufferBytes
	}
	if f.PauseThresholdPct <= 0 {
		f.PauseThresholdPct = defaultPauseThresholdPct
	}
	if f.ResumeThresholdPct <= 0 {
		f.ResumeThresholdPct = defaultResumeThresholdPct
	}
	return f
}

func (f FlowConfig) pauseAt() int64 {
	return int64(float64(f.MaxTotalBufferBytes) * f.PauseThresholdPct)
}

func (f FlowConfig) resumeAt() int64 {
	return int64(float64(f.MaxTotalBufferBytes) * f.ResumeThresholdPct)
}

// Config groups every knob a Session needs.
type Config struct {
	Buffer  BufferConfig
	Timeout TimeoutConfig
	Flow    FlowConfig
}

func (c Config) withDefaults() Config {
	c.Buffer = c.Buffer.withDefaults()
	c.Flow = c.Flow.withDefaults()
	return c
}

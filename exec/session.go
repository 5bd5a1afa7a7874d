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

import (
	"context"
	"io"
	osexec "os/exec"
	"sync"
	"sync/atomic"
	"time"

	liberr "github.com/nabbar/golib/errors"
	"github.com/nabbar/golib/logger"
	loglvl "github.com/nabbar/golib/logger/level"
	libstm "github.com/nabbar/golib/stream"
)

const idlePollInterval = 50 * time.Millisecond

// Session owns one spawned child process and multiplexes its stdin, stdout
// and stderr pipes against a connected Stream. A Session is single-use: call
// Run once and discard it.
type Session struct {
	cmd *osexec.Cmd
	s   libstm.Stream
	cfg Config
	log logger.FuncLog

	gate    *flowGate
	stdinQ  *queue
	stdoutQ *queue
	stderrQ *queue

	streamMu sync.Mutex

	lastActivity atomic.Int64

	abortCh   chan struct{}
	abortOnce sync.Once
	finalErr  error
}

// Option configures a Session at construction.
type Option func(*Session)

// WithLogger attaches a logger.FuncLog used for debug-level tracing of
// channel closures and termination reasons.
func WithLogger(l logger.FuncLog) Option {
	return func(s *Session) {
		s.log = l
	}
}

// New builds a Session around cmd (not yet started) and s. cmd's Stdin,
// Stdout and Stderr must be left unset: New attaches pipes to them.
func New(cmd *osexec.Cmd, s libstm.Stream, cfg Config, opts ...Option) *Session {
	cfg = cfg.withDefaults()

	sess := &Session{
		cmd:     cmd,
		s:       s,
		cfg:     cfg,
		abortCh: make(chan struct{}),
	}
	sess.gate = newFlowGate(cfg.Flow)
	sess.stdinQ = newQueue(cfg.Buffer.StdinCapacity, sess.gate)
	sess.stdoutQ = newQueue(cfg.Buffer.StdoutCapacity, sess.gate)
	sess.stderrQ = newQueue(cfg.Buffer.StderrCapacity, sess.gate)
	setProcGroup(cmd)

	for _, o := range opts {
		o(sess)
	}
	return sess
}

func (sess *Session) trace(msg string, args ...interface{}) {
	if sess.log == nil {
		return
	}
	if l := sess.log(); l != nil {
		l.Entry(loglvl.DebugLevel, msg, args...).Log()
	}
}

func (sess *Session) touch() {
	sess.lastActivity.Store(time.Now().UnixNano())
}

// terminate records the final outcome, closes abortCh to unblock every
// pump and queue wait, closes the Stream, and kills the child if it is
// still alive. It is safe to call multiple times; only the first call's
// reason is kept.
func (sess *Session) terminate(reason error) {
	sess.abortOnce.Do(func() {
		sess.finalErr = reason
		close(sess.abortCh)
		sess.stdinQ.abort()
		sess.stdoutQ.abort()
		sess.stderrQ.abort()
		_ = sess.s.Close()
		sess.killChild()
	})
}

func (sess *Session) killChild() {
	if sess.cmd.Process == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		_, _ = sess.cmd.Process.Wait()
		close(done)
	}()
	select {
	case <-done:
		return
	case <-time.After(200 * time.Millisecond):
	}
	terminateProcess(sess.cmd)
}

// Run starts the child process and blocks until the session reaches one of
// its termination conditions: the Stream closes cleanly with stdin fully
// drained, both output pipes reach EOF with every buffered byte flushed to
// the Stream, a configured timeout elapses, or a fatal Stream I/O error
// occurs. It returns nil on an orderly finish.
func (sess *Session) Run(ctx context.Context) error {
	stdinPipe, err := sess.cmd.StdinPipe()
	if err != nil {
		return ErrorStartFailed.Error(err)
	}
	stdoutPipe, err := sess.cmd.StdoutPipe()
	if err != nil {
		return ErrorStartFailed.Error(err)
	}
	stderrPipe, err := sess.cmd.StderrPipe()
	if err != nil {
		return ErrorStartFailed.Error(err)
	}

	// Start itself never blocks on the child's execution (only on the
	// fork/exec syscall), so ConnectionMS has nothing meaningful to bound
	// here; it is honored by the per-platform dialer that hands this
	// Session its Stream before Run is ever called.
	if err = sess.cmd.Start(); err != nil {
		return ErrorStartFailed.Error(err)
	}

	sess.touch()

	var overallC <-chan time.Time
	if d := sess.cfg.Timeout.overall(); d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		overallC = t.C
	}

	var idleTicker *time.Ticker
	var idleC <-chan time.Time
	if d := sess.cfg.Timeout.idle(); d > 0 {
		idleTicker = time.NewTicker(idlePollInterval)
		defer idleTicker.Stop()
		idleC = idleTicker.C
	}

	var pumps sync.WaitGroup
	pumps.Add(2)
	go sess.pumpStreamToQueue(sess.stdinQ, &pumps)
	go sess.pumpQueueToChildStdin(stdinPipe, &pumps)

	var outputs sync.WaitGroup
	outputs.Add(4)
	go sess.pumpChildPipeToQueue(stdoutPipe, sess.stdoutQ, &outputs)
	go sess.pumpChildPipeToQueue(stderrPipe, sess.stderrQ, &outputs)
	go sess.pumpQueueToStream(sess.stdoutQ, &outputs)
	go sess.pumpQueueToStream(sess.stderrQ, &outputs)

	outputsDone := make(chan struct{})
	go func() {
		outputs.Wait()
		close(outputsDone)
	}()

	select {
	case <-ctx.Done():
		sess.terminate(ctx.Err())
	case <-overallC:
		sess.trace("exec session overall timeout, terminating")
		sess.terminate(ErrorTimeout.Error())
	case <-outputsDone:
		sess.trace("exec session output pipes drained, terminating cleanly")
		sess.terminate(nil)
	case <-sess.abortCh:
		// a pump already decided the session is over (fatal Stream error).
	case <-sess.watchIdle(idleC):
		sess.trace("exec session idle timeout, terminating")
		sess.terminate(ErrorTimeout.Error())
	}

	<-outputsDone
	pumps.Wait()

	_, _ = sess.cmd.Process.Wait()

	return sess.finalErr
}

// watchIdle returns a channel that closes the first time idleC ticks with
// no pump activity recorded since the previous tick. A nil idleC (idle
// timeout disabled) yields a channel that never fires.
func (sess *Session) watchIdle(idleC <-chan time.Time) <-chan struct{} {
	out := make(chan struct{})
	if idleC == nil {
		return out
	}
	go func() {
		idleAt := sess.cfg.Timeout.idle()
		for {
			select {
			case <-sess.abortCh:
				return
			case now := <-idleC:
				last := time.Unix(0, sess.lastActivity.Load())
				if now.Sub(last) >= idleAt {
					close(out)
					return
				}
			}
		}
	}()
	return out
}

// pumpStreamToQueue reads s and pushes into q, honoring the flow gate's
// pause/resume hysteresis. A clean Stream EOF closes q for writing so the
// child's stdin pipe is closed once any buffered bytes drain (condition i).
// A fatal Stream error terminates the whole session.
func (sess *Session) pumpStreamToQueue(q *queue, wg *sync.WaitGroup) {
	defer wg.Done()
	buf := make([]byte, 32*1024)

	for {
		sess.gate.waitWhilePaused(sess.abortCh)
		select {
		case <-sess.abortCh:
			return
		default:
		}

		n, rerr := sess.s.Read(buf)
		if n > 0 {
			sess.touch()
			if !q.push(buf[:n]) {
				return
			}
		}
		if rerr != nil {
			if isCleanClose(rerr) {
				q.closeWrite()
				return
			}
			sess.trace("stream read error: %v", rerr)
			sess.terminate(ErrorIO.Error(rerr))
			return
		}
		if n == 0 && rerr == nil {
			q.closeWrite()
			return
		}
	}
}

// pumpQueueToChildStdin drains q into the child's stdin pipe. A write
// failure is treated as the child having closed its stdin on its own: the
// channel is dropped and the session continues (failure semantics rule 1).
func (sess *Session) pumpQueueToChildStdin(w io.WriteCloser, wg *sync.WaitGroup) {
	defer wg.Done()
	defer func() { _ = w.Close() }()

	buf := make([]byte, 4096)
	q := sess.stdinQ

	for {
		n, ok := q.pop(buf)
		if n > 0 {
			sess.touch()
			if _, werr := w.Write(buf[:n]); werr != nil {
				sess.trace("child stdin closed: %v", werr)
				return
			}
		}
		if !ok {
			return
		}
	}
}

// pumpChildPipeToQueue reads one of the child's output pipes and pushes
// into q. A read error is treated as that pipe's EOF (failure semantics
// rule 2), never as fatal.
func (sess *Session) pumpChildPipeToQueue(r io.Reader, q *queue, wg *sync.WaitGroup) {
	defer wg.Done()

	buf := make([]byte, 32*1024)
	for {
		sess.gate.waitWhilePaused(sess.abortCh)
		select {
		case <-sess.abortCh:
			q.closeWrite()
			return
		default:
		}

		n, rerr := r.Read(buf)
		if n > 0 {
			sess.touch()
			if !q.push(buf[:n]) {
				return
			}
		}
		if rerr != nil {
			q.closeWrite()
			return
		}
	}
}

// pumpQueueToStream drains q and writes its bytes to the Stream, guarded by
// streamMu so the stdout and stderr writers never interleave a partial
// write. A Stream write error is fatal (failure semantics rule 3).
func (sess *Session) pumpQueueToStream(q *queue, wg *sync.WaitGroup) {
	defer wg.Done()
	buf := make([]byte, 4096)

	for {
		n, ok := q.pop(buf)
		if n > 0 {
			sess.touch()
			sess.streamMu.Lock()
			werr := writeFullStream(sess.s, buf[:n])
			sess.streamMu.Unlock()
			if werr != nil {
				sess.trace("stream write error: %v", werr)
				sess.terminate(ErrorIO.Error(werr))
				return
			}
		}
		if !ok {
			return
		}
	}
}

func writeFullStream(s libstm.Stream, out []byte) error {
	for len(out) > 0 {
		n, err := s.Write(out)
		if err != nil {
			return err
		}
		out = out[n:]
	}
	return nil
}

// isCleanClose reports whether err represents an orderly peer close rather
// than a genuine I/O failure.
func isCleanClose(err error) bool {
	if err == io.EOF {
		return true
	}
	if e := liberr.Get(err); e != nil {
		return e.HasCode(libstm.ErrorClosed)
	}
	return false
}

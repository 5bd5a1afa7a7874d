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

package transfer

import (
	"context"
	"io"
	"time"

	liberr "github.com/nabbar/golib/errors"
	"github.com/nabbar/golib/logger"
	loglvl "github.com/nabbar/golib/logger/level"
	libstm "github.com/nabbar/golib/stream"
)

// direction identifies which of the two pumps an event came from.
type direction uint8

const (
	dirLocalToRemote direction = iota
	dirRemoteToLocal
)

// event is posted by a pump goroutine to the coordinator in Run.
type event struct {
	dir direction
	n   int
	// err is nil for a clean stream-side EOF (Stream.Read returning (0,
	// nil)) and for a clean stdin EOF (io.EOF); any other value is an I/O
	// failure to propagate.
	err error
	eof bool
}

// Loop holds the configuration, logger and observer sinks shared by every
// Run invocation; it carries no per-connection state so one Loop can be
// reused across connections.
type Loop struct {
	cfg   Config
	log   logger.FuncLog
	sinks []Sink
}

// Option configures a Loop at construction.
type Option func(*Loop)

// WithLogger attaches a logger.FuncLog used for debug-verbosity tracing of
// EOF, timeout and shutdown transitions. A nil logger (the default) makes
// Run silent.
func WithLogger(l logger.FuncLog) Option {
	return func(t *Loop) {
		t.log = l
	}
}

// WithSinks attaches observer sinks that receive every byte moved in
// either direction, such as an output-to-file capture or a hex dumper.
func WithSinks(sinks ...Sink) Option {
	return func(t *Loop) {
		t.sinks = append(t.sinks, sinks...)
	}
}

// New builds a Loop from cfg and the given options.
func New(cfg Config, opts ...Option) *Loop {
	t := &Loop{cfg: cfg.withDefaults()}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Loop) trace(msg string, args ...interface{}) {
	if t.log == nil {
		return
	}
	if l := t.log(); l != nil {
		l.Entry(loglvl.DebugLevel, msg, args...).Log()
	}
}

// Run shuttles bytes between s and the local stdin/stdout until one of the
// termination conditions in the data model fires: clean EOF on both
// directions, close_on_eof, idle timeout, context cancellation, or an
// unrecoverable I/O error. It returns nil on any orderly termination and a
// non-nil error otherwise.
func (t *Loop) Run(ctx context.Context, s libstm.Stream, stdin io.Reader, stdout io.Writer) error {
	if s == nil {
		return ErrorParamsEmpty.Error()
	}

	cfg := t.cfg
	evCh := make(chan event, 2)

	localDone := cfg.RecvOnly
	remoteDone := cfg.SendOnly

	if !cfg.RecvOnly {
		go t.pumpLocalToRemote(stdin, s, cfg, evCh)
	}
	if !cfg.SendOnly {
		go t.pumpRemoteToLocal(s, stdout, cfg, evCh)
	}

	var idleC <-chan time.Time
	var idle *time.Timer
	if d := cfg.idleTimeout(); d > 0 {
		idle = time.NewTimer(d)
		idleC = idle.C
		defer idle.Stop()
	}

	maint := time.NewTicker(maintenanceInterval)
	defer maint.Stop()

	resetIdle := func() {
		if idle == nil {
			return
		}
		if !idle.Stop() {
			select {
			case <-idle.C:
			default:
			}
		}
		idle.Reset(cfg.idleTimeout())
	}

	for {
		if localDone && remoteDone {
			return nil
		}

		select {
		case <-ctx.Done():
			_ = s.Close()
			return ctx.Err()

		case <-idleC:
			t.trace("transfer idle timeout, closing stream")
			_ = s.Close()
			return ErrorTimeout.Error()

		case <-maint.C:
			_ = s.Maintain()

		case ev := <-evCh:
			resetIdle()
			_ = s.Maintain()

			switch ev.dir {
			case dirLocalToRemote:
				if ev.err != nil && !ev.eof {
					t.trace("local-to-remote I/O error: %v", ev.err)
					_ = s.Close()
					return ErrorIO.Error(ev.err)
				}

				localDone = true
				t.trace("stdin EOF")

				if !cfg.NoShutdown {
					halfCloseWrite(s)
				}
				if cfg.CloseOnEOF {
					_ = s.Close()
					return nil
				}

			case dirRemoteToLocal:
				if ev.err != nil && !ev.eof {
					t.trace("remote-to-local I/O error: %v", ev.err)
					_ = s.Close()
					return ErrorIO.Error(ev.err)
				}

				t.trace("remote stream closed")
				_ = s.Close()
				return nil
			}
		}
	}
}

// halfCloseWrite half-closes s's write side when the concrete type exposes
// a CloseWrite, matching the inline optional-interface check already used
// by this module's TCP and Unix socket clients.
func halfCloseWrite(s libstm.Stream) {
	if cw, ok := s.(interface{ CloseWrite() error }); ok {
		_ = cw.CloseWrite()
	}
}

// pumpLocalToRemote reads stdin and writes s until stdin reaches EOF or
// either side errors, posting one event per completed iteration.
func (t *Loop) pumpLocalToRemote(stdin io.Reader, s libstm.Stream, cfg Config, evCh chan<- event) {
	buf := make([]byte, cfg.ReadBufferBytes)

	for {
		n, rerr := stdin.Read(buf)

		if n > 0 {
			out := buf[:n]
			if cfg.CRLFTranslate {
				out = translateCRLF(out)
			}

			if werr := writeFull(s, out); werr != nil {
				evCh <- event{dir: dirLocalToRemote, err: werr}
				return
			}

			writeSinks(t.sinks, out)

			if d := cfg.shapingDelay(); d > 0 {
				time.Sleep(d)
			}
		}

		if rerr != nil {
			evCh <- event{dir: dirLocalToRemote, err: rerr, eof: rerr == io.EOF}
			return
		}
	}
}

// pumpRemoteToLocal reads s and writes stdout until s signals an orderly
// close (Read returning (0, nil), or a closed-stream CodeError) or either
// side errors.
func (t *Loop) pumpRemoteToLocal(s libstm.Stream, stdout io.Writer, cfg Config, evCh chan<- event) {
	buf := make([]byte, cfg.ReadBufferBytes)

	for {
		n, rerr := s.Read(buf)

		if n > 0 {
			if _, werr := stdout.Write(buf[:n]); werr != nil {
				evCh <- event{dir: dirRemoteToLocal, err: werr}
				return
			}
			writeSinks(t.sinks, buf[:n])
		}

		if rerr != nil {
			evCh <- event{dir: dirRemoteToLocal, err: rerr, eof: isCleanClose(rerr)}
			return
		}

		if n == 0 {
			evCh <- event{dir: dirRemoteToLocal, eof: true}
			return
		}
	}
}

// writeFull retries a partial write until out is fully written or an error
// occurs, per Stream.Write's short-write contract.
func writeFull(s libstm.Stream, out []byte) error {
	for len(out) > 0 {
		n, err := s.Write(out)
		if err != nil {
			return err
		}
		out = out[n:]
	}
	return nil
}

// isCleanClose reports whether err represents an orderly peer close
// (stream.ErrorClosed, or io.EOF from a Stream variant that surfaces it
// directly) rather than a genuine I/O failure.
func isCleanClose(err error) bool {
	if err == io.EOF {
		return true
	}

	if e := liberr.Get(err); e != nil {
		return e.HasCode(libstm.ErrorClosed)
	}

	return false
}

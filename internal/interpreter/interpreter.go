package interpreter

import (
	"context"
	"fmt"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.uber.org/zap"
	"io"
	"linked-queue/pkg"
	"linked-queue/pkg/data_struct"
	"strings"
	"time"
)

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
}

type Options struct {
	BufSize int
	Out     io.Writer
	Logger  *zap.Logger
	Metrics *pkg.Prometheus
}

// Interpreter drives a single queue with text commands and counts
// the commands that failed. It is not safe for concurrent use.
type Interpreter struct {
	queue   *data_struct.Queue
	bufSize int
	errors  int
	session xid.ID

	out     io.Writer
	base    *zap.Logger
	logger  *zap.Logger
	metrics *pkg.Prometheus
}

func NewInterpreter(opts Options) *Interpreter {
	in := &Interpreter{
		bufSize: opts.BufSize,
		session: xid.New(),
		out:     opts.Out,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	if in.bufSize < 1 {
		in.bufSize = 1
	}
	if in.out == nil {
		in.out = io.Discard
	}
	if in.logger == nil {
		in.logger = zap.NewNop()
	}
	if in.metrics == nil {
		in.metrics = pkg.NewPrometheus()
	}
	in.base = in.logger
	in.logger = in.withSession(in.logger)
	return in
}

func (in *Interpreter) withSession(l *zap.Logger) *zap.Logger {
	return l.With(zap.String("session", in.session.String()))
}

// loggerFor prefers the logger carried by ctx over the one from Options.
func (in *Interpreter) loggerFor(ctx context.Context) *zap.Logger {
	l := pkg.LoggerFromCtx(ctx)
	if l == nil || l == in.base {
		return in.logger
	}
	return in.withSession(l)
}

func (in *Interpreter) Session() string {
	return in.session.String()
}

// Errors returns the number of commands that failed so far.
func (in *Interpreter) Errors() int {
	return in.errors
}

func (in *Interpreter) Queue() *data_struct.Queue {
	return in.queue
}

// Execute runs one command line. Blank lines and lines starting with '#'
// are skipped. quit is true after the quit command. Log entries go to
// the logger stored in ctx by pkg.LoggerWithCtx, if any.
func (in *Interpreter) Execute(ctx context.Context, line string) (quit bool, err error) {
	if err := ctx.Err(); err != nil {
		return true, err
	}
	logger := in.loggerFor(ctx)

	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false, nil
	}

	cmd, err := ParseCommand(trimmed)
	if err != nil {
		in.fail(logger, "parse", trimmed, err)
		return false, err
	}

	start := time.Now()
	err = in.apply(ctx, cmd)
	in.metrics.Observe(cmd.Name, err)
	in.metrics.QueueSize.Set(float64(in.queue.Size()))

	if err != nil {
		in.fail(logger, cmd.Name, trimmed, err)
		return false, err
	}
	logger.Debug("command done",
		zap.String("command", cmd.Name),
		zap.Int("size", in.queue.Size()),
		zap.Duration("took", time.Since(start)),
	)
	return cmd.Kind == CmdQuit, nil
}

// Serve reads lines from r until EOF, quit or context cancellation.
func (in *Interpreter) Serve(ctx context.Context, r LineReader) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := r.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "read command")
		}
		quit, err := in.Execute(ctx, line)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if quit {
			return nil
		}
	}
}

// Close frees the queue. The interpreter stays usable.
func (in *Interpreter) Close() {
	in.queue.Free()
	in.queue = nil
	in.metrics.QueueSize.Set(0)
}

func (in *Interpreter) fail(logger *zap.Logger, command, line string, err error) {
	if command == "parse" {
		in.metrics.Observe(command, err)
	}
	in.errors++
	logger.Warn("command failed",
		zap.String("command", command),
		zap.String("line", line),
		zap.Error(err),
	)
	in.printf("ERROR: %v\n", err)
}

func (in *Interpreter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(in.out, format, args...)
}

func (in *Interpreter) show() {
	if in.queue == nil {
		in.printf("q = NULL\n")
		return
	}
	in.printf("q = %s\n", in.queue.String())
}

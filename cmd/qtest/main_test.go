package main

import (
	"bytes"
	"context"
	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"io"
	"linked-queue/application"
	"linked-queue/internal/interpreter"
	"testing"
)

type scriptReader struct {
	lines []string
	err   error
	panic bool
}

func (r *scriptReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		if r.panic {
			panic("terminal gone")
		}
		return "", r.err
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func TestServeActor_RecoversPanic(t *testing.T) {
	app := application.NewApp(context.Background(), zap.NewNop())
	code := 0
	app.OnExit(func(c int) { code = c })
	out := &bytes.Buffer{}
	in := interpreter.NewInterpreter(interpreter.Options{BufSize: 16, Out: out})
	closed := false
	app.RegisterShutdown("queue", func() error {
		in.Close()
		closed = true
		return nil
	}, 10)

	r := &scriptReader{lines: []string{"new", "ih a"}, panic: true}
	err := serveActor(context.Background(), app, in, r)()
	require.NoError(t, err)

	assert.Equal(t, 2, code)
	assert.True(t, closed)
	assert.Nil(t, in.Queue())
	assert.Contains(t, out.String(), "q = [a]")
}

func TestServeActor_Interrupt(t *testing.T) {
	app := application.NewApp(context.Background(), zap.NewNop())
	app.OnExit(func(int) { t.Fatal("exit called without a panic") })
	in := interpreter.NewInterpreter(interpreter.Options{BufSize: 16})

	err := serveActor(context.Background(), app, in, &scriptReader{err: readline.ErrInterrupt})()
	assert.NoError(t, err)

	err = serveActor(context.Background(), app, in, &scriptReader{err: io.ErrClosedPipe})()
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

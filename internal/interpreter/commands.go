package interpreter

import (
	"context"
	"fmt"
	"github.com/pkg/errors"
	"linked-queue/pkg/data_struct"
	"sort"
	"strings"
)

var (
	ErrMismatch      = errors.New("unexpected result")
	ErrNotSorted     = errors.New("queue is not sorted")
	ErrUnknownOption = errors.New("unknown option")
)

type handler func(ctx context.Context, in *Interpreter, cmd *Command) error

var handlers map[CommandType]handler

func init() {
	handlers = map[CommandType]handler{
		CmdNew:             newQueue,
		CmdFree:            freeQueue,
		CmdInsertHead:      insert,
		CmdInsertTail:      insert,
		CmdRemoveHead:      removeHead,
		CmdRemoveHeadQuiet: removeHead,
		CmdSize:            size,
		CmdReverse:         reverse,
		CmdSort:            sortQueue,
		CmdShow:            show,
		CmdCheck:           check,
		CmdOption:          option,
		CmdStats:           stats,
		CmdHelp:            help,
		CmdQuit:            quit,
	}
}

func (in *Interpreter) apply(ctx context.Context, cmd *Command) error {
	h, ok := handlers[cmd.Kind]
	if !ok {
		return errors.Wrapf(ErrUnknownCommand, "'%s'", cmd.Name)
	}
	return h(ctx, in, cmd)
}

func newQueue(_ context.Context, in *Interpreter, _ *Command) error {
	in.queue.Free()
	in.queue = data_struct.NewQueue()
	in.show()
	return nil
}

func freeQueue(_ context.Context, in *Interpreter, _ *Command) error {
	in.queue.Free()
	in.queue = nil
	in.show()
	return nil
}

func insert(ctx context.Context, in *Interpreter, cmd *Command) error {
	op := in.queue.InsertTail
	if cmd.Kind == CmdInsertHead {
		op = in.queue.InsertHead
	}
	for i := 0; i < cmd.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := op(cmd.Value); err != nil {
			return errors.Wrapf(err, "%s %q", cmd.Name, cmd.Value)
		}
	}
	in.show()
	return nil
}

func removeHead(_ context.Context, in *Interpreter, cmd *Command) error {
	var buf []byte
	if cmd.Kind == CmdRemoveHead {
		buf = make([]byte, in.bufSize)
	}

	value, err := in.queue.RemoveHead(buf)
	if err != nil {
		return errors.Wrap(err, cmd.Name)
	}
	in.metrics.Removed.Inc()

	if buf == nil {
		in.show()
		return nil
	}

	// value may itself contain NUL bytes, so the copied length is not
	// recoverable from buf
	n := min(len(value), len(buf)-1)
	removed := string(buf[:n])
	if n < len(value) {
		in.metrics.Truncated.Inc()
	}
	in.printf("Removed %s from queue\n", removed)
	in.show()

	if cmd.HasValue && removed != cmd.Value {
		return errors.Wrapf(ErrMismatch, "removed value %q, expected %q", removed, cmd.Value)
	}
	return nil
}

func size(_ context.Context, in *Interpreter, cmd *Command) error {
	n := in.queue.Size()
	in.printf("Queue size = %d\n", n)
	if in.queue == nil {
		return errors.Wrap(data_struct.ErrNilQueue, cmd.Name)
	}
	if cmd.HasCount && n != cmd.Count {
		return errors.Wrapf(ErrMismatch, "size %d, expected %d", n, cmd.Count)
	}
	return nil
}

func reverse(_ context.Context, in *Interpreter, cmd *Command) error {
	in.queue.Reverse()
	in.show()
	if in.queue == nil {
		return errors.Wrap(data_struct.ErrNilQueue, cmd.Name)
	}
	return nil
}

func sortQueue(_ context.Context, in *Interpreter, cmd *Command) error {
	in.queue.Sort()
	in.show()
	if in.queue == nil {
		return errors.Wrap(data_struct.ErrNilQueue, cmd.Name)
	}
	if !in.queue.IsSorted() {
		return errors.Wrap(ErrNotSorted, cmd.Name)
	}
	return nil
}

func show(_ context.Context, in *Interpreter, _ *Command) error {
	in.show()
	return nil
}

func check(_ context.Context, in *Interpreter, cmd *Command) error {
	if err := in.queue.Validate(); err != nil {
		return errors.Wrap(err, cmd.Name)
	}
	in.printf("Queue is consistent, size = %d\n", in.queue.Size())
	return nil
}

func option(_ context.Context, in *Interpreter, cmd *Command) error {
	switch cmd.Value {
	case "bufsize":
		in.bufSize = cmd.Count
		in.printf("bufsize = %d\n", in.bufSize)
		return nil
	default:
		return errors.Wrapf(ErrUnknownOption, "'%s'", cmd.Value)
	}
}

func stats(_ context.Context, in *Interpreter, _ *Command) error {
	families, err := in.metrics.Registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			var value float64
			if c := m.GetCounter(); c != nil {
				value = c.GetValue()
			} else if g := m.GetGauge(); g != nil {
				value = g.GetValue()
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, value))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		in.printf("%s\n", line)
	}
	return nil
}

func help(_ context.Context, in *Interpreter, _ *Command) error {
	in.printf("%s", usage())
	return nil
}

func quit(_ context.Context, in *Interpreter, _ *Command) error {
	in.Close()
	in.printf("Freeing queue\n")
	return nil
}

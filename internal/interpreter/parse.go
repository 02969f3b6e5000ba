package interpreter

import (
	"fmt"
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

type CommandType = byte

const (
	CmdNew CommandType = iota
	CmdFree
	CmdInsertHead
	CmdInsertTail
	CmdRemoveHead
	CmdRemoveHeadQuiet
	CmdSize
	CmdReverse
	CmdSort
	CmdShow
	CmdCheck
	CmdOption
	CmdStats
	CmdHelp
	CmdQuit
)

var (
	ErrEmptyLine          = errors.New("empty command")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrInvalidNArg        = errors.New("invalid number of arguments")
	ErrInvalidArg         = errors.New("invalid argument")
	ErrUnterminatedString = errors.New("unterminated string")
)

type Command struct {
	Kind CommandType
	Name string
	// Value is the string operand: the element for ih/it, the expected
	// value for rh, the option name for option.
	Value    string
	HasValue bool
	// Count is the repeat count for ih/it, the expected size for size
	// and the option value for option.
	Count    int
	HasCount bool
}

type commandSpec struct {
	kind    CommandType
	minArgs int
	maxArgs int
	usage   string
}

var commands = map[string]commandSpec{
	"new":     {CmdNew, 0, 0, "new                 | Create new queue"},
	"free":    {CmdFree, 0, 0, "free                | Delete queue"},
	"ih":      {CmdInsertHead, 1, 2, "ih str [n]          | Insert string str at head of queue n times (default: n == 1)"},
	"it":      {CmdInsertTail, 1, 2, "it str [n]          | Insert string str at tail of queue n times (default: n == 1)"},
	"rh":      {CmdRemoveHead, 0, 1, "rh [str]            | Remove from head of queue. Optionally compare to expected value str"},
	"rhq":     {CmdRemoveHeadQuiet, 0, 0, "rhq                 | Remove from head of queue without reporting value"},
	"size":    {CmdSize, 0, 1, "size [n]            | Show size of queue. Optionally compare to expected size n"},
	"reverse": {CmdReverse, 0, 0, "reverse             | Reverse queue"},
	"sort":    {CmdSort, 0, 0, "sort                | Sort queue in ascending order"},
	"show":    {CmdShow, 0, 0, "show                | Show queue contents"},
	"check":   {CmdCheck, 0, 0, "check               | Verify queue invariants"},
	"option":  {CmdOption, 2, 2, "option bufsize n    | Set remove buffer capacity to n"},
	"stats":   {CmdStats, 0, 0, "stats               | Show collected metrics"},
	"help":    {CmdHelp, 0, 0, "help                | Show documentation"},
	"quit":    {CmdQuit, 0, 0, "quit                | Exit program"},
}

func ParseCommand(line string) (*Command, error) {
	split, err := sanitize(line)
	if err != nil {
		return nil, err
	}
	if len(split) == 0 {
		return nil, ErrEmptyLine
	}

	name := strings.ToLower(split[0])
	spec, ok := commands[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCommand, "'%s'", split[0])
	}
	args := split[1:]
	if len(args) < spec.minArgs || len(args) > spec.maxArgs {
		return nil, errors.Wrapf(ErrInvalidNArg, "for command '%s'", name)
	}

	cmd := &Command{Kind: spec.kind, Name: name}
	switch spec.kind {
	case CmdInsertHead, CmdInsertTail:
		cmd.Value, cmd.HasValue = args[0], true
		cmd.Count = 1
		if len(args) == 2 {
			if cmd.Count, err = parseCount(args[1], 1); err != nil {
				return nil, err
			}
			cmd.HasCount = true
		}
	case CmdRemoveHead:
		if len(args) == 1 {
			cmd.Value, cmd.HasValue = args[0], true
		}
	case CmdSize:
		if len(args) == 1 {
			if cmd.Count, err = parseCount(args[0], 0); err != nil {
				return nil, err
			}
			cmd.HasCount = true
		}
	case CmdOption:
		cmd.Value, cmd.HasValue = strings.ToLower(args[0]), true
		if cmd.Count, err = parseCount(args[1], 1); err != nil {
			return nil, err
		}
		cmd.HasCount = true
	}
	return cmd, nil
}

func parseCount(arg string, lowest int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < lowest {
		return 0, errors.Wrapf(ErrInvalidArg, "'%s' is not an integer >= %d", arg, lowest)
	}
	return n, nil
}

// sanitize splits a command line into words. Single or double quotes group
// a word that may contain spaces or be empty.
func sanitize(line string) ([]string, error) {
	out := []string{}
	i := 0

	for i < len(line) {
		c := line[i]
		if isWhitespace(c) {
			i++
			continue
		}

		if c == '"' || c == '\'' {
			end := strings.IndexByte(line[i+1:], c)
			if end < 0 {
				return nil, errors.Wrapf(ErrUnterminatedString, "at offset %d", i)
			}
			out = append(out, line[i+1:i+1+end])
			i += end + 2
			continue
		}

		start := i
		for i < len(line) && !isWhitespace(line[i]) {
			i++
		}
		out = append(out, line[start:i])
	}

	return out, nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func usage() string {
	names := []string{"new", "free", "ih", "it", "rh", "rhq", "size", "reverse", "sort", "show", "check", "option", "stats", "help", "quit"}
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "\t%s\n", commands[name].usage)
	}
	return sb.String()
}

package command

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/kvmesh-go/internal/core/domain"
	"github.com/yndnr/kvmesh-go/internal/protocol"
)

// Interpret classifies a decoded token into a Command.
//
// A bare simple or bulk string is accepted only as PING. Arrays select the
// command by their first element, matched case-insensitively; the
// remaining elements are positional arguments. Nested arrays are not valid
// arguments.
//
// SET accepts an optional expiration as a keyword option after key and
// value: "PX <milliseconds>" or "EX <seconds>". An option with a
// malformed count is rejected rather than silently ignored.
func Interpret(t protocol.Token) (Command, error) {
	switch t.Type {
	case protocol.TypeSimpleString, protocol.TypeBulkString:
		name, _ := t.Text()
		if strings.EqualFold(name, "ping") {
			return Ping{}, nil
		}
		return nil, domain.ErrUnknownCommand.WithDetails(name)
	case protocol.TypeArray:
		return interpretArray(t.Elements)
	default:
		return nil, domain.ErrMissingCommand
	}
}

func interpretArray(elements []protocol.Token) (Command, error) {
	if len(elements) == 0 {
		return nil, domain.ErrMissingCommand
	}

	name, ok := elements[0].Text()
	if !ok {
		return nil, domain.ErrMissingCommand
	}

	args := elements[1:]
	switch strings.ToLower(name) {
	case "ping":
		return Ping{}, nil
	case "echo":
		msg, err := textArg(args, 0, "message")
		if err != nil {
			return nil, err
		}
		return Echo{Message: msg}, nil
	case "get":
		key, err := textArg(args, 0, "key")
		if err != nil {
			return nil, err
		}
		return Get{Key: key}, nil
	case "set":
		return interpretSet(args)
	default:
		return nil, domain.ErrUnknownCommand.WithDetails(name)
	}
}

func interpretSet(args []protocol.Token) (Command, error) {
	key, err := textArg(args, 0, "key")
	if err != nil {
		return nil, err
	}
	value, err := textArg(args, 1, "value")
	if err != nil {
		return nil, err
	}

	cmd := Set{Key: key, Value: value}
	for i := 2; i < len(args); i += 2 {
		opt, err := textArg(args, i, "option")
		if err != nil {
			return nil, err
		}
		unit, err := optionUnit(opt)
		if err != nil {
			return nil, err
		}
		count, err := textArg(args, i+1, strings.ToLower(opt))
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(count, 10, 63)
		if err != nil {
			return nil, domain.ErrWrongArgument.WithDetails("invalid expiration " + strconv.Quote(count))
		}
		// The count is in unit ticks; converting to nanoseconds must not
		// wrap int64, or a huge expiry would come out negative and store
		// the key forever.
		if n > uint64(math.MaxInt64/int64(unit)) {
			return nil, domain.ErrWrongArgument.WithDetails("expiration " + strconv.Quote(count) + " out of range")
		}
		cmd.TTL = time.Duration(n) * unit
	}
	return cmd, nil
}

func optionUnit(opt string) (time.Duration, error) {
	switch strings.ToUpper(opt) {
	case "PX":
		return time.Millisecond, nil
	case "EX":
		return time.Second, nil
	default:
		return 0, domain.ErrWrongArgument.WithDetails("unknown option " + strconv.Quote(opt))
	}
}

// textArg extracts the string payload of the i-th argument.
func textArg(args []protocol.Token, i int, name string) (string, error) {
	if i >= len(args) {
		return "", domain.ErrMissingArgument.WithDetails(name)
	}
	s, ok := args[i].Text()
	if !ok {
		return "", domain.ErrWrongArgument.WithDetails(name + " must be a string")
	}
	return s, nil
}

package command

import (
	"errors"
	"testing"
	"time"

	"github.com/yndnr/kvmesh-go/internal/core/domain"
	"github.com/yndnr/kvmesh-go/internal/protocol"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		name  string
		token protocol.Token
		want  Command
	}{
		{
			name:  "ping array",
			token: protocol.Array(protocol.BulkString("PING")),
			want:  Ping{},
		},
		{
			name:  "ping lowercase",
			token: protocol.Array(protocol.BulkString("ping")),
			want:  Ping{},
		},
		{
			name:  "bare simple string ping",
			token: protocol.SimpleString("ping"),
			want:  Ping{},
		},
		{
			name:  "bare bulk string ping",
			token: protocol.BulkString("PING"),
			want:  Ping{},
		},
		{
			name:  "ping ignores extra arguments",
			token: protocol.Array(protocol.BulkString("PING"), protocol.BulkString("x")),
			want:  Ping{},
		},
		{
			name:  "echo",
			token: protocol.Array(protocol.BulkString("ECHO"), protocol.BulkString("hey")),
			want:  Echo{Message: "hey"},
		},
		{
			name:  "echo empty message",
			token: protocol.Array(protocol.BulkString("ECHO"), protocol.BulkString("")),
			want:  Echo{Message: ""},
		},
		{
			name:  "get",
			token: protocol.Array(protocol.BulkString("GET"), protocol.BulkString("mykey")),
			want:  Get{Key: "mykey"},
		},
		{
			name:  "get with simple string elements",
			token: protocol.Array(protocol.SimpleString("GET"), protocol.SimpleString("mykey")),
			want:  Get{Key: "mykey"},
		},
		{
			name: "set without expiry",
			token: protocol.Array(
				protocol.BulkString("SET"),
				protocol.BulkString("foo"),
				protocol.BulkString("bar"),
			),
			want: Set{Key: "foo", Value: "bar"},
		},
		{
			name: "set with PX milliseconds",
			token: protocol.Array(
				protocol.BulkString("SET"),
				protocol.BulkString("foo"),
				protocol.BulkString("bar"),
				protocol.BulkString("PX"),
				protocol.BulkString("100"),
			),
			want: Set{Key: "foo", Value: "bar", TTL: 100 * time.Millisecond},
		},
		{
			name: "set with lowercase px",
			token: protocol.Array(
				protocol.BulkString("set"),
				protocol.BulkString("foo"),
				protocol.BulkString("bar"),
				protocol.BulkString("px"),
				protocol.BulkString("100"),
			),
			want: Set{Key: "foo", Value: "bar", TTL: 100 * time.Millisecond},
		},
		{
			name: "set with EX seconds",
			token: protocol.Array(
				protocol.BulkString("SET"),
				protocol.BulkString("foo"),
				protocol.BulkString("bar"),
				protocol.BulkString("EX"),
				protocol.BulkString("10"),
			),
			want: Set{Key: "foo", Value: "bar", TTL: 10 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpret(tt.token)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("command = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestInterpret_Errors(t *testing.T) {
	tests := []struct {
		name    string
		token   protocol.Token
		wantErr error
	}{
		{
			name:    "empty array",
			token:   protocol.Array(),
			wantErr: domain.ErrMissingCommand,
		},
		{
			name:    "array head is an array",
			token:   protocol.Array(protocol.Array(protocol.BulkString("GET"))),
			wantErr: domain.ErrMissingCommand,
		},
		{
			name:    "unknown command",
			token:   protocol.Array(protocol.BulkString("FLUSHALL")),
			wantErr: domain.ErrUnknownCommand,
		},
		{
			name:    "bare string other than ping",
			token:   protocol.SimpleString("GET"),
			wantErr: domain.ErrUnknownCommand,
		},
		{
			name:    "echo without message",
			token:   protocol.Array(protocol.BulkString("ECHO")),
			wantErr: domain.ErrMissingArgument,
		},
		{
			name:    "get without key",
			token:   protocol.Array(protocol.BulkString("GET")),
			wantErr: domain.ErrMissingArgument,
		},
		{
			name: "get with nested array key",
			token: protocol.Array(
				protocol.BulkString("GET"),
				protocol.Array(protocol.BulkString("k")),
			),
			wantErr: domain.ErrWrongArgument,
		},
		{
			name: "set without value",
			token: protocol.Array(
				protocol.BulkString("SET"),
				protocol.BulkString("foo"),
			),
			wantErr: domain.ErrMissingArgument,
		},
		{
			name: "set with unknown option",
			token: protocol.Array(
				protocol.BulkString("SET"),
				protocol.BulkString("foo"),
				protocol.BulkString("bar"),
				protocol.BulkString("NX"),
				protocol.BulkString("1"),
			),
			wantErr: domain.ErrWrongArgument,
		},
		{
			name: "set with option missing count",
			token: protocol.Array(
				protocol.BulkString("SET"),
				protocol.BulkString("foo"),
				protocol.BulkString("bar"),
				protocol.BulkString("PX"),
			),
			wantErr: domain.ErrMissingArgument,
		},
		{
			name: "set with non-numeric expiry",
			token: protocol.Array(
				protocol.BulkString("SET"),
				protocol.BulkString("foo"),
				protocol.BulkString("bar"),
				protocol.BulkString("PX"),
				protocol.BulkString("soon"),
			),
			wantErr: domain.ErrWrongArgument,
		},
		{
			name: "set with EX count that would wrap int64 nanoseconds",
			token: protocol.Array(
				protocol.BulkString("SET"),
				protocol.BulkString("foo"),
				protocol.BulkString("bar"),
				protocol.BulkString("EX"),
				protocol.BulkString("99999999999999999"),
			),
			wantErr: domain.ErrWrongArgument,
		},
		{
			name: "set with PX count that would wrap int64 nanoseconds",
			token: protocol.Array(
				protocol.BulkString("SET"),
				protocol.BulkString("foo"),
				protocol.BulkString("bar"),
				protocol.BulkString("PX"),
				protocol.BulkString("9999999999999999"),
			),
			wantErr: domain.ErrWrongArgument,
		},
		{
			name: "set with negative expiry",
			token: protocol.Array(
				protocol.BulkString("SET"),
				protocol.BulkString("foo"),
				protocol.BulkString("bar"),
				protocol.BulkString("PX"),
				protocol.BulkString("-5"),
			),
			wantErr: domain.ErrWrongArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Interpret(tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommand_Name(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Ping{}, "PING"},
		{Echo{Message: "x"}, "ECHO"},
		{Get{Key: "k"}, "GET"},
		{Set{Key: "k", Value: "v"}, "SET"},
	}

	for _, tt := range tests {
		if got := tt.cmd.Name(); got != tt.want {
			t.Errorf("Name = %q, want %q", got, tt.want)
		}
	}
}

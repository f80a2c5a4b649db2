package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

// PingCommand returns the ping subcommand.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:   "ping",
		Usage:  "Check server liveness",
		Action: pingAction,
	}
}

func pingAction(c *cli.Context) error {
	cl, err := dial(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	reply, err := cl.Do("PING")
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return printReply(reply)
}

// EchoCommand returns the echo subcommand.
func EchoCommand() *cli.Command {
	return &cli.Command{
		Name:      "echo",
		Usage:     "Echo a message back from the server",
		ArgsUsage: "MESSAGE",
		Action:    echoAction,
	}
}

func echoAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: kvmesh-cli echo MESSAGE", 2)
	}

	cl, err := dial(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	reply, err := cl.Do("ECHO", c.Args().Get(0))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return printReply(reply)
}

// GetCommand returns the get subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value stored at a key",
		ArgsUsage: "KEY",
		Action:    getAction,
	}
}

func getAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: kvmesh-cli get KEY", 2)
	}

	cl, err := dial(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	reply, err := cl.Do("GET", c.Args().Get(0))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return printReply(reply)
}

// SetCommand returns the set subcommand.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set a key to a value, optionally with an expiry",
		ArgsUsage: "KEY VALUE",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "ttl",
				Aliases: []string{"t"},
				Usage:   "Expiry for the key (e.g., 500ms, 10s, 5m)",
			},
		},
		Action: setAction,
	}
}

func setAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: kvmesh-cli set KEY VALUE [--ttl DURATION]", 2)
	}

	cl, err := dial(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	args := []string{"SET", c.Args().Get(0), c.Args().Get(1)}
	if ttl := c.Duration("ttl"); ttl > 0 {
		ms := ttl / time.Millisecond
		args = append(args, "PX", fmt.Sprintf("%d", ms))
	}

	reply, err := cl.Do(args...)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return printReply(reply)
}

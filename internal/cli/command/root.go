// Package command provides CLI command definitions for kvmesh-cli.
//
// It uses urfave/cli/v2 for command parsing. Each subcommand opens a
// connection to the server, issues one command and prints the reply.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvmesh-go/internal/cli/client"
	"github.com/yndnr/kvmesh-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "kvmesh-cli",
		Usage:   "KVMesh command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			EchoCommand(),
			GetCommand(),
			SetCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "KVMesh server address (e.g., localhost:6379)",
			EnvVars: []string{"KVMESH_SERVER"},
			Value:   "localhost:6379",
		},
	}
}

// dial opens a connection to the configured server.
func dial(c *cli.Context) (*client.Client, error) {
	addr := c.String("server")
	cl, err := client.Dial(addr)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("cannot connect to %s: %v", addr, err), 1)
	}
	return cl, nil
}

// printReply renders one server reply for the terminal.
func printReply(r client.Reply) error {
	switch {
	case r.Err != nil:
		return cli.Exit(fmt.Sprintf("(error) %v", r.Err), 1)
	case r.Null:
		fmt.Println("(nil)")
	default:
		fmt.Println(r.Text)
	}
	return nil
}

// Package client provides the wire protocol client used by kvmesh-cli.
package client

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/kvmesh-go/internal/protocol"
)

// DefaultTimeout bounds dialing and each round trip.
const DefaultTimeout = 10 * time.Second

// Reply is one decoded server reply frame. Replies use a wider grammar
// than requests: servers also emit error frames and null bulk strings,
// which the request reader never accepts.
type Reply struct {
	// Null reports a null bulk string ("$-1"), sent for expired keys.
	Null bool
	// Err holds the message of an error frame, nil otherwise.
	Err error
	// Text is the payload of a simple or bulk string reply.
	Text string
}

// Client is a connection to a kvmesh server. It is not safe for
// concurrent use; the CLI issues one command at a time.
type Client struct {
	conn    net.Conn
	br      *bufio.Reader
	w       *protocol.Writer
	timeout time.Duration
}

// Dial connects to the server at addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Client{
		conn:    conn,
		br:      bufio.NewReader(conn),
		w:       protocol.NewWriter(conn),
		timeout: DefaultTimeout,
	}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Do sends args as an array of bulk strings and reads one reply frame.
func (c *Client) Do(args ...string) (Reply, error) {
	if len(args) == 0 {
		return Reply{}, fmt.Errorf("empty command")
	}

	elems := make([]protocol.Token, len(args))
	for i, a := range args {
		elems[i] = protocol.BulkString(a)
	}

	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return Reply{}, err
	}
	if err := c.w.WriteToken(protocol.Array(elems...)); err != nil {
		return Reply{}, fmt.Errorf("write command: %w", err)
	}
	if err := c.w.Flush(); err != nil {
		return Reply{}, fmt.Errorf("write command: %w", err)
	}

	return c.readReply()
}

func (c *Client) readReply() (Reply, error) {
	line, err := c.readLine()
	if err != nil {
		return Reply{}, fmt.Errorf("read reply: %w", err)
	}
	if len(line) == 0 {
		return Reply{}, fmt.Errorf("read reply: empty frame")
	}

	switch line[0] {
	case '+':
		return Reply{Text: line[1:]}, nil
	case '-':
		return Reply{Err: fmt.Errorf("%s", line[1:])}, nil
	case '$':
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			return Reply{}, fmt.Errorf("read reply: bad bulk length %q", line[1:])
		}
		if n < 0 {
			return Reply{Null: true}, nil
		}
		buf := make([]byte, n+2)
		if _, err := io.ReadFull(c.br, buf); err != nil {
			return Reply{}, fmt.Errorf("read reply: %w", err)
		}
		return Reply{Text: string(buf[:n])}, nil
	default:
		return Reply{}, fmt.Errorf("read reply: unexpected frame type %q", line[0])
	}
}

func (c *Client) readLine() (string, error) {
	line, err := c.br.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

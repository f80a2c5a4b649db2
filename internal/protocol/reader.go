package protocol

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Protocol limits to prevent resource exhaustion by hostile peers.
const (
	// MaxArrayLen limits the number of elements in an array.
	// The supported commands have at most a handful of arguments.
	MaxArrayLen = 1024

	// MaxBulkLen limits the size of a single bulk string (512KB).
	MaxBulkLen = 512 * 1024

	// MaxLineLen limits the length of a single CRLF-terminated line.
	MaxLineLen = 4 * 1024
)

var (
	// ErrProtocol indicates malformed bytes: a bad length field or a
	// missing CRLF terminator.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrIncomplete indicates the stream ended in the middle of a frame.
	ErrIncomplete = errors.New("resp: incomplete message")

	// ErrUnknownType indicates a leading byte outside the supported
	// sigils '+', '$' and '*'.
	ErrUnknownType = errors.New("resp: unknown type")

	// ErrLimitExceeded indicates a frame exceeds one of the protocol limits.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// Reader decodes tokens from a byte stream.
type Reader struct {
	br *bufio.Reader
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Peek returns the next n bytes without consuming them. Serve loops use
// it to wait for the first byte of a frame under an idle deadline before
// tightening to the per-command read deadline.
func (r *Reader) Peek(n int) ([]byte, error) {
	return r.br.Peek(n)
}

// ReadToken decodes the next token from the stream.
//
// It returns io.EOF unchanged when the stream is cleanly exhausted before
// the first byte of a frame; an EOF inside a frame surfaces as
// ErrIncomplete. Bulk string payloads are read by their declared byte
// length, so embedded CR/LF bytes are preserved verbatim.
func (r *Reader) ReadToken() (Token, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return Token{}, err
	}

	switch Type(b) {
	case TypeSimpleString:
		return r.readSimpleString()
	case TypeBulkString:
		return r.readBulkString()
	case TypeArray:
		return r.readArray()
	default:
		return Token{}, fmt.Errorf("%w: %q", ErrUnknownType, b)
	}
}

func (r *Reader) readSimpleString() (Token, error) {
	line, err := r.readLine()
	if err != nil {
		return Token{}, err
	}
	return Token{Type: TypeSimpleString, Data: line}, nil
}

func (r *Reader) readBulkString() (Token, error) {
	line, err := r.readLine()
	if err != nil {
		return Token{}, err
	}
	n, err := strconv.Atoi(string(line))
	if err != nil || n < 0 {
		return Token{}, fmt.Errorf("%w: invalid bulk length %q", ErrProtocol, line)
	}
	if n > MaxBulkLen {
		return Token{}, fmt.Errorf("%w: bulk length %d exceeds limit %d", ErrLimitExceeded, n, MaxBulkLen)
	}

	// Read exactly n payload bytes plus the trailing CRLF. Splitting on
	// CRLF would corrupt payloads containing embedded separators.
	buf := make([]byte, n+2)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return Token{}, eofToIncomplete(err)
	}
	if !bytes.HasSuffix(buf, crlf) {
		return Token{}, fmt.Errorf("%w: invalid bulk terminator", ErrProtocol)
	}
	return Token{Type: TypeBulkString, Data: buf[:n]}, nil
}

func (r *Reader) readArray() (Token, error) {
	line, err := r.readLine()
	if err != nil {
		return Token{}, err
	}
	n, err := strconv.Atoi(string(line))
	if err != nil {
		return Token{}, fmt.Errorf("%w: invalid array length %q", ErrProtocol, line)
	}
	if n > MaxArrayLen {
		return Token{}, fmt.Errorf("%w: array length %d exceeds limit %d", ErrLimitExceeded, n, MaxArrayLen)
	}
	if n <= 0 {
		// "*0" is an empty frame; a negative count has no meaning for
		// requests and is treated the same way.
		return Token{Type: TypeArray}, nil
	}

	elements := make([]Token, 0, n)
	for i := 0; i < n; i++ {
		el, err := r.ReadToken()
		if err != nil {
			return Token{}, eofToIncomplete(err)
		}
		elements = append(elements, el)
	}
	return Token{Type: TypeArray, Elements: elements}, nil
}

// readLine reads a CRLF-terminated line, returning it without the terminator.
func (r *Reader) readLine() ([]byte, error) {
	var buf []byte
	for {
		frag, err := r.br.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > MaxLineLen {
				return nil, fmt.Errorf("%w: line length exceeds limit %d", ErrLimitExceeded, MaxLineLen)
			}
			continue
		}
		return nil, eofToIncomplete(err)
	}

	if len(buf) > MaxLineLen {
		return nil, fmt.Errorf("%w: line length exceeds limit %d", ErrLimitExceeded, MaxLineLen)
	}
	if len(buf) < 2 || !bytes.HasSuffix(buf, crlf) {
		return nil, fmt.Errorf("%w: missing CRLF", ErrProtocol)
	}
	return buf[:len(buf)-2], nil
}

// Decode parses a single token out of a raw buffer.
//
// Trailing NUL padding is stripped first: fixed-size read buffers arrive
// zero-filled. An empty (or all-zero) buffer decodes to an empty Array so
// that a read loop can treat stray empty reads as no-op frames rather
// than errors.
func Decode(buf []byte) (Token, error) {
	buf = bytes.TrimRight(buf, "\x00")
	if len(buf) == 0 {
		return Token{Type: TypeArray}, nil
	}

	t, err := NewReader(bytes.NewReader(buf)).ReadToken()
	if err != nil {
		return Token{}, eofToIncomplete(err)
	}
	return t, nil
}

func eofToIncomplete(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrIncomplete
	}
	return err
}

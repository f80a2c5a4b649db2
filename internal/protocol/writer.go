package protocol

import (
	"bufio"
	"io"
	"strconv"
)

var crlf = []byte("\r\n")

// Encode serializes a token to its exact wire form. It is the inverse of
// Decode: Decode(Encode(t)) yields a token Equal to t for every legally
// constructed t.
func Encode(t Token) []byte {
	return appendToken(nil, t)
}

func appendToken(dst []byte, t Token) []byte {
	switch t.Type {
	case TypeSimpleString:
		dst = append(dst, '+')
		dst = append(dst, t.Data...)
		return append(dst, crlf...)
	case TypeBulkString:
		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(t.Data)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, t.Data...)
		return append(dst, crlf...)
	case TypeArray:
		dst = append(dst, '*')
		dst = strconv.AppendInt(dst, int64(len(t.Elements)), 10)
		dst = append(dst, crlf...)
		for _, el := range t.Elements {
			dst = appendToken(dst, el)
		}
		return dst
	default:
		return dst
	}
}

// Writer encodes reply frames onto a buffered stream. Callers must Flush
// once a full reply has been written.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteToken writes an encoded token.
func (w *Writer) WriteToken(t Token) error {
	_, err := w.bw.Write(Encode(t))
	return err
}

// WriteSimpleString writes "+<s>\r\n".
func (w *Writer) WriteSimpleString(s string) error {
	_, err := w.bw.WriteString("+" + s + "\r\n")
	return err
}

// WriteError writes "-<s>\r\n".
func (w *Writer) WriteError(s string) error {
	_, err := w.bw.WriteString("-" + s + "\r\n")
	return err
}

// WriteBulk writes "$<len>\r\n<b>\r\n".
func (w *Writer) WriteBulk(b []byte) error {
	if _, err := w.bw.WriteString("$" + strconv.Itoa(len(b)) + "\r\n"); err != nil {
		return err
	}
	if _, err := w.bw.Write(b); err != nil {
		return err
	}
	_, err := w.bw.Write(crlf)
	return err
}

// WriteNullBulk writes the null bulk string sentinel "$-1\r\n".
func (w *Writer) WriteNullBulk() error {
	_, err := w.bw.WriteString("$-1\r\n")
	return err
}

// WriteArrayHeader writes "*<n>\r\n".
func (w *Writer) WriteArrayHeader(n int) error {
	_, err := w.bw.WriteString("*" + strconv.Itoa(n) + "\r\n")
	return err
}

// Flush writes any buffered reply bytes to the underlying stream.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

package protocol

import (
	"bytes"
	"strconv"
	"strings"
)

// Type identifies a RESP token variant by its leading sigil.
type Type byte

const (
	// TypeSimpleString is a short line-delimited string: "+<text>\r\n".
	TypeSimpleString Type = '+'

	// TypeBulkString is a length-prefixed binary-safe string:
	// "$<length>\r\n<bytes>\r\n".
	TypeBulkString Type = '$'

	// TypeArray is an ordered sequence of tokens:
	// "*<count>\r\n<element-1>...<element-n>".
	TypeArray Type = '*'
)

// Token is the decoded syntactic unit of the wire protocol, prior to
// command interpretation. Data holds the payload for string variants,
// Elements the children for arrays.
type Token struct {
	Type     Type
	Data     []byte
	Elements []Token
}

// SimpleString constructs a simple string token.
func SimpleString(s string) Token {
	return Token{Type: TypeSimpleString, Data: []byte(s)}
}

// BulkString constructs a bulk string token.
func BulkString(s string) Token {
	return Token{Type: TypeBulkString, Data: []byte(s)}
}

// BulkBytes constructs a bulk string token from raw bytes.
func BulkBytes(b []byte) Token {
	return Token{Type: TypeBulkString, Data: b}
}

// Array constructs an array token from the given elements.
func Array(elements ...Token) Token {
	return Token{Type: TypeArray, Elements: elements}
}

// Text returns the string payload of a simple or bulk string token.
// Arrays carry no payload and report ok=false.
func (t Token) Text() (string, bool) {
	switch t.Type {
	case TypeSimpleString, TypeBulkString:
		return string(t.Data), true
	default:
		return "", false
	}
}

// Equal reports whether two tokens are structurally identical:
// same variant, byte-equal payloads, and element-wise equal children.
func (t Token) Equal(other Token) bool {
	if t.Type != other.Type {
		return false
	}
	if !bytes.Equal(t.Data, other.Data) {
		return false
	}
	if len(t.Elements) != len(other.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].Equal(other.Elements[i]) {
			return false
		}
	}
	return true
}

// String renders the token for logs and CLI output, not for the wire.
func (t Token) String() string {
	switch t.Type {
	case TypeSimpleString, TypeBulkString:
		return string(t.Data)
	case TypeArray:
		parts := make([]string, len(t.Elements))
		for i, el := range t.Elements {
			parts[i] = el.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "unknown type " + strconv.Itoa(int(t.Type))
	}
}

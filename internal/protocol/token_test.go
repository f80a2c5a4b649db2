package protocol

import "testing"

func TestToken_Text(t *testing.T) {
	tests := []struct {
		name   string
		token  Token
		want   string
		wantOK bool
	}{
		{
			name:   "simple string",
			token:  SimpleString("PONG"),
			want:   "PONG",
			wantOK: true,
		},
		{
			name:   "bulk string",
			token:  BulkString("hello"),
			want:   "hello",
			wantOK: true,
		},
		{
			name:   "empty bulk string",
			token:  BulkString(""),
			want:   "",
			wantOK: true,
		},
		{
			name:   "array has no text",
			token:  Array(BulkString("GET")),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.token.Text()
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToken_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Token
		want bool
	}{
		{
			name: "equal simple strings",
			a:    SimpleString("OK"),
			b:    SimpleString("OK"),
			want: true,
		},
		{
			name: "different payloads",
			a:    SimpleString("OK"),
			b:    SimpleString("KO"),
			want: false,
		},
		{
			name: "different variants same payload",
			a:    SimpleString("hello"),
			b:    BulkString("hello"),
			want: false,
		},
		{
			name: "equal nested arrays",
			a:    Array(BulkString("SET"), BulkString("k"), BulkString("v")),
			b:    Array(BulkString("SET"), BulkString("k"), BulkString("v")),
			want: true,
		},
		{
			name: "different element counts",
			a:    Array(BulkString("GET")),
			b:    Array(BulkString("GET"), BulkString("k")),
			want: false,
		},
		{
			name: "different elements",
			a:    Array(BulkString("GET"), BulkString("a")),
			b:    Array(BulkString("GET"), BulkString("b")),
			want: false,
		},
		{
			name: "empty arrays",
			a:    Array(),
			b:    Token{Type: TypeArray},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
			// Equality is symmetric.
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToken_String(t *testing.T) {
	tok := Array(BulkString("SET"), BulkString("key"), BulkString("value"))
	want := "[SET, key, value]"
	if got := tok.String(); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

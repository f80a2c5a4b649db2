// Package protocol implements the RESP wire format used by kvmesh.
//
// The codec covers the three request frame variants the server speaks:
// simple strings ('+'), bulk strings ('$') and arrays ('*'), separated by
// CRLF. Decoding produces a Token tree; encoding is its byte-exact inverse.
//
// Bulk strings are framed by their declared byte length, never by
// splitting on CRLF, so payloads are binary-safe. Replies additionally use
// the error ('-') and null bulk ("$-1") frames, which exist on the write
// path only.
package protocol

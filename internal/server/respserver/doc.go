// Package respserver implements the TCP front end of the store. It owns
// the per-connection loop that decodes frames, interprets them into
// commands, executes them against the keyspace and encodes the replies.
//
// Error handling is split by origin: a malformed frame closes the
// connection after a best-effort error reply, a malformed command
// produces an error reply and the connection keeps serving, and store
// lookup failures always map to a reply (missing key to an error frame,
// expired key to a null bulk string).
package respserver

// Package client implements the client side of the wordfetch protocol.
//
// The client performs the following steps:
//	1. Connect to the server.
//	2. REQUESTING: send "<offset>,<k>" for the current offset.
//	3. AWAITING_RESPONSE: block until one response line arrives.
//	4. If the response ends with the EOF marker, keep the tokens before it and move to DONE.
//	5. Otherwise keep every token, move to MORE_DATA, advance the offset by k and go back to step 2.
//	6. DONE: close the connection.
//
// Requests and responses strictly alternate; there is never more than one request in flight.
//
// A failed read or write, or the server closing the stream, also ends the session. It is not
// reported as an error, matching how the server treats a client that goes away.
//
// Cancelling the context passed to Run closes the connection, which unblocks a pending read.
package client

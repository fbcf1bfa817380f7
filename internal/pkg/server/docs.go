// Package server implements the server side of the wordfetch protocol.
//
// The server performs the following steps:
// 	1. Loads the corpus once; it is never modified afterwards.
// 	2. Listens for TCP connections and hands every accepted connection to its own handler.
// 	3. The handler reads one "<offset>,<page_size>" line at a time and answers it with exactly one line:
// 	   a full page, the final partial page followed by EOF, or a bare EOF.
// 	4. Malformed requests are answered with EOF and the connection stays open.
// 	5. When the peer closes the connection, the handler closes its side and its session record is cleared.
//
// Handlers only read the corpus, so they share it without locking. The number of connections served
// at once is bounded by WithMaxConns; a bound of 1 serves clients strictly one after another, and
// further clients wait in the listen backlog until the current one disconnects.
//
// Per-connection state (remote address, request counts) lives in a session store, which is the only
// state shared between handlers.
package server

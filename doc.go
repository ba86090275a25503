// Package mpvipc is a client for mpv's JSON IPC protocol over a local
// unix socket.
//
// A single goroutine owns the socket and serializes all command traffic;
// any number of goroutines may share one [Mpv] handle. Asynchronous events
// pushed by mpv (notably property-change notifications for observed
// properties) are fanned out to subscribers created with [Mpv.Subscribe].
//
// docs: https://mpv.io/manual/stable/#json-ipc
package mpvipc

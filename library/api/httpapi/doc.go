// Package httpapi exposes the library over HTTP/JSON.
//
// Routes map one to one onto the command and query handlers of library/features.
// Domain errors are translated to status codes in one place (writeError), error bodies
// have the shape {"detail": "..."}.
package httpapi

// Package http implements the HTTP handlers of the dashboard service.
// Handlers stay thin: they parse and validate the request, call a
// service, and format the response. Success responses are JSON envelopes
// rendered with go-chi/render; errors are RFC 7807 problem documents
// produced by the shared ErrorHandler.
package http

// Package server provides the HTTP server of the DocuSign Connect receiver.
//
// the server is configured through environment variables
// (see internal/config/config.go for details)
//
// Routes:
//   - POST /connect receives Connect notifications (HMAC checked when CONNECT_HMAC_KEYS is set)
//   - GET /envelopes/{envelopeID} and /envelopes/{envelopeID}/events return what was received
//   - common infrastructure handlers (health, version, docs)
//
// handlers are in internal/server/handlers, middleware is in internal/server/middleware
package server

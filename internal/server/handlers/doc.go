// Package handlers provides the HTTP handlers of the Connect receiver:
// the Connect notification endpoint, the envelope status queries and the
// infrastructure handlers (health, version, docs).
//
// Handlers depend on the small interfaces below rather than on the database package
// so they can be tested without PostgreSQL; *database.Store implements all of them.
package handlers

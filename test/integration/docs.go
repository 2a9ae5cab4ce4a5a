// Package integration contains end-to-end tests for the connect-receiver server.
//
// These tests verify the server handles Connect notifications correctly (HMAC checks,
// persistence, out of order and duplicate deliveries, error responses). Each test runs
// against a temporary database with migrations applied, and the server is started in-process.
//
// These tests assume the connect and docusign packages are working correctly (tested separately).
// If bugs are introduced in lower-level packages, there will be cascading failures here -
// fix the low-level problems first.
package integration

// Package api holds the error codes and the JSON response helpers shared by the Connect receiver
// handlers and middleware.
//
// Handlers return *Error values (NewXxx / WrapXxx constructors) and call RespondWithErrorResponse,
// which picks the HTTP status from the error code.
package api

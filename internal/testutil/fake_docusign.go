// Package testutil provides a fake DocuSign REST API for tests.
//
// The fake records every request and answers with canned responses registered by the test:
//
//	fake := testutil.NewFakeDocuSign(t)
//	fake.Respond(http.MethodGet, "/accounts/{accountID}/envelopes/{envelopeID}", http.StatusOK, map[string]any{"status": "sent"})
//	client, _ := docusign.NewClient(docusign.Config{RootURL: fake.RootURL(), Timeout: time.Second})
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// RootPath is the path of the API root on the fake server
const RootPath = "/restapi/v2"

// FakeAccountID is the account returned by the default /login_information response
const FakeAccountID = "1234567"

type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

type FakeDocuSign struct {
	t      *testing.T
	server *httptest.Server
	root   *chi.Mux
	router *chi.Mux

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewFakeDocuSign starts a fake DocuSign server, stopped when the test completes.
// /login_information answers with FakeAccountID unless the test registers another response.
func NewFakeDocuSign(t *testing.T) *FakeDocuSign {
	t.Helper()

	f := &FakeDocuSign{t: t}

	f.root = chi.NewRouter()
	f.root.Use(f.record)
	f.root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to fake DocuSign: %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	})
	f.router = chi.NewRouter()
	f.root.Mount(RootPath, f.router)

	f.server = httptest.NewServer(f.root)
	t.Cleanup(f.server.Close)

	f.Respond(http.MethodGet, "/login_information", http.StatusOK, map[string]any{
		"loginAccounts": []map[string]string{
			{
				"accountId": FakeAccountID,
				"baseUrl":   f.RootURL() + "/accounts/" + FakeAccountID,
				"email":     "sender@example.com",
				"isDefault": "true",
				"name":      "Example Account",
				"userId":    "8a9b2c3d-0000-4000-8000-000000000001",
				"userName":  "Sender",
			},
		},
	})
	return f
}

// RootURL returns the root URL of the fake API (equivalent to https://demo.docusign.net/restapi/v2).
func (f *FakeDocuSign) RootURL() string {
	return f.server.URL + RootPath
}

// URL returns the base URL of the fake server (without the API root path).
func (f *FakeDocuSign) URL() string {
	return f.server.URL
}

// Respond registers a canned response for a route relative to the API root (chi pattern syntax).
//
// body is written as-is when it is a string ([]byte bodies are sent as application/pdf),
// other values are encoded as JSON.
func (f *FakeDocuSign) Respond(method, pattern string, status int, body any) {
	f.Handle(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, status, body)
	})
}

// Handle registers a handler for a route relative to the API root.
func (f *FakeDocuSign) Handle(method, pattern string, handler http.HandlerFunc) {
	f.router.MethodFunc(method, pattern, handler)
}

// HandleRaw registers a handler for a route outside the API root (e.g the /oauth/token endpoint of an account server).
func (f *FakeDocuSign) HandleRaw(method, pattern string, handler http.HandlerFunc) {
	f.root.MethodFunc(method, pattern, handler)
}

// Requests returns the requests received so far.
func (f *FakeDocuSign) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// LastRequest returns the last request received, failing the test when there is none.
func (f *FakeDocuSign) LastRequest() RecordedRequest {
	f.t.Helper()
	requests := f.Requests()
	if len(requests) == 0 {
		f.t.Fatal("fake DocuSign received no request")
	}
	return requests[len(requests)-1]
}

func (f *FakeDocuSign) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		})
		f.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func writeBody(w http.ResponseWriter, status int, body any) {
	switch b := body.(type) {
	case nil:
		w.WriteHeader(status)
	case string:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, b)
	case []byte:
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(status)
		_, _ = w.Write(b)
	default:
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(b)
	}
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/information-sharing-networks/docusign-client/internal/api"
	"github.com/information-sharing-networks/docusign-client/internal/database"
	"github.com/information-sharing-networks/docusign-client/internal/version"
	"github.com/information-sharing-networks/docusign-client/pkg/connect"
)

// memStore keeps the saved notifications in memory
type memStore struct {
	saved   []*connect.Notification
	saveErr error
	pingErr error

	envelope   *database.Envelope
	recipients []database.EnvelopeRecipient
	events     []database.EnvelopeEvent
}

func (m *memStore) SaveNotification(ctx context.Context, n *connect.Notification) (database.SaveResult, error) {
	if m.saveErr != nil {
		return database.SaveResult{}, m.saveErr
	}
	if _, err := n.EnvelopeStatus(); err != nil {
		return database.SaveResult{}, err
	}
	events, err := n.Events()
	if err != nil {
		return database.SaveResult{}, err
	}
	m.saved = append(m.saved, n)
	return database.SaveResult{EnvelopeID: n.EnvelopeID(), StatusUpdated: true, EventsCreated: len(events)}, nil
}

func (m *memStore) GetEnvelope(ctx context.Context, envelopeID string) (database.Envelope, []database.EnvelopeRecipient, error) {
	if m.envelope == nil || m.envelope.EnvelopeID != envelopeID {
		return database.Envelope{}, nil, database.ErrNotFound
	}
	return *m.envelope, m.recipients, nil
}

func (m *memStore) ListEnvelopeEvents(ctx context.Context, envelopeID string) ([]database.EnvelopeEvent, error) {
	if m.envelope == nil || m.envelope.EnvelopeID != envelopeID {
		return nil, database.ErrNotFound
	}
	return m.events, nil
}

func (m *memStore) Ping(ctx context.Context) error { return m.pingErr }

func renderNotification(t *testing.T, status string) []byte {
	t.Helper()
	sent := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	body, err := connect.Render(connect.NotificationData{
		EnvelopeID:    "env-1",
		Subject:       "Please sign",
		Status:        status,
		TimeGenerated: sent.Add(time.Hour),
		Created:       sent.Add(-time.Minute),
		Sent:          sent,
		Recipients: []connect.RecipientData{
			{
				Type:         "Signer",
				Email:        "signer@example.com",
				UserName:     "Signer",
				RoutingOrder: 1,
				Status:       "Sent",
				ClientUserID: "client-1",
				RecipientID:  "1",
				Sent:         sent,
			},
		},
	})
	if err != nil {
		t.Fatalf("could not render notification: %v", err)
	}
	return body
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode error response %q: %v", rr.Body.String(), err)
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("expected one detailed error, got %+v", resp)
	}
	return resp
}

func TestHandleNotification(t *testing.T) {
	tests := []struct {
		name       string
		body       []byte
		saveErr    error
		wantStatus int
		wantCode   api.ErrorCode
		wantEvents int
	}{
		{
			name:       "sent notification",
			body:       renderNotification(t, "Sent"),
			wantStatus: http.StatusOK,
			// envelope created, envelope sent, recipient sent
			wantEvents: 3,
		},
		{
			name:       "not xml",
			body:       []byte(`{"status":"sent"}`),
			wantStatus: http.StatusBadRequest,
			wantCode:   api.ErrCodeMalformedRequest,
		},
		{
			name:       "unknown status",
			body:       renderNotification(t, "Pending"),
			wantStatus: http.StatusBadRequest,
			wantCode:   api.ErrCodeMalformedRequest,
		},
		{
			name:       "database failure",
			body:       renderNotification(t, "Sent"),
			saveErr:    errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   api.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{saveErr: tt.saveErr}
			handler := NewConnectHandler(store)

			req := httptest.NewRequest(http.MethodPost, "/connect", bytes.NewReader(tt.body))
			req.Header.Set("Content-Type", "text/xml")
			rr := httptest.NewRecorder()
			handler.HandleNotification(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.wantStatus, rr.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				if resp := decodeError(t, rr); resp.Errors[0].ErrorCode != tt.wantCode {
					t.Errorf("error code = %d, want %d", resp.Errors[0].ErrorCode, tt.wantCode)
				}
				return
			}

			var resp NotificationReceivedResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("could not decode response: %v", err)
			}
			if resp.EnvelopeID != "env-1" || !resp.StatusUpdated || resp.EventsCreated != tt.wantEvents {
				t.Errorf("unexpected response: %+v", resp)
			}
			if len(store.saved) != 1 {
				t.Errorf("expected one saved notification, got %d", len(store.saved))
			}
		})
	}
}

func TestHandleNotificationBodyTooLarge(t *testing.T) {
	handler := NewConnectHandler(&memStore{})
	body := renderNotification(t, "Sent")

	req := httptest.NewRequest(http.MethodPost, "/connect", nil)
	rr := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rr, io.NopCloser(bytes.NewReader(body)), 16)
	handler.HandleNotification(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusRequestEntityTooLarge)
	}
}

func newEnvelopeRouter(store *memStore) http.Handler {
	h := NewEnvelopeHandler(store)
	r := chi.NewRouter()
	r.Get("/envelopes/{envelopeID}", h.HandleGetEnvelope)
	r.Get("/envelopes/{envelopeID}/events", h.HandleListEnvelopeEvents)
	return r
}

func TestHandleGetEnvelope(t *testing.T) {
	generated := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store := &memStore{
		envelope: &database.Envelope{EnvelopeID: "env-1", Status: "Completed", Subject: "Please sign", TimeGenerated: generated},
		recipients: []database.EnvelopeRecipient{
			{EnvelopeID: "env-1", RecipientID: "1", RecipientType: "Signer", RoutingOrder: 1, Status: "Completed", ClientUserID: "client-1"},
			{EnvelopeID: "env-1", RecipientID: "2", RecipientType: "CarbonCopy", RoutingOrder: 2, Status: "Sent"},
		},
	}
	router := newEnvelopeRouter(store)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/envelopes/env-1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}

	var resp EnvelopeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if resp.Status != "Completed" || !resp.TimeGenerated.Equal(generated) {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	if len(resp.Recipients) != 2 || resp.Recipients[0].ClientUserID != "client-1" || resp.Recipients[1].Type != "CarbonCopy" {
		t.Errorf("unexpected recipients: %+v", resp.Recipients)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/envelopes/unknown", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Errors[0].ErrorCode != api.ErrCodeNotFound {
		t.Errorf("error code = %d, want %d", resp.Errors[0].ErrorCode, api.ErrCodeNotFound)
	}
}

func TestHandleListEnvelopeEvents(t *testing.T) {
	sent := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := &memStore{
		envelope: &database.Envelope{EnvelopeID: "env-1", Status: "Sent"},
		events: []database.EnvelopeEvent{
			{EnvelopeID: "env-1", Object: "envelope", Status: "Sent", OccurredAt: sent},
			{EnvelopeID: "env-1", Object: "recipient", Status: "Sent", RecipientID: "1", ClientUserID: "client-1", OccurredAt: sent},
		},
	}
	router := newEnvelopeRouter(store)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/envelopes/env-1/events", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var events []connect.Event
	if err := json.Unmarshal(rr.Body.Bytes(), &events); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	want := []connect.Event{
		{Object: connect.ObjectEnvelope, Status: "Sent", Time: sent},
		{Object: connect.ObjectRecipient, Status: "Sent", Time: sent, RecipientID: "1", ClientUserID: "client-1"},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i].Object != want[i].Object || events[i].Status != want[i].Status ||
			!events[i].Time.Equal(want[i].Time) || events[i].RecipientID != want[i].RecipientID {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/envelopes/unknown/events", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestHandleReadiness(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"database up", nil, http.StatusOK, `"status":"ready"`},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, `"reason":"database unavailable"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			HandleReadiness(&memStore{pingErr: tt.pingErr})(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if !strings.Contains(rr.Body.String(), tt.wantBody) {
				t.Errorf("body %q does not contain %q", rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandleVersion(t *testing.T) {
	rr := httptest.NewRecorder()
	HandleVersion(version.Info{Version: "v1.2.0", BuildDate: "2024-01-28T10:00:00Z", GitCommit: "3f2a1bc"})(
		rr, httptest.NewRequest(http.MethodGet, "/version", nil))

	var resp VersionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if resp.Version != "v1.2.0" || resp.GitCommit != "3f2a1bc" || resp.Service != "connect-receiver" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

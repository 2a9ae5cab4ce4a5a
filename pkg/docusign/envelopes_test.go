package docusign

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/information-sharing-networks/docusign-client/internal/testutil"
)

type multipartPart struct {
	header map[string][]string
	body   []byte
}

func readMultipart(t *testing.T, contentType string, body []byte) []multipartPart {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("invalid content type %q: %v", contentType, err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("media type = %q, want multipart/form-data", mediaType)
	}

	var parts []multipartPart
	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read part: %v", err)
		}
		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("failed to read part body: %v", err)
		}
		parts = append(parts, multipartPart{header: part.Header, body: data})
	}
	return parts
}

func TestCreateEnvelopeFromDocuments(t *testing.T) {
	fake := testutil.NewFakeDocuSign(t)
	fake.Respond(http.MethodPost, "/accounts/{accountID}/envelopes", http.StatusCreated, map[string]any{
		"envelopeId":     "fake-envelope-id",
		"status":         "sent",
		"statusDateTime": "2026-10-19T10:00:00.0000000Z",
		"uri":            "/envelopes/fake-envelope-id",
	})
	client := newTestClient(t, fake, Config{AccountID: testutil.FakeAccountID})

	envelope := &Envelope{
		EmailSubject: "This is the subject",
		EmailBlurb:   "This is the body",
		Documents: []Document{
			{DocumentID: "1", Name: "contract.pdf", Content: strings.NewReader("%PDF-1.4 contract")},
			{DocumentID: "2", Name: `notes "draft".txt`, ContentType: "text/plain", Content: strings.NewReader("notes")},
		},
		Recipients: []Signer{{
			Email:        "signer@example.com",
			Name:         "Signer",
			RecipientID:  "1",
			ClientUserID: "client-1",
			Tabs:         []Tab{NewSignHereTab("1", 1, 100, 100)},
		}},
	}

	summary, err := client.CreateEnvelopeFromDocuments(context.Background(), envelope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.EnvelopeID != "fake-envelope-id" || envelope.EnvelopeID != "fake-envelope-id" {
		t.Errorf("envelope id not set: summary=%q envelope=%q", summary.EnvelopeID, envelope.EnvelopeID)
	}

	req := fake.LastRequest()
	parts := readMultipart(t, req.Header.Get("Content-Type"), req.Body)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}

	definitionHeader := http.Header(parts[0].header)
	if definitionHeader.Get("Content-Type") != "application/json; charset=UTF-8" {
		t.Errorf("definition content type = %q", definitionHeader.Get("Content-Type"))
	}
	if definitionHeader.Get("Content-Disposition") != "form-data" {
		t.Errorf("definition content disposition = %q", definitionHeader.Get("Content-Disposition"))
	}
	var definition map[string]any
	if err := json.Unmarshal(parts[0].body, &definition); err != nil {
		t.Fatalf("definition is not JSON: %v", err)
	}
	if definition["status"] != "Sent" || definition["emailSubject"] != "This is the subject" {
		t.Errorf("unexpected definition: %v", definition)
	}

	tests := []struct {
		part        multipartPart
		contentType string
		disposition string
		body        string
	}{
		{parts[1], "application/pdf", `file; filename="contract.pdf"; documentid=1`, "%PDF-1.4 contract"},
		{parts[2], "text/plain", `file; filename="notes \"draft\".txt"; documentid=2`, "notes"},
	}
	for _, tt := range tests {
		header := http.Header(tt.part.header)
		if header.Get("Content-Type") != tt.contentType {
			t.Errorf("content type = %q, want %q", header.Get("Content-Type"), tt.contentType)
		}
		if header.Get("Content-Disposition") != tt.disposition {
			t.Errorf("content disposition = %q, want %q", header.Get("Content-Disposition"), tt.disposition)
		}
		if string(tt.part.body) != tt.body {
			t.Errorf("document body = %q, want %q", tt.part.body, tt.body)
		}
	}
}

func TestCreateEnvelopeFromDocumentsTwice(t *testing.T) {
	fake := testutil.NewFakeDocuSign(t)
	fake.Respond(http.MethodPost, "/accounts/{accountID}/envelopes", http.StatusCreated, map[string]any{
		"envelopeId": "fake-envelope-id",
		"status":     "sent",
	})
	client := newTestClient(t, fake, Config{AccountID: testutil.FakeAccountID})

	// the same envelope is submitted again, e.g. after refreshing the token of a rejected request
	content := strings.NewReader("%PDF-1.4 contract")
	envelope := &Envelope{
		EmailSubject: "Retry",
		Documents:    []Document{{DocumentID: "1", Name: "contract.pdf", Content: content}},
	}
	for attempt := 1; attempt <= 2; attempt++ {
		if _, err := client.CreateEnvelopeFromDocuments(context.Background(), envelope); err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", attempt, err)
		}
		req := fake.LastRequest()
		parts := readMultipart(t, req.Header.Get("Content-Type"), req.Body)
		if len(parts) != 2 {
			t.Fatalf("attempt %d: expected 2 parts, got %d", attempt, len(parts))
		}
		if string(parts[1].body) != "%PDF-1.4 contract" {
			t.Errorf("attempt %d: document body = %q", attempt, parts[1].body)
		}
	}
}

// unseekableDocument is a document whose content cannot be rewound
type unseekableDocument struct {
	io.Reader
}

func (unseekableDocument) Seek(int64, int) (int64, error) {
	return 0, errors.New("seek not supported")
}

func TestCreateEnvelopeDocumentRewindError(t *testing.T) {
	fake := testutil.NewFakeDocuSign(t)
	client := newTestClient(t, fake, Config{AccountID: testutil.FakeAccountID})

	envelope := &Envelope{
		Documents: []Document{{DocumentID: "1", Name: "a.pdf", Content: unseekableDocument{strings.NewReader("x")}}},
	}
	_, err := client.CreateEnvelopeFromDocuments(context.Background(), envelope)
	var dsErr *Error
	if !errors.As(err, &dsErr) || dsErr.Code() != ErrCodeValidation {
		t.Errorf("expected a validation error, got %v", err)
	}
	for _, req := range fake.Requests() {
		if req.Method == http.MethodPost {
			t.Errorf("unexpected request %s %s", req.Method, req.Path)
		}
	}
}

func TestCreateEnvelopeValidation(t *testing.T) {
	client, err := NewClient(Config{RootURL: DefaultRootURL, AccountID: "1", Timeout: time.Second})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name     string
		envelope *Envelope
		template bool
	}{
		{name: "nil envelope", envelope: nil},
		{name: "no documents", envelope: &Envelope{}},
		{name: "document without content", envelope: &Envelope{Documents: []Document{{DocumentID: "1", Name: "a.pdf"}}}},
		{name: "document without id", envelope: &Envelope{Documents: []Document{{Name: "a.pdf", Content: strings.NewReader("x")}}}},
		{name: "template envelope sent as documents", envelope: &Envelope{TemplateID: "t"}},
		{name: "documents envelope sent as template", envelope: &Envelope{}, template: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.template {
				_, err = client.CreateEnvelopeFromTemplate(ctx, tt.envelope)
			} else {
				_, err = client.CreateEnvelopeFromDocuments(ctx, tt.envelope)
			}
			var dsErr *Error
			if !errors.As(err, &dsErr) || dsErr.Code() != ErrCodeValidation {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestCreateEnvelopeFromTemplate(t *testing.T) {
	fake := testutil.NewFakeDocuSign(t)
	fake.Respond(http.MethodPost, "/accounts/{accountID}/envelopes", http.StatusCreated, map[string]any{
		"envelopeId": "template-envelope-id",
		"status":     "created",
	})
	client := newTestClient(t, fake, Config{AccountID: testutil.FakeAccountID})

	envelope := &Envelope{
		EnvelopeID:    "already-set",
		TemplateID:    "1111-2222",
		Status:        EnvelopeStatusCreated,
		TemplateRoles: []Role{{Email: "signer@example.com", Name: "Signer", RoleName: "Buyer"}},
		SOBOEmail:     "sobo@example.com",
	}
	summary, err := client.CreateEnvelopeFromTemplate(context.Background(), envelope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.EnvelopeID != "template-envelope-id" {
		t.Errorf("EnvelopeID = %q", summary.EnvelopeID)
	}
	if envelope.EnvelopeID != "already-set" {
		t.Errorf("an existing envelope id must be kept, got %q", envelope.EnvelopeID)
	}

	req := fake.LastRequest()
	var auth map[string]string
	if err := json.Unmarshal([]byte(req.Header.Get("X-DocuSign-Authentication")), &auth); err != nil {
		t.Fatalf("invalid authentication header: %v", err)
	}
	if auth["SendOnBehalfOf"] != "sobo@example.com" {
		t.Errorf("SendOnBehalfOf = %q", auth["SendOnBehalfOf"])
	}

	parts := readMultipart(t, req.Header.Get("Content-Type"), req.Body)
	if len(parts) != 1 {
		t.Fatalf("template envelopes have only the definition part, got %d parts", len(parts))
	}
	var definition map[string]any
	if err := json.Unmarshal(parts[0].body, &definition); err != nil {
		t.Fatalf("definition is not JSON: %v", err)
	}
	if definition["templateId"] != "1111-2222" || definition["status"] != "Created" {
		t.Errorf("unexpected definition: %v", definition)
	}
	if _, ok := definition["documents"]; ok {
		t.Error("template envelopes must not define documents")
	}
}

func TestVoidEnvelope(t *testing.T) {
	fake := testutil.NewFakeDocuSign(t)
	fake.Respond(http.MethodPut, "/accounts/{accountID}/envelopes/{envelopeID}", http.StatusOK, map[string]any{})
	client := newTestClient(t, fake, Config{AccountID: testutil.FakeAccountID})

	if err := client.VoidEnvelope(context.Background(), "env-1", "cancelled by sender"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := fake.LastRequest()
	assertJSONEqual(t, json.RawMessage(req.Body), `{"status":"voided","voidedReason":"cancelled by sender"}`)
}

func TestPostRecipientView(t *testing.T) {
	fake := testutil.NewFakeDocuSign(t)
	fake.Respond(http.MethodPost, "/accounts/{accountID}/envelopes/{envelopeID}/views/recipient", http.StatusCreated,
		map[string]string{"url": "https://demo.docusign.net/Signing/?ti=abc"})
	client := newTestClient(t, fake, Config{AccountID: testutil.FakeAccountID})

	envelope := &Envelope{EnvelopeID: "env-1"}
	signer := Signer{ClientUserID: "client-1", Email: "signer@example.com", Name: "Signer", UserID: "user-1"}

	url, err := client.RecipientViewURL(context.Background(), envelope, signer, "https://example.com/done")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://demo.docusign.net/Signing/?ti=abc" {
		t.Errorf("url = %q", url)
	}

	req := fake.LastRequest()
	assertJSONEqual(t, json.RawMessage(req.Body), `{
		"authenticationMethod": "none",
		"clientUserId": "client-1",
		"email": "signer@example.com",
		"envelopeId": "env-1",
		"returnUrl": "https://example.com/done",
		"userId": "user-1",
		"userName": "Signer"
	}`)
}

func TestRecipientViewURLRequiresEnvelope(t *testing.T) {
	fake := testutil.NewFakeDocuSign(t)
	client := newTestClient(t, fake, Config{AccountID: testutil.FakeAccountID})

	_, err := client.RecipientViewURL(context.Background(), nil, Signer{ClientUserID: "client-1"}, "https://example.com/done")
	var dsErr *Error
	if !errors.As(err, &dsErr) || dsErr.Code() != ErrCodeValidation {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestEnvelopeChecksum(t *testing.T) {
	envelope := &Envelope{
		EmailSubject: "Subject",
		Documents:    []Document{{DocumentID: "1", Name: "a.pdf"}},
		Recipients:   []Signer{{Email: "signer@example.com", RecipientID: "1"}},
	}

	first, err := EnvelopeChecksum(envelope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := EnvelopeChecksum(envelope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second || len(first) != 64 {
		t.Errorf("checksum is not stable: %q %q", first, second)
	}

	envelope.EmailSubject = "Other subject"
	changed, err := EnvelopeChecksum(envelope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed == first {
		t.Error("checksum must change with the definition")
	}
}

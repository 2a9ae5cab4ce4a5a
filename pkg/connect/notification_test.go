package connect

import (
	"errors"
	"testing"
	"time"

	"github.com/information-sharing-networks/docusign-client/pkg/docusign"
)

var pacific = time.FixedZone("UTC-7", -7*3600)

func mustParse(t *testing.T, xml string) *Notification {
	t.Helper()
	n, err := Parse([]byte(xml))
	if err != nil {
		t.Fatalf("failed to parse notification: %v", err)
	}
	return n
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not xml", "hello"},
		{"wrong root element", "<Envelope><Status>Sent</Status></Envelope>"},
		{"unterminated", "<DocuSignEnvelopeInformation><EnvelopeStatus>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.body)); !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestEnvelopeStatus(t *testing.T) {
	tests := []struct {
		name    string
		xml     string
		want    docusign.EnvelopeStatus
		wantErr error
	}{
		{
			name: "sent",
			xml:  `<DocuSignEnvelopeInformation><EnvelopeStatus><Status>Sent</Status></EnvelopeStatus></DocuSignEnvelopeInformation>`,
			want: docusign.EnvelopeStatusSent,
		},
		{
			name: "with namespace",
			xml: `<DocuSignEnvelopeInformation xmlns="http://www.docusign.net/API/3.0">
				<EnvelopeStatus><Status>Completed</Status></EnvelopeStatus>
			</DocuSignEnvelopeInformation>`,
			want: docusign.EnvelopeStatusCompleted,
		},
		{
			name:    "missing",
			xml:     `<DocuSignEnvelopeInformation><EnvelopeStatus></EnvelopeStatus></DocuSignEnvelopeInformation>`,
			wantErr: ErrMissingStatus,
		},
		{
			name:    "unknown",
			xml:     `<DocuSignEnvelopeInformation><EnvelopeStatus><Status>Lost</Status></EnvelopeStatus></DocuSignEnvelopeInformation>`,
			wantErr: ErrUnknownStatus,
		},
		{
			name:    "draft is not reported",
			xml:     `<DocuSignEnvelopeInformation><EnvelopeStatus><Status>Draft</Status></EnvelopeStatus></DocuSignEnvelopeInformation>`,
			wantErr: ErrUnknownStatus,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := mustParse(t, tt.xml).EnvelopeStatus()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if status != tt.want {
				t.Errorf("status = %s, want %s", status, tt.want)
			}
		})
	}
}

func TestTimes(t *testing.T) {
	n := mustParse(t, `
		<DocuSignEnvelopeInformation>
			<EnvelopeStatus>
				<TimeGenerated>2014-10-06T01:41:09.4845071</TimeGenerated>
				<EnvelopeID>some-uuid</EnvelopeID>
			</EnvelopeStatus>
			<TimeZone>Pacific Standard Time</TimeZone>
			<TimeZoneOffset>-7</TimeZoneOffset>
		</DocuSignEnvelopeInformation>`)

	offset, err := n.TimeZoneOffset()
	if err != nil || offset != -7 {
		t.Fatalf("TimeZoneOffset() = %d, %v", offset, err)
	}
	if n.EnvelopeID() != "some-uuid" {
		t.Errorf("EnvelopeID() = %q", n.EnvelopeID())
	}

	tests := []struct {
		value string
		want  time.Time
	}{
		{"2014-10-06T01:41:40.6076508", time.Date(2014, 10, 6, 1, 41, 40, 607650800, pacific)},
		{"2014-10-06T01:41:40.12", time.Date(2014, 10, 6, 1, 41, 40, 120000000, pacific)},
		{"2014-10-06T01:41:40", time.Date(2014, 10, 6, 1, 41, 40, 0, pacific)},
	}
	for _, tt := range tests {
		got, err := n.ParseTime(tt.value)
		if err != nil {
			t.Fatalf("ParseTime(%q): %v", tt.value, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.value, got, tt.want)
		}
		if _, off := got.Zone(); off != -7*3600 {
			t.Errorf("ParseTime(%q) zone offset = %d", tt.value, off)
		}
	}

	generated, err := n.TimeGenerated()
	if err != nil {
		t.Fatalf("TimeGenerated(): %v", err)
	}
	if want := time.Date(2014, 10, 6, 1, 41, 9, 484507100, pacific); !generated.Equal(want) {
		t.Errorf("TimeGenerated() = %v, want %v", generated, want)
	}

	if _, err := n.ParseTime("06/10/2014"); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for an invalid time, got %v", err)
	}
}

func TestTimeZoneOffset(t *testing.T) {
	n := mustParse(t, `<DocuSignEnvelopeInformation></DocuSignEnvelopeInformation>`)
	if offset, err := n.TimeZoneOffset(); err != nil || offset != 0 {
		t.Errorf("missing offset: got %d, %v", offset, err)
	}

	n = mustParse(t, `<DocuSignEnvelopeInformation><TimeZoneOffset>west</TimeZoneOffset></DocuSignEnvelopeInformation>`)
	if _, err := n.TimeZoneOffset(); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
	if _, err := n.TimeGenerated(); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for a missing TimeGenerated, got %v", err)
	}
}

func TestEnvelopeStatusTime(t *testing.T) {
	n := mustParse(t, `
		<DocuSignEnvelopeInformation>
			<EnvelopeStatus>
				<RecipientStatuses>
					<RecipientStatus>
						<Sent>2014-10-20T01:10:00.12</Sent>
					</RecipientStatus>
				</RecipientStatuses>
				<Created>2014-10-06T01:10:00.12</Created>
				<Sent>2014-10-06T01:41:09.4845071</Sent>
			</EnvelopeStatus>
			<TimeZone>Pacific Standard Time</TimeZone>
			<TimeZoneOffset>-7</TimeZoneOffset>
		</DocuSignEnvelopeInformation>`)

	tests := []struct {
		status docusign.EnvelopeStatus
		want   *time.Time
	}{
		{docusign.EnvelopeStatusCreated, ptr(time.Date(2014, 10, 6, 1, 10, 0, 120000000, pacific))},
		{docusign.EnvelopeStatusSent, ptr(time.Date(2014, 10, 6, 1, 41, 9, 484507100, pacific))},
		{"completed", nil},
	}
	for _, tt := range tests {
		got, err := n.EnvelopeStatusTime(tt.status)
		if err != nil {
			t.Fatalf("EnvelopeStatusTime(%s): %v", tt.status, err)
		}
		assertTime(t, string(tt.status), got, tt.want)
	}
}

func TestRecipientStatusTime(t *testing.T) {
	n := mustParse(t, `
		<DocuSignEnvelopeInformation>
			<EnvelopeStatus>
				<RecipientStatuses>
					<RecipientStatus>
						<Sent>2014-10-06T01:10:00.12</Sent>
						<Delivered>2014-10-06T01:41:09.4845071</Delivered>
						<ClientUserId>12</ClientUserId>
						<RecipientId>bc5989a1-d642-4296-b96f-02ae7e3e2e66</RecipientId>
					</RecipientStatus>
					<RecipientStatus>
						<Sent>2014-10-07T01:10:00.12</Sent>
						<Delivered>2014-10-07T01:41:09.4845071</Delivered>
						<Signed>2014-10-07T01:41:09.4845071</Signed>
						<ClientUserId>44</ClientUserId>
						<RecipientId>de5989a1-d642-4296-b96f-02ae7e3e2e72</RecipientId>
					</RecipientStatus>
					<RecipientStatus>
						<Sent>2014-10-08T01:10:00.12</Sent>
						<RecipientId>0a5989a1-d642-4296-b96f-02ae7e3e2e80</RecipientId>
					</RecipientStatus>
				</RecipientStatuses>
			</EnvelopeStatus>
			<TimeZone>Pacific Standard Time</TimeZone>
			<TimeZoneOffset>-7</TimeZoneOffset>
		</DocuSignEnvelopeInformation>`)

	tests := []struct {
		clientUserID string
		status       docusign.RecipientStatus
		want         *time.Time
	}{
		{"12", "sent", ptr(time.Date(2014, 10, 6, 1, 10, 0, 120000000, pacific))},
		{"12", "delivered", ptr(time.Date(2014, 10, 6, 1, 41, 9, 484507100, pacific))},
		{"12", "signed", nil},
		{"44", "delivered", ptr(time.Date(2014, 10, 7, 1, 41, 9, 484507100, pacific))},
		{"99", "sent", nil},
		// recipients without a client user id are never matched
		{"", "sent", nil},
		{"  ", "sent", nil},
	}
	for _, tt := range tests {
		got, err := n.RecipientStatusTime(tt.clientUserID, tt.status)
		if err != nil {
			t.Fatalf("RecipientStatusTime(%s, %s): %v", tt.clientUserID, tt.status, err)
		}
		assertTime(t, tt.clientUserID+"/"+string(tt.status), got, tt.want)
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}

func assertTime(t *testing.T, name string, got, want *time.Time) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Errorf("%s: got %v, want nil", name, *got)
	case want != nil && got == nil:
		t.Errorf("%s: got nil, want %v", name, *want)
	case want != nil && !got.Equal(*want):
		t.Errorf("%s: got %v, want %v", name, *got, *want)
	}
}

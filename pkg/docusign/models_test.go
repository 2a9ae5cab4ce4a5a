package docusign

import (
	"encoding/json"
	"reflect"
	"testing"
)

// assertJSONEqual compares the JSON encoding of got with the want JSON document (key order and spacing are ignored)
func assertJSONEqual(t *testing.T, got any, want string) {
	t.Helper()

	gotBytes, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var gotValue, wantValue any
	if err := json.Unmarshal(gotBytes, &gotValue); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	if err := json.Unmarshal([]byte(want), &wantValue); err != nil {
		t.Fatalf("invalid expected JSON: %v", err)
	}

	if !reflect.DeepEqual(gotValue, wantValue) {
		t.Errorf("JSON mismatch\n got: %s\nwant: %s", gotBytes, want)
	}
}

func TestTabSerialization(t *testing.T) {
	tests := []struct {
		name string
		tab  Tab
		want string
	}{
		{
			name: "sign here tab keeps required fields",
			tab:  NewSignHereTab("2", 1, 100, 200),
			want: `{"documentId":"2","pageNumber":1,"recipientId":"","xPosition":100,"yPosition":200}`,
		},
		{
			name: "page number defaults to 1",
			tab:  Tab{Kind: TabApprove, DocumentID: "2"},
			want: `{"documentId":"2","pageNumber":1,"recipientId":"","xPosition":0,"yPosition":0}`,
		},
		{
			name: "optional fields are included when set",
			tab: Tab{
				Kind:         TabDateSigned,
				DocumentID:   "1",
				PageNumber:   3,
				AnchorString: "/date/",
				AnchorUnits:  "pixels",
				Bold:         true,
				Name:         "Date",
			},
			want: `{"documentId":"1","pageNumber":3,"recipientId":"","xPosition":0,"yPosition":0,
				"anchorString":"/date/","anchorUnits":"pixels","bold":true,"name":"Date"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertJSONEqual(t, tt.tab, tt.want)
		})
	}
}

func TestSignerSerialization(t *testing.T) {
	t.Run("without email notification", func(t *testing.T) {
		signer := Signer{
			ClientUserID: "some ID in your DB",
			Email:        "signer@example.com",
			Name:         "My Name",
			RecipientID:  "1",
			Tabs:         []Tab{NewSignHereTab("1", 2, 100, 200)},
		}
		assertJSONEqual(t, signer, `{
			"clientUserId": "some ID in your DB",
			"email": "signer@example.com",
			"emailNotification": null,
			"name": "My Name",
			"recipientId": "1",
			"tabs": {
				"signHereTabs": [
					{"documentId":"1","pageNumber":2,"recipientId":"1","xPosition":100,"yPosition":200}
				]
			}
		}`)
	})

	t.Run("with email notification and access code", func(t *testing.T) {
		signer := Signer{
			ClientUserID:      "some ID in your DB",
			Email:             "signer@example.com",
			EmailSubject:      "Subject",
			EmailBody:         "Body",
			SupportedLanguage: "de",
			Name:              "My Name",
			RecipientID:       "1",
			RoutingOrder:      100,
			Tabs:              []Tab{NewApproveTab("1", 2, 100, 200)},
			AccessCode:        "toto",
		}
		assertJSONEqual(t, signer, `{
			"clientUserId": "some ID in your DB",
			"email": "signer@example.com",
			"emailNotification": {"emailBody": "Body", "emailSubject": "Subject", "supportedLanguage": "de"},
			"name": "My Name",
			"recipientId": "1",
			"routingOrder": 100,
			"tabs": {
				"approveTabs": [
					{"documentId":"1","pageNumber":2,"recipientId":"1","xPosition":100,"yPosition":200}
				]
			},
			"accessCode": "toto"
		}`)
	})

	t.Run("tabs are grouped by kind", func(t *testing.T) {
		signer := Signer{
			Email:       "signer@example.com",
			RecipientID: "3",
			Tabs: []Tab{
				NewSignHereTab("1", 1, 10, 10),
				NewFullNameTab("1", 1, 10, 50),
				NewSignHereTab("1", 2, 10, 10),
			},
		}
		data, err := json.Marshal(signer)
		if err != nil {
			t.Fatalf("failed to marshal signer: %v", err)
		}
		var decoded struct {
			Tabs map[string][]map[string]any `json:"tabs"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if got := len(decoded.Tabs["signHereTabs"]); got != 2 {
			t.Errorf("expected 2 sign here tabs, got %d", got)
		}
		if got := len(decoded.Tabs["fullNameTabs"]); got != 1 {
			t.Errorf("expected 1 full name tab, got %d", got)
		}
	})
}

func TestRoleSerialization(t *testing.T) {
	role := Role{
		ClientUserID: "some ID in your DB",
		Email:        "signer@example.com",
		Name:         "My Name",
		RoleName:     "Role 1",
	}
	assertJSONEqual(t, role, `{
		"clientUserId": "some ID in your DB",
		"email": "signer@example.com",
		"emailNotification": null,
		"name": "My Name",
		"roleName": "Role 1"
	}`)

	role.EmailSubject = "Subject"
	role.EmailBody = "Body"
	role.SupportedLanguage = "de"
	assertJSONEqual(t, role, `{
		"clientUserId": "some ID in your DB",
		"email": "signer@example.com",
		"emailNotification": {"emailBody": "Body", "emailSubject": "Subject", "supportedLanguage": "de"},
		"name": "My Name",
		"roleName": "Role 1"
	}`)
}

func TestDocumentSerialization(t *testing.T) {
	assertJSONEqual(t, Document{DocumentID: "2", Name: "document.pdf", ContentType: "application/pdf"},
		`{"documentId":"2","name":"document.pdf"}`)
}

func TestEventNotificationDefaults(t *testing.T) {
	assertJSONEqual(t, NewEventNotification("http://example.com"), `{
		"url": "http://example.com",
		"loggingEnabled": true,
		"requireAcknowledgement": true,
		"useSoapInterface": false,
		"soapNameSpace": "",
		"includeCertificateWithSoap": false,
		"signMessageWithX509Cert": false,
		"includeDocuments": false,
		"includeTimeZone": true,
		"includeSenderAccountAsCustomField": true,
		"envelopeEvents": [
			{"envelopeEventStatusCode": "Sent", "includeDocuments": false},
			{"envelopeEventStatusCode": "Delivered", "includeDocuments": false},
			{"envelopeEventStatusCode": "Completed", "includeDocuments": false},
			{"envelopeEventStatusCode": "Declined", "includeDocuments": false},
			{"envelopeEventStatusCode": "Voided", "includeDocuments": false}
		],
		"recipientEvents": [
			{"recipientEventStatusCode": "AuthenticationFailed", "includeDocuments": false},
			{"recipientEventStatusCode": "AutoResponded", "includeDocuments": false},
			{"recipientEventStatusCode": "Completed", "includeDocuments": false},
			{"recipientEventStatusCode": "Declined", "includeDocuments": false},
			{"recipientEventStatusCode": "Delivered", "includeDocuments": false},
			{"recipientEventStatusCode": "Sent", "includeDocuments": false}
		]
	}`)
}

func TestEnvelopeSerialization(t *testing.T) {
	t.Run("envelope with documents and signers", func(t *testing.T) {
		envelope := Envelope{
			Documents:    []Document{{DocumentID: "2", Name: "document.pdf"}},
			EmailBlurb:   "This is the email body",
			EmailSubject: "This is the email subject",
			Recipients: []Signer{{
				Email:       "signer@example.com",
				Name:        "My Name",
				RecipientID: "1",
			}},
			Status: EnvelopeStatusDraft,
		}
		assertJSONEqual(t, envelope, `{
			"documents": [{"documentId": "2", "name": "document.pdf"}],
			"emailBlurb": "This is the email body",
			"emailSubject": "This is the email subject",
			"recipients": {
				"signers": [
					{"email": "signer@example.com", "emailNotification": null, "name": "My Name", "recipientId": "1"}
				]
			},
			"status": "Draft"
		}`)
	})

	t.Run("envelope from template", func(t *testing.T) {
		envelope := Envelope{
			EmailBlurb:    "This is the email body",
			EmailSubject:  "This is the email subject",
			TemplateID:    "1111-2222-3333-4444",
			TemplateRoles: []Role{{Email: "signer@example.com", Name: "My Name", RoleName: "Role 1"}},
			Status:        EnvelopeStatusDraft,
		}
		assertJSONEqual(t, envelope, `{
			"emailBlurb": "This is the email body",
			"emailSubject": "This is the email subject",
			"templateId": "1111-2222-3333-4444",
			"templateRoles": [
				{"email": "signer@example.com", "emailNotification": null, "name": "My Name", "roleName": "Role 1"}
			],
			"status": "Draft"
		}`)
	})

	t.Run("status defaults to sent", func(t *testing.T) {
		assertJSONEqual(t, Envelope{TemplateID: "t"}, `{
			"emailBlurb": "", "emailSubject": "", "status": "Sent", "templateId": "t", "templateRoles": []
		}`)
	})

	t.Run("event notification and notification are included", func(t *testing.T) {
		envelope := Envelope{
			Documents:         []Document{{DocumentID: "2", Name: "document.pdf"}},
			EventNotification: NewEventNotification("fake"),
			Notification: &Notification{
				Expirations: &Expirations{ExpireEnabled: true, ExpireAfter: 365, ExpireWarn: 5},
			},
		}
		data, err := json.Marshal(envelope)
		if err != nil {
			t.Fatalf("failed to marshal envelope: %v", err)
		}
		var decoded map[string]json.RawMessage
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if _, ok := decoded["eventNotification"]; !ok {
			t.Error("expected eventNotification in envelope definition")
		}
		var notification map[string]any
		if err := json.Unmarshal(decoded["notification"], &notification); err != nil {
			t.Fatalf("failed to unmarshal notification: %v", err)
		}
		want := map[string]any{
			"expirations": map[string]any{"expireEnabled": true, "expireAfter": float64(365), "expireWarn": float64(5)},
		}
		if !reflect.DeepEqual(notification, want) {
			t.Errorf("notification = %v, want %v", notification, want)
		}
	})
}

func TestApplyRecipients(t *testing.T) {
	t.Run("recipients are matched by client user id and sorted by routing order", func(t *testing.T) {
		tab := NewSignHereTab("1", 1, 10, 10)
		envelope := &Envelope{
			EnvelopeID: "fake-envelope-id",
			Recipients: []Signer{
				{ClientUserID: "2", Email: "two@example.com", RoutingOrder: 12, Tabs: []Tab{tab}},
				{ClientUserID: "1", Email: "one@example.com", RoutingOrder: 11},
			},
		}

		envelope.ApplyRecipients(&EnvelopeRecipients{
			Signers: []RecipientInfo{
				{ClientUserID: "2", Email: "two@example.com", Name: "Two", RecipientID: "b", UserID: "user-2", RoutingOrder: "12"},
				{ClientUserID: "1", Email: "one@example.com", Name: "One", RecipientID: "a", UserID: "user-1", RoutingOrder: "11"},
			},
		})

		if len(envelope.Recipients) != 2 {
			t.Fatalf("expected 2 recipients, got %d", len(envelope.Recipients))
		}
		first, second := envelope.Recipients[0], envelope.Recipients[1]
		if first.ClientUserID != "1" || first.RoutingOrder != 11 || first.UserID != "user-1" {
			t.Errorf("unexpected first recipient: %+v", first)
		}
		if second.ClientUserID != "2" || second.RoutingOrder != 12 || second.RecipientID != "b" {
			t.Errorf("unexpected second recipient: %+v", second)
		}
		if len(second.Tabs) != 1 {
			t.Errorf("expected local tabs to be kept, got %d tabs", len(second.Tabs))
		}
	})

	t.Run("unknown signers are added and routing order defaults to 1", func(t *testing.T) {
		envelope := &Envelope{}
		envelope.ApplyRecipients(&EnvelopeRecipients{
			Signers: []RecipientInfo{
				{Email: "late@example.com", RoutingOrder: "2"},
				{Email: "first@example.com"},
			},
		})
		if len(envelope.Recipients) != 2 {
			t.Fatalf("expected 2 recipients, got %d", len(envelope.Recipients))
		}
		if envelope.Recipients[0].Email != "first@example.com" || envelope.Recipients[0].RoutingOrder != 1 {
			t.Errorf("unexpected first recipient: %+v", envelope.Recipients[0])
		}
	})

	t.Run("template roles are the initial recipients of template envelopes", func(t *testing.T) {
		envelope := &Envelope{
			TemplateID: "template",
			TemplateRoles: []Role{
				{ClientUserID: "abc", Email: "role@example.com", RoleName: "Signer", Tabs: []Tab{NewInitialHereTab("1", 1, 0, 0)}},
			},
		}
		envelope.ApplyRecipients(&EnvelopeRecipients{
			Signers: []RecipientInfo{
				{ClientUserID: "abc", Email: "role@example.com", RoleName: "Signer", RecipientID: "1", RoutingOrder: "1"},
			},
		})
		signer, ok := envelope.SignerByClientUserID("abc")
		if !ok {
			t.Fatal("expected signer abc")
		}
		if signer.RoleName != "Signer" || len(signer.Tabs) != 1 {
			t.Errorf("unexpected signer: %+v", signer)
		}
		if _, ok := envelope.SignerByRoutingOrder(1); !ok {
			t.Error("expected a signer with routing order 1")
		}
		if len(envelope.TemplateRoles) != 1 {
			t.Error("template roles must not be modified")
		}
	})
}

func TestEnvelopeStatusIsValid(t *testing.T) {
	tests := []struct {
		status EnvelopeStatus
		want   bool
	}{
		{EnvelopeStatusSent, true},
		{EnvelopeStatusCompleted, true},
		{EnvelopeStatusDraft, false},
		{"Unknown", false},
	}
	for _, tt := range tests {
		if got := tt.status.IsValid(); got != tt.want {
			t.Errorf("%s.IsValid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

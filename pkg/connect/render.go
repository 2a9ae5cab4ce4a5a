package connect

import (
	"bytes"
	"context"
	"embed"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/callback.xml.tmpl
var templateFS embed.FS

// renderTimeLayout matches the 7 fractional digits sent by DocuSign
const renderTimeLayout = "2006-01-02T15:04:05.0000000"

var callbackTemplate = template.Must(template.New("callback.xml.tmpl").
	Funcs(template.FuncMap{
		"xml":    escapeXML,
		"dstime": func(time.Time) string { return "" },
	}).
	ParseFS(templateFS, "templates/callback.xml.tmpl"))

// NotificationData holds the values of a rendered notification. Zero times are omitted.
type NotificationData struct {
	EnvelopeID    string    `json:"envelopeId"`
	Subject       string    `json:"subject"`
	UserName      string    `json:"userName"`
	Email         string    `json:"email"`
	Status        string    `json:"status"`
	TimeGenerated time.Time `json:"timeGenerated"`

	Created   time.Time `json:"created"`
	Sent      time.Time `json:"sent"`
	Delivered time.Time `json:"delivered"`
	Signed    time.Time `json:"signed"`
	Completed time.Time `json:"completed"`
	Declined  time.Time `json:"declined"`
	Voided    time.Time `json:"voided"`

	VoidReason string `json:"voidReason,omitempty"`

	Recipients []RecipientData `json:"recipients"`
	Documents  []DocumentData  `json:"documents,omitempty"`

	// TimeZone is informative, times are rendered in the TimeZoneOffset (hours) zone
	TimeZone       string `json:"timeZone"`
	TimeZoneOffset int    `json:"timeZoneOffset"`
}

type RecipientData struct {
	Type                 string    `json:"type"`
	Email                string    `json:"email"`
	UserName             string    `json:"userName"`
	RoutingOrder         int       `json:"routingOrder"`
	Status               string    `json:"status"`
	ClientUserID         string    `json:"clientUserId"`
	RecipientID          string    `json:"recipientId"`
	DeclineReason        string    `json:"declineReason,omitempty"`
	Sent                 time.Time `json:"sent"`
	Delivered            time.Time `json:"delivered"`
	Signed               time.Time `json:"signed"`
	Declined             time.Time `json:"declined"`
	AuthenticationFailed time.Time `json:"authenticationFailed"`
	AutoResponded        time.Time `json:"autoResponded"`
}

type DocumentData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Sequence int    `json:"sequence"`
}

// Render returns a DocuSignEnvelopeInformation document for data, as DocuSign Connect would send it.
// TimeGenerated defaults to the current time.
func Render(data NotificationData) ([]byte, error) {
	if data.TimeGenerated.IsZero() {
		data.TimeGenerated = time.Now()
	}
	if data.Recipients == nil {
		data.Recipients = []RecipientData{}
	}

	zone := time.FixedZone(fmt.Sprintf("UTC%+d", data.TimeZoneOffset), data.TimeZoneOffset*3600)
	tmpl, err := callbackTemplate.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to clone notification template: %w", err)
	}
	tmpl.Funcs(template.FuncMap{
		"dstime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(zone).Format(renderTimeLayout)
		},
	})

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render notification: %w", err)
	}
	return buf.Bytes(), nil
}

func escapeXML(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Post sends a notification body to a Connect listener and returns the response status code.
// Each signing key adds an X-DocuSign-Signature-N header.
func Post(ctx context.Context, httpClient *http.Client, url string, body []byte, signingKeys ...string) (int, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml")
	for i, key := range signingKeys {
		req.Header.Set(fmt.Sprintf("%s%d", SignatureHeaderPrefix, i+1), Sign(body, key))
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to post notification to %s: %w", url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

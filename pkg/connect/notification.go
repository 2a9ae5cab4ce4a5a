// Package connect handles DocuSign Connect notifications.
//
// DocuSign Connect POSTs an XML document (DocuSignEnvelopeInformation) to the URL configured in the
// envelope event notification each time the envelope or one of its recipients changes status.
// Parse decodes the document and gives access to the envelope status and to the chronological list
// of envelope and recipient events. Times in the document are local to the sender account and are
// interpreted using the TimeZoneOffset element (hours).
//
// The package also renders notification documents (Render) so that receivers can be tested without
// DocuSign, and verifies the HMAC signatures DocuSign adds when Connect message signing is enabled.
package connect

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/information-sharing-networks/docusign-client/pkg/docusign"
)

var (
	// ErrMalformed is returned when the notification is not a DocuSignEnvelopeInformation document
	ErrMalformed = errors.New("malformed Connect notification")

	// ErrMissingStatus is returned when the envelope status can't be read from the notification
	ErrMissingStatus = errors.New("could not read envelope status from Connect notification")

	// ErrUnknownStatus is returned when the envelope status is not one of docusign.EnvelopeStatuses
	ErrUnknownStatus = errors.New("unknown envelope status")
)

// timeLayout is the layout of Connect times. Fractional seconds (DocuSign sends up to 7 digits) are accepted when parsing.
const timeLayout = "2006-01-02T15:04:05"

// Notification is a decoded DocuSignEnvelopeInformation document.
type Notification struct {
	XMLName xml.Name `xml:"DocuSignEnvelopeInformation"`

	Envelope EnvelopeStatusElement `xml:"EnvelopeStatus"`

	// TimeZone is informative (e.g "Pacific Standard Time"), TimeZoneOffsetValue is used to interpret times
	TimeZone            string `xml:"TimeZone"`
	TimeZoneOffsetValue string `xml:"TimeZoneOffset"`
}

// EnvelopeStatusElement is the EnvelopeStatus element of a notification.
// Status times are kept as sent by DocuSign, use Notification.ParseTime to convert them.
type EnvelopeStatusElement struct {
	RecipientStatuses []RecipientStatusElement `xml:"RecipientStatuses>RecipientStatus"`

	TimeGenerated string `xml:"TimeGenerated"`
	EnvelopeID    string `xml:"EnvelopeID"`
	Subject       string `xml:"Subject"`
	UserName      string `xml:"UserName"`
	Email         string `xml:"Email"`
	Status        string `xml:"Status"`

	Created   string `xml:"Created"`
	Sent      string `xml:"Sent"`
	Delivered string `xml:"Delivered"`
	Signed    string `xml:"Signed"`
	Completed string `xml:"Completed"`
	Declined  string `xml:"Declined"`
	Voided    string `xml:"Voided"`

	ACStatus       string            `xml:"ACStatus"`
	ACStatusDate   string            `xml:"ACStatusDate"`
	VoidReason     string            `xml:"VoidReason"`
	SenderIPAddr   string            `xml:"SenderIPAddress"`
	CustomFields   []CustomField     `xml:"CustomFields>CustomField"`
	DocumentStatus []DocumentElement `xml:"DocumentStatuses>DocumentStatus"`
}

// RecipientStatusElement is a RecipientStatus element of a notification.
type RecipientStatusElement struct {
	Type                 string `xml:"Type"`
	Email                string `xml:"Email"`
	UserName             string `xml:"UserName"`
	RoutingOrder         string `xml:"RoutingOrder"`
	Status               string `xml:"Status"`
	RecipientIPAddress   string `xml:"RecipientIPAddress"`
	ClientUserID         string `xml:"ClientUserId"`
	RecipientID          string `xml:"RecipientId"`
	DeclineReason        string `xml:"DeclineReason"`
	AuthenticationFailed string `xml:"AuthenticationFailed"`
	AutoResponded        string `xml:"AutoResponded"`
	Sent                 string `xml:"Sent"`
	Delivered            string `xml:"Delivered"`
	Signed               string `xml:"Signed"`
	Completed            string `xml:"Completed"`
	Declined             string `xml:"Declined"`
}

type CustomField struct {
	Name  string `xml:"Name"`
	Value string `xml:"Value"`
}

type DocumentElement struct {
	ID       string `xml:"ID"`
	Name     string `xml:"Name"`
	Sequence string `xml:"Sequence"`
}

// Parse decodes a Connect notification document.
//
// Only the XML structure is checked here: accessors report missing or invalid values.
func Parse(data []byte) (*Notification, error) {
	var n Notification
	if err := xml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &n, nil
}

// EnvelopeStatus returns the current status of the envelope.
func (n *Notification) EnvelopeStatus() (docusign.EnvelopeStatus, error) {
	value := strings.TrimSpace(n.Envelope.Status)
	if value == "" {
		return "", ErrMissingStatus
	}
	status := docusign.EnvelopeStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("%w %q", ErrUnknownStatus, value)
	}
	return status, nil
}

// EnvelopeID returns the id of the envelope the notification is about.
func (n *Notification) EnvelopeID() string {
	return strings.TrimSpace(n.Envelope.EnvelopeID)
}

// TimeZoneOffset returns the offset (hours) of the times in the notification. It is 0 when not included.
func (n *Notification) TimeZoneOffset() (int, error) {
	value := strings.TrimSpace(n.TimeZoneOffsetValue)
	if value == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time zone offset %q", ErrMalformed, value)
	}
	return offset, nil
}

// ParseTime converts a Connect time (e.g 2014-10-06T01:41:40.6076508) using the notification time zone offset.
func (n *Notification) ParseTime(value string) (time.Time, error) {
	offset, err := n.TimeZoneOffset()
	if err != nil {
		return time.Time{}, err
	}
	location := time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*3600)
	t, err := time.ParseInLocation(timeLayout, strings.TrimSpace(value), location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time %q", ErrMalformed, value)
	}
	return t, nil
}

// TimeGenerated returns when DocuSign generated the notification.
func (n *Notification) TimeGenerated() (time.Time, error) {
	if strings.TrimSpace(n.Envelope.TimeGenerated) == "" {
		return time.Time{}, fmt.Errorf("%w: TimeGenerated is missing", ErrMalformed)
	}
	return n.ParseTime(n.Envelope.TimeGenerated)
}

// EnvelopeStatusTime returns when the envelope reached status, or nil when it has not.
func (n *Notification) EnvelopeStatusTime(status docusign.EnvelopeStatus) (*time.Time, error) {
	return n.optionalTime(n.Envelope.statusValue(status))
}

// RecipientStatusTime returns when the recipient identified by clientUserID reached status,
// or nil when it has not (or when there is no such recipient). Recipients without a client user id
// never match.
func (n *Notification) RecipientStatusTime(clientUserID string, status docusign.RecipientStatus) (*time.Time, error) {
	clientUserID = strings.TrimSpace(clientUserID)
	if clientUserID == "" {
		return nil, nil
	}
	for _, r := range n.Envelope.RecipientStatuses {
		if strings.TrimSpace(r.ClientUserID) == clientUserID {
			return n.optionalTime(r.statusValue(status))
		}
	}
	return nil, nil
}

func (n *Notification) optionalTime(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := n.ParseTime(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (e EnvelopeStatusElement) statusValue(status docusign.EnvelopeStatus) string {
	switch {
	case strings.EqualFold(string(status), string(docusign.EnvelopeStatusCreated)):
		return e.Created
	case strings.EqualFold(string(status), string(docusign.EnvelopeStatusSent)):
		return e.Sent
	case strings.EqualFold(string(status), string(docusign.EnvelopeStatusDelivered)):
		return e.Delivered
	case strings.EqualFold(string(status), "Signed"):
		return e.Signed
	case strings.EqualFold(string(status), string(docusign.EnvelopeStatusCompleted)):
		return e.Completed
	case strings.EqualFold(string(status), string(docusign.EnvelopeStatusDeclined)):
		return e.Declined
	case strings.EqualFold(string(status), string(docusign.EnvelopeStatusVoided)):
		return e.Voided
	}
	return ""
}

func (r RecipientStatusElement) statusValue(status docusign.RecipientStatus) string {
	switch {
	case strings.EqualFold(string(status), string(docusign.RecipientStatusAuthenticationFailed)):
		return r.AuthenticationFailed
	case strings.EqualFold(string(status), string(docusign.RecipientStatusAutoResponded)):
		return r.AutoResponded
	case strings.EqualFold(string(status), string(docusign.RecipientStatusSigned)):
		return r.Signed
	case strings.EqualFold(string(status), string(docusign.RecipientStatusCompleted)):
		return r.Completed
	case strings.EqualFold(string(status), string(docusign.RecipientStatusDeclined)):
		return r.Declined
	case strings.EqualFold(string(status), string(docusign.RecipientStatusDelivered)):
		return r.Delivered
	case strings.EqualFold(string(status), string(docusign.RecipientStatusSent)):
		return r.Sent
	}
	return ""
}

package docusign

// models.go contains the resources sent to DocuSign when creating envelopes and managing recipients.
//
// JSON field names follow the DocuSign REST API v2 naming (camelCase).
// The wire shape of Signer, Role and Envelope depends on which optional fields are set,
// so these types implement json.Marshaler.

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
)

type EnvelopeStatus string

const (
	EnvelopeStatusCreated   EnvelopeStatus = "Created"
	EnvelopeStatusDraft     EnvelopeStatus = "Draft"
	EnvelopeStatusSent      EnvelopeStatus = "Sent"
	EnvelopeStatusDelivered EnvelopeStatus = "Delivered"
	EnvelopeStatusCompleted EnvelopeStatus = "Completed"
	EnvelopeStatusDeclined  EnvelopeStatus = "Declined"
	EnvelopeStatusVoided    EnvelopeStatus = "Voided"
)

// EnvelopeStatuses lists the statuses reported for an envelope in Connect events.
// Draft is a creation-time synonym of Created and is never reported.
var EnvelopeStatuses = []EnvelopeStatus{
	EnvelopeStatusCreated,
	EnvelopeStatusSent,
	EnvelopeStatusDelivered,
	EnvelopeStatusCompleted,
	EnvelopeStatusDeclined,
	EnvelopeStatusVoided,
}

// IsValid reports whether s is one of EnvelopeStatuses.
func (s EnvelopeStatus) IsValid() bool {
	for _, status := range EnvelopeStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type RecipientStatus string

const (
	RecipientStatusAuthenticationFailed RecipientStatus = "AuthenticationFailed"
	RecipientStatusAutoResponded        RecipientStatus = "AutoResponded"
	RecipientStatusSigned               RecipientStatus = "Signed"
	RecipientStatusCompleted            RecipientStatus = "Completed"
	RecipientStatusDeclined             RecipientStatus = "Declined"
	RecipientStatusDelivered            RecipientStatus = "Delivered"
	RecipientStatusSent                 RecipientStatus = "Sent"
)

var RecipientStatuses = []RecipientStatus{
	RecipientStatusAuthenticationFailed,
	RecipientStatusAutoResponded,
	RecipientStatusSigned,
	RecipientStatusCompleted,
	RecipientStatusDeclined,
	RecipientStatusDelivered,
	RecipientStatusSent,
}

// TabKind is the name of the tabs collection a tab belongs to.
type TabKind string

const (
	TabSignHere    TabKind = "signHereTabs"
	TabInitialHere TabKind = "initialHereTabs"
	TabApprove     TabKind = "approveTabs"
	TabFullName    TabKind = "fullNameTabs"
	TabDateSigned  TabKind = "dateSignedTabs"
	TabTitle       TabKind = "titleTabs"
)

// Tab is a placeholder (signature, initials, ...) or data field placed on a document page.
//
// DocumentID, PageNumber, RecipientID, XPosition and YPosition are always serialized,
// PageNumber defaults to 1. Use anchor fields instead of positions to place the tab relative to text.
type Tab struct {
	Kind TabKind `json:"-"`

	DocumentID  string `json:"documentId"`
	PageNumber  int    `json:"pageNumber"`
	RecipientID string `json:"recipientId"`
	XPosition   int    `json:"xPosition"`
	YPosition   int    `json:"yPosition"`

	AnchorString             string `json:"anchorString,omitempty"`
	AnchorXOffset            string `json:"anchorXOffset,omitempty"`
	AnchorYOffset            string `json:"anchorYOffset,omitempty"`
	AnchorIgnoreIfNotPresent bool   `json:"anchorIgnoreIfNotPresent,omitempty"`
	AnchorUnits              string `json:"anchorUnits,omitempty"`
	ConditionalParentLabel   string `json:"conditionalParentLabel,omitempty"`
	ConditionalParentValue   string `json:"conditionalParentValue,omitempty"`
	CustomTabID              string `json:"customTabId,omitempty"`
	TemplateLocked           bool   `json:"templateLocked,omitempty"`
	TemplateRequired         bool   `json:"templateRequired,omitempty"`
	TabLabel                 string `json:"tabLabel,omitempty"`

	// formatting (approve, fullName, dateSigned and title tabs)
	Bold      bool   `json:"bold,omitempty"`
	Font      string `json:"font,omitempty"`
	FontColor string `json:"fontColor,omitempty"`
	FontSize  string `json:"fontSize,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`

	Name       string  `json:"name,omitempty"`
	Value      string  `json:"value,omitempty"`
	Optional   bool    `json:"optional,omitempty"`
	ScaleValue float64 `json:"scaleValue,omitempty"`
	ButtonText string  `json:"buttonText,omitempty"`
	Height     int     `json:"height,omitempty"`
	Width      int     `json:"width,omitempty"`
}

// NewTab returns a tab of the given kind placed at x,y on a document page.
func NewTab(kind TabKind, documentID string, page, x, y int) Tab {
	return Tab{Kind: kind, DocumentID: documentID, PageNumber: page, XPosition: x, YPosition: y}
}

func NewSignHereTab(documentID string, page, x, y int) Tab {
	return NewTab(TabSignHere, documentID, page, x, y)
}

func NewInitialHereTab(documentID string, page, x, y int) Tab {
	return NewTab(TabInitialHere, documentID, page, x, y)
}

func NewApproveTab(documentID string, page, x, y int) Tab {
	return NewTab(TabApprove, documentID, page, x, y)
}

func NewFullNameTab(documentID string, page, x, y int) Tab {
	return NewTab(TabFullName, documentID, page, x, y)
}

func NewDateSignedTab(documentID string, page, x, y int) Tab {
	return NewTab(TabDateSigned, documentID, page, x, y)
}

func NewTitleTab(documentID string, page, x, y int) Tab {
	return NewTab(TabTitle, documentID, page, x, y)
}

func (t Tab) MarshalJSON() ([]byte, error) {
	type tab Tab
	if t.PageNumber == 0 {
		t.PageNumber = 1
	}
	return json.Marshal(tab(t))
}

// groupTabs groups tabs by kind as expected by the "tabs" field of a recipient.
// Tabs without a recipient id are assigned to recipientID.
func groupTabs(tabs []Tab, recipientID string) map[TabKind][]Tab {
	if len(tabs) == 0 {
		return nil
	}
	grouped := make(map[TabKind][]Tab)
	for _, t := range tabs {
		kind := t.Kind
		if kind == "" {
			kind = TabSignHere
		}
		if t.RecipientID == "" {
			t.RecipientID = recipientID
		}
		grouped[kind] = append(grouped[kind], t)
	}
	return grouped
}

// EmailNotification overrides the envelope email settings for a single recipient.
type EmailNotification struct {
	EmailBody         string `json:"emailBody"`
	EmailSubject      string `json:"emailSubject"`
	SupportedLanguage string `json:"supportedLanguage"`
}

func newEmailNotification(body, subject, language string) *EmailNotification {
	if body == "" && subject == "" && language == "" {
		return nil
	}
	return &EmailNotification{EmailBody: body, EmailSubject: subject, SupportedLanguage: language}
}

// Signer is a recipient who must sign, initial, date or fill form fields on the envelope documents.
//
// Set ClientUserID to make the signer an embedded (captive) recipient: DocuSign will not email
// them and the signing ceremony is started with a recipient view (see Client.PostRecipientView).
type Signer struct {
	ClientUserID      string
	Email             string
	Name              string
	RecipientID       string
	RoutingOrder      int
	AccessCode        string
	EmailBody         string
	EmailSubject      string
	SupportedLanguage string
	Tabs              []Tab

	// UserID and RoleName are populated from DocuSign when recipients are synchronized.
	UserID   string
	RoleName string
}

func (s Signer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ClientUserID      string             `json:"clientUserId,omitempty"`
		Email             string             `json:"email"`
		EmailNotification *EmailNotification `json:"emailNotification"`
		Name              string             `json:"name"`
		RecipientID       string             `json:"recipientId"`
		RoutingOrder      int                `json:"routingOrder,omitempty"`
		Tabs              map[TabKind][]Tab  `json:"tabs,omitempty"`
		AccessCode        string             `json:"accessCode,omitempty"`
	}{
		ClientUserID:      s.ClientUserID,
		Email:             s.Email,
		EmailNotification: newEmailNotification(s.EmailBody, s.EmailSubject, s.SupportedLanguage),
		Name:              s.Name,
		RecipientID:       s.RecipientID,
		RoutingOrder:      s.RoutingOrder,
		Tabs:              groupTabs(s.Tabs, s.RecipientID),
		AccessCode:        s.AccessCode,
	})
}

// Role assigns a recipient to a role defined in a template.
type Role struct {
	ClientUserID      string
	Email             string
	Name              string
	RoleName          string
	EmailBody         string
	EmailSubject      string
	SupportedLanguage string
	Tabs              []Tab
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ClientUserID      string             `json:"clientUserId,omitempty"`
		Email             string             `json:"email"`
		EmailNotification *EmailNotification `json:"emailNotification"`
		Name              string             `json:"name"`
		RoleName          string             `json:"roleName"`
		Tabs              map[TabKind][]Tab  `json:"tabs,omitempty"`
	}{
		ClientUserID:      r.ClientUserID,
		Email:             r.Email,
		EmailNotification: newEmailNotification(r.EmailBody, r.EmailSubject, r.SupportedLanguage),
		Name:              r.Name,
		RoleName:          r.RoleName,
		Tabs:              groupTabs(r.Tabs, ""),
	})
}

// signer converts the role into the Signer it becomes once the envelope is created.
func (r Role) signer() Signer {
	return Signer{
		ClientUserID:      r.ClientUserID,
		Email:             r.Email,
		Name:              r.Name,
		RoleName:          r.RoleName,
		EmailBody:         r.EmailBody,
		EmailSubject:      r.EmailSubject,
		SupportedLanguage: r.SupportedLanguage,
		Tabs:              r.Tabs,
	}
}

const defaultDocumentContentType = "application/pdf"

// Document is a file sent with an envelope. Only DocumentID and Name are part of the
// JSON envelope definition, Content is sent as a separate part of the multipart request.
type Document struct {
	DocumentID  string    `json:"documentId"`
	Name        string    `json:"name"`
	ContentType string    `json:"-"`
	Content     io.Reader `json:"-"`
}

func (d Document) contentType() string {
	if d.ContentType == "" {
		return defaultDocumentContentType
	}
	return d.ContentType
}

type EnvelopeEvent struct {
	EnvelopeEventStatusCode EnvelopeStatus `json:"envelopeEventStatusCode"`
	IncludeDocuments        bool           `json:"includeDocuments"`
}

type RecipientEvent struct {
	RecipientEventStatusCode RecipientStatus `json:"recipientEventStatusCode"`
	IncludeDocuments         bool            `json:"includeDocuments"`
}

// DefaultEnvelopeEvents returns one event per envelope status except Created (and Draft).
func DefaultEnvelopeEvents() []EnvelopeEvent {
	events := make([]EnvelopeEvent, 0, len(EnvelopeStatuses))
	for _, status := range EnvelopeStatuses {
		if status == EnvelopeStatusCreated {
			continue
		}
		events = append(events, EnvelopeEvent{EnvelopeEventStatusCode: status})
	}
	return events
}

// DefaultRecipientEvents returns one event per recipient status except Signed,
// which DocuSign reports as Completed.
func DefaultRecipientEvents() []RecipientEvent {
	events := make([]RecipientEvent, 0, len(RecipientStatuses))
	for _, status := range RecipientStatuses {
		if status == RecipientStatusSigned {
			continue
		}
		events = append(events, RecipientEvent{RecipientEventStatusCode: status})
	}
	return events
}

// EventNotification asks DocuSign to POST Connect notifications to URL
// when the envelope or its recipients change status.
type EventNotification struct {
	URL                               string           `json:"url"`
	LoggingEnabled                    bool             `json:"loggingEnabled"`
	RequireAcknowledgement            bool             `json:"requireAcknowledgement"`
	UseSoapInterface                  bool             `json:"useSoapInterface"`
	SoapNameSpace                     string           `json:"soapNameSpace"`
	IncludeCertificateWithSoap        bool             `json:"includeCertificateWithSoap"`
	SignMessageWithX509Cert           bool             `json:"signMessageWithX509Cert"`
	IncludeDocuments                  bool             `json:"includeDocuments"`
	IncludeTimeZone                   bool             `json:"includeTimeZone"`
	IncludeSenderAccountAsCustomField bool             `json:"includeSenderAccountAsCustomField"`
	EnvelopeEvents                    []EnvelopeEvent  `json:"envelopeEvents"`
	RecipientEvents                   []RecipientEvent `json:"recipientEvents"`
}

// NewEventNotification returns the notification settings used by default: logging and
// acknowledgement on, time zone and sender account included, default events.
func NewEventNotification(url string) *EventNotification {
	return &EventNotification{
		URL:                               url,
		LoggingEnabled:                    true,
		RequireAcknowledgement:            true,
		IncludeTimeZone:                   true,
		IncludeSenderAccountAsCustomField: true,
		EnvelopeEvents:                    DefaultEnvelopeEvents(),
		RecipientEvents:                   DefaultRecipientEvents(),
	}
}

type Expirations struct {
	ExpireEnabled bool `json:"expireEnabled"`
	ExpireAfter   int  `json:"expireAfter"`
	ExpireWarn    int  `json:"expireWarn"`
}

type Reminders struct {
	ReminderEnabled   bool `json:"reminderEnabled"`
	ReminderDelay     int  `json:"reminderDelay"`
	ReminderFrequency int  `json:"reminderFrequency"`
}

// Notification holds the reminder and expiration settings of an envelope.
type Notification struct {
	UseAccountDefaults bool         `json:"useAccountDefaults,omitempty"`
	Reminders          *Reminders   `json:"reminders,omitempty"`
	Expirations        *Expirations `json:"expirations,omitempty"`
}

// Envelope is the definition of an envelope to send, built either from documents
// and Recipients, or from a template (TemplateID and TemplateRoles).
type Envelope struct {
	// EnvelopeID is set by the client once DocuSign created the envelope
	EnvelopeID string

	// Status defaults to Sent. Use Created (or Draft) to save the envelope without sending it.
	Status       EnvelopeStatus
	EmailSubject string
	EmailBlurb   string

	Documents  []Document
	Recipients []Signer

	TemplateID    string
	TemplateRoles []Role

	EventNotification *EventNotification
	Notification      *Notification

	// SOBOEmail is the email of the user the envelope is sent on behalf of
	SOBOEmail string
}

// IsTemplate reports whether the envelope is created from a server-side template.
func (e *Envelope) IsTemplate() bool {
	return e.TemplateID != ""
}

type signersDefinition struct {
	Signers []Signer `json:"signers"`
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	status := e.Status
	if status == "" {
		status = EnvelopeStatusSent
	}
	definition := struct {
		Status            EnvelopeStatus     `json:"status"`
		EmailBlurb        string             `json:"emailBlurb"`
		EmailSubject      string             `json:"emailSubject"`
		EventNotification *EventNotification `json:"eventNotification,omitempty"`
		Notification      *Notification      `json:"notification,omitempty"`
		TemplateID        string             `json:"templateId,omitempty"`
		TemplateRoles     *[]Role            `json:"templateRoles,omitempty"`
		Documents         *[]Document        `json:"documents,omitempty"`
		Recipients        *signersDefinition `json:"recipients,omitempty"`
	}{
		Status:            status,
		EmailBlurb:        e.EmailBlurb,
		EmailSubject:      e.EmailSubject,
		EventNotification: e.EventNotification,
		Notification:      e.Notification,
	}

	if e.IsTemplate() {
		roles := e.TemplateRoles
		if roles == nil {
			roles = []Role{}
		}
		definition.TemplateID = e.TemplateID
		definition.TemplateRoles = &roles
	} else {
		documents := e.Documents
		if documents == nil {
			documents = []Document{}
		}
		signers := e.Recipients
		if signers == nil {
			signers = []Signer{}
		}
		definition.Documents = &documents
		definition.Recipients = &signersDefinition{Signers: signers}
	}
	return json.Marshal(definition)
}

// SignerByRoutingOrder returns the first recipient with the given routing order.
func (e *Envelope) SignerByRoutingOrder(order int) (*Signer, bool) {
	for i := range e.Recipients {
		if e.Recipients[i].RoutingOrder == order {
			return &e.Recipients[i], true
		}
	}
	return nil, false
}

// SignerByClientUserID returns the recipient with the given client user id.
func (e *Envelope) SignerByClientUserID(clientUserID string) (*Signer, bool) {
	for i := range e.Recipients {
		if e.Recipients[i].ClientUserID == clientUserID {
			return &e.Recipients[i], true
		}
	}
	return nil, false
}

// ApplyRecipients replaces the envelope recipients with the signers reported by DocuSign.
//
// A reported signer reuses the local recipient (template role for template envelopes) with the
// same client user id so that local-only fields such as tabs are kept, otherwise a new Signer is created.
// DocuSign assigned fields are copied over and the result is ordered by routing order.
func (e *Envelope) ApplyRecipients(recipients *EnvelopeRecipients) {
	var initial []Signer
	if e.IsTemplate() {
		for _, role := range e.TemplateRoles {
			initial = append(initial, role.signer())
		}
	} else {
		initial = append(initial, e.Recipients...)
	}

	synced := make([]Signer, 0, len(recipients.Signers))
	for _, info := range recipients.Signers {
		var recipient Signer
		if info.ClientUserID != "" {
			for i, candidate := range initial {
				if candidate.ClientUserID == info.ClientUserID {
					recipient = candidate
					initial = append(initial[:i], initial[i+1:]...)
					break
				}
			}
		}

		recipient.RoutingOrder = 1
		if info.RoutingOrder != "" {
			if order, err := strconv.Atoi(info.RoutingOrder); err == nil {
				recipient.RoutingOrder = order
			}
		}
		recipient.Name = info.Name
		recipient.UserID = info.UserID
		recipient.RecipientID = info.RecipientID
		recipient.ClientUserID = info.ClientUserID
		recipient.Email = info.Email
		recipient.RoleName = info.RoleName
		synced = append(synced, recipient)
	}

	sort.SliceStable(synced, func(i, j int) bool {
		return synced[i].RoutingOrder < synced[j].RoutingOrder
	})
	e.Recipients = synced
}

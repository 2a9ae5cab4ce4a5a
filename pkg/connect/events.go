package connect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/information-sharing-networks/docusign-client/pkg/docusign"
)

type ObjectType string

const (
	ObjectEnvelope  ObjectType = "envelope"
	ObjectRecipient ObjectType = "recipient"
)

// Event is a status change of the envelope or of one of its recipients.
// RecipientID and ClientUserID are empty for envelope events.
type Event struct {
	Object       ObjectType `json:"object"`
	Status       string     `json:"status"`
	Time         time.Time  `json:"time"`
	RecipientID  string     `json:"recipientId,omitempty"`
	ClientUserID string     `json:"clientUserId,omitempty"`
}

// EnvelopeEvents returns the envelope status changes in chronological order.
func (n *Notification) EnvelopeEvents() ([]Event, error) {
	var events []Event
	for _, status := range docusign.EnvelopeStatuses {
		t, err := n.EnvelopeStatusTime(status)
		if err != nil {
			return nil, err
		}
		if t == nil {
			continue
		}
		events = append(events, Event{Object: ObjectEnvelope, Status: string(status), Time: *t})
	}
	sortEvents(events)
	return events, nil
}

// RecipientEvents returns the recipient status changes in chronological order.
// Recipients without a recipient id or client user id are ignored.
func (n *Notification) RecipientEvents() ([]Event, error) {
	var events []Event
	for _, r := range n.Envelope.RecipientStatuses {
		recipientID := strings.TrimSpace(r.RecipientID)
		clientUserID := strings.TrimSpace(r.ClientUserID)
		if recipientID == "" || clientUserID == "" {
			continue
		}
		for _, status := range docusign.RecipientStatuses {
			t, err := n.optionalTime(r.statusValue(status))
			if err != nil {
				return nil, err
			}
			if t == nil {
				continue
			}
			events = append(events, Event{
				Object:       ObjectRecipient,
				Status:       string(status),
				Time:         *t,
				RecipientID:  recipientID,
				ClientUserID: clientUserID,
			})
		}
	}
	sortEvents(events)
	return events, nil
}

// Events returns the envelope and recipient events in chronological order.
// Envelope events come first when an envelope and a recipient event happened at the same time.
func (n *Notification) Events() ([]Event, error) {
	envelopeEvents, err := n.EnvelopeEvents()
	if err != nil {
		return nil, err
	}
	recipientEvents, err := n.RecipientEvents()
	if err != nil {
		return nil, err
	}
	events := append(envelopeEvents, recipientEvents...)
	sortEvents(events)
	return events, nil
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
}

// Recipient is the status of a recipient as reported in a notification.
type Recipient struct {
	ClientUserID  string
	RecipientID   string
	Type          string
	Email         string
	UserName      string
	RoutingOrder  int
	Status        string
	DeclineReason string

	// Times holds the time of each status reached by the recipient.
	// The Completed time is the time the recipient signed.
	Times map[docusign.RecipientStatus]time.Time
}

// Recipients returns the recipients ordered by routing order.
func (n *Notification) Recipients() ([]Recipient, error) {
	recipients := make([]Recipient, 0, len(n.Envelope.RecipientStatuses))
	for i, r := range n.Envelope.RecipientStatuses {
		order, err := strconv.Atoi(strings.TrimSpace(r.RoutingOrder))
		if err != nil {
			return nil, fmt.Errorf("%w: recipient %d has an invalid routing order %q", ErrMalformed, i, r.RoutingOrder)
		}

		recipient := Recipient{
			ClientUserID:  strings.TrimSpace(r.ClientUserID),
			RecipientID:   strings.TrimSpace(r.RecipientID),
			Type:          r.Type,
			Email:         r.Email,
			UserName:      r.UserName,
			RoutingOrder:  order,
			Status:        r.Status,
			DeclineReason: r.DeclineReason,
			Times:         make(map[docusign.RecipientStatus]time.Time),
		}
		for _, status := range docusign.RecipientStatuses {
			lookup := status
			if status == docusign.RecipientStatusCompleted {
				lookup = docusign.RecipientStatusSigned
			}
			t, err := n.optionalTime(r.statusValue(lookup))
			if err != nil {
				return nil, err
			}
			if t != nil {
				recipient.Times[status] = *t
			}
		}
		recipients = append(recipients, recipient)
	}

	sort.SliceStable(recipients, func(i, j int) bool {
		return recipients[i].RoutingOrder < recipients[j].RoutingOrder
	})
	return recipients, nil
}

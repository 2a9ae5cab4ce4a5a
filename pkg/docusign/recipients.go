package docusign

import (
	"context"
	"net/http"
)

// GetEnvelopeRecipients returns the recipients of an envelope and their status.
func (c *Client) GetEnvelopeRecipients(ctx context.Context, envelopeID string) (*EnvelopeRecipients, error) {
	if err := requireID("envelope id", envelopeID); err != nil {
		return nil, err
	}
	target, err := c.accountPath(ctx, "envelopes", envelopeID, "recipients")
	if err != nil {
		return nil, err
	}

	var recipients EnvelopeRecipients
	if err := c.doJSON(ctx, http.MethodGet, target, nil, http.StatusOK, &recipients); err != nil {
		return nil, err
	}
	return &recipients, nil
}

// SyncEnvelopeRecipients fetches the recipients of the envelope and updates envelope.Recipients
// with the values assigned by DocuSign (recipient ids, user ids, routing order).
func (c *Client) SyncEnvelopeRecipients(ctx context.Context, envelope *Envelope) error {
	if envelope == nil {
		return NewValidationError("envelope is required")
	}
	recipients, err := c.GetEnvelopeRecipients(ctx, envelope.EnvelopeID)
	if err != nil {
		return err
	}
	envelope.ApplyRecipients(recipients)
	return nil
}

// AddEnvelopeRecipients adds signers to an existing envelope.
// When resend is true DocuSign resends the envelope to the recipients that already received it.
func (c *Client) AddEnvelopeRecipients(ctx context.Context, envelopeID string, signers []Signer, resend bool) (*EnvelopeRecipients, error) {
	target, err := c.recipientsPath(ctx, envelopeID, resend)
	if err != nil {
		return nil, err
	}
	if len(signers) == 0 {
		return nil, NewValidationError("at least one signer is required")
	}

	var recipients EnvelopeRecipients
	if err := c.doJSON(ctx, http.MethodPost, target, signersDefinition{Signers: signers}, http.StatusCreated, &recipients); err != nil {
		return nil, err
	}
	return &recipients, nil
}

// UpdateEnvelopeRecipients updates signers of an existing envelope, matched by recipient id.
func (c *Client) UpdateEnvelopeRecipients(ctx context.Context, envelopeID string, signers []Signer, resend bool) (*RecipientsUpdateSummary, error) {
	target, err := c.recipientsPath(ctx, envelopeID, resend)
	if err != nil {
		return nil, err
	}
	if len(signers) == 0 {
		return nil, NewValidationError("at least one signer is required")
	}
	for _, s := range signers {
		if err := requireID("recipient id", s.RecipientID); err != nil {
			return nil, err
		}
	}

	var summary RecipientsUpdateSummary
	if err := c.doJSON(ctx, http.MethodPut, target, signersDefinition{Signers: signers}, http.StatusOK, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// DeleteEnvelopeRecipient removes one recipient from an envelope.
func (c *Client) DeleteEnvelopeRecipient(ctx context.Context, envelopeID, recipientID string) (*EnvelopeRecipients, error) {
	if err := requireID("envelope id", envelopeID); err != nil {
		return nil, err
	}
	if err := requireID("recipient id", recipientID); err != nil {
		return nil, err
	}
	target, err := c.accountPath(ctx, "envelopes", envelopeID, "recipients", recipientID)
	if err != nil {
		return nil, err
	}

	var recipients EnvelopeRecipients
	if err := c.doJSON(ctx, http.MethodDelete, target, nil, http.StatusOK, &recipients); err != nil {
		return nil, err
	}
	return &recipients, nil
}

// DeleteEnvelopeRecipients removes several recipients from an envelope in one request.
func (c *Client) DeleteEnvelopeRecipients(ctx context.Context, envelopeID string, recipientIDs []string) (*EnvelopeRecipients, error) {
	target, err := c.recipientsPath(ctx, envelopeID, false)
	if err != nil {
		return nil, err
	}
	if len(recipientIDs) == 0 {
		return nil, NewValidationError("at least one recipient id is required")
	}

	type recipientRef struct {
		RecipientID string `json:"recipientId"`
	}
	body := struct {
		Signers []recipientRef `json:"signers"`
	}{}
	for _, id := range recipientIDs {
		if err := requireID("recipient id", id); err != nil {
			return nil, err
		}
		body.Signers = append(body.Signers, recipientRef{RecipientID: id})
	}

	var recipients EnvelopeRecipients
	if err := c.doJSON(ctx, http.MethodDelete, target, body, http.StatusOK, &recipients); err != nil {
		return nil, err
	}
	return &recipients, nil
}

func (c *Client) recipientsPath(ctx context.Context, envelopeID string, resend bool) (string, error) {
	if err := requireID("envelope id", envelopeID); err != nil {
		return "", err
	}
	target, err := c.accountPath(ctx, "envelopes", envelopeID, "recipients")
	if err != nil {
		return "", err
	}
	if resend {
		target += "?resend_envelope=true"
	}
	return target, nil
}

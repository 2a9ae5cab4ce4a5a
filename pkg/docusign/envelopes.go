package docusign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// CreateEnvelopeFromDocuments creates an envelope from its documents and signers.
//
// The envelope definition and every document are posted as a multipart/form-data request.
// The created envelope id is stored in envelope.EnvelopeID when it has none.
func (c *Client) CreateEnvelopeFromDocuments(ctx context.Context, envelope *Envelope) (*EnvelopeSummary, error) {
	if envelope == nil {
		return nil, NewValidationError("envelope is required")
	}
	if envelope.IsTemplate() {
		return nil, NewValidationError("envelope references a template, use CreateEnvelopeFromTemplate")
	}
	if len(envelope.Documents) == 0 {
		return nil, NewValidationError("envelope has no document")
	}
	for i, doc := range envelope.Documents {
		if doc.DocumentID == "" {
			return nil, NewValidationError(fmt.Sprintf("document %d has no document id", i))
		}
		if doc.Content == nil {
			return nil, NewValidationError(fmt.Sprintf("document %s has no content", doc.DocumentID))
		}
	}
	return c.createEnvelope(ctx, envelope, envelope.Documents)
}

// CreateEnvelopeFromTemplate creates an envelope from a server-side template and its template roles.
// The created envelope id is stored in envelope.EnvelopeID when it has none.
func (c *Client) CreateEnvelopeFromTemplate(ctx context.Context, envelope *Envelope) (*EnvelopeSummary, error) {
	if envelope == nil {
		return nil, NewValidationError("envelope is required")
	}
	if !envelope.IsTemplate() {
		return nil, NewValidationError("envelope has no template id")
	}
	return c.createEnvelope(ctx, envelope, nil)
}

func (c *Client) createEnvelope(ctx context.Context, envelope *Envelope, documents []Document) (*EnvelopeSummary, error) {
	target, err := c.accountPath(ctx, "envelopes")
	if err != nil {
		return nil, err
	}

	body, contentType, err := buildEnvelopeRequestBody(envelope, documents)
	if err != nil {
		return nil, err
	}

	checksum, err := EnvelopeChecksum(envelope)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("creating envelope",
		slog.String("definition_checksum", checksum),
		slog.Bool("template", envelope.IsTemplate()),
	)

	resp, err := c.send(ctx, request{
		method:      http.MethodPost,
		path:        target,
		body:        bytes.NewReader(body),
		contentType: contentType,
		soboEmail:   envelope.SOBOEmail,
		expected:    http.StatusCreated,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var summary EnvelopeSummary
	if err := decodeResponse(resp, &summary); err != nil {
		return nil, err
	}
	if summary.EnvelopeID == "" {
		return nil, NewDecodeError("DocuSign did not return an envelope id")
	}

	if envelope.EnvelopeID == "" {
		envelope.EnvelopeID = summary.EnvelopeID
	}

	c.logger.Info("envelope created",
		slog.String("envelope_id", summary.EnvelopeID),
		slog.String("definition_checksum", checksum),
		slog.String("status", summary.Status),
		slog.Int("documents", len(documents)),
	)
	return &summary, nil
}

// buildEnvelopeRequestBody returns the multipart body of an envelope creation request and its content type.
//
// The first part is the JSON envelope definition, followed by one part per document:
//
//	Content-Type: application/pdf
//	Content-Disposition: file; filename="contract.pdf"; documentid=1
func buildEnvelopeRequestBody(envelope *Envelope, documents []Document) ([]byte, string, error) {
	definition, err := json.Marshal(envelope)
	if err != nil {
		return nil, "", WrapInternalError(err, "failed to encode envelope definition")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "application/json; charset=UTF-8")
	header.Set("Content-Disposition", "form-data")
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", WrapInternalError(err, "failed to create envelope definition part")
	}
	if _, err := part.Write(definition); err != nil {
		return nil, "", WrapInternalError(err, "failed to write envelope definition part")
	}

	for _, doc := range documents {
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", doc.contentType())
		header.Set("Content-Disposition", fmt.Sprintf(`file; filename="%s"; documentid=%s`,
			quoteEscaper.Replace(doc.Name), doc.DocumentID))

		part, err := mw.CreatePart(header)
		if err != nil {
			return nil, "", WrapInternalError(err, "failed to create document part")
		}
		// a document submitted again (retry, reused envelope) is read from the start
		if seeker, ok := doc.Content.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return nil, "", WrapValidationError(err, fmt.Sprintf("failed to rewind document %s", doc.DocumentID))
			}
		}
		if _, err := io.Copy(part, doc.Content); err != nil {
			return nil, "", WrapValidationError(err, fmt.Sprintf("failed to read document %s", doc.DocumentID))
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", WrapInternalError(err, "failed to close multipart body")
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// GetEnvelope returns the current status of an envelope.
func (c *Client) GetEnvelope(ctx context.Context, envelopeID string) (*EnvelopeInfo, error) {
	if err := requireID("envelope id", envelopeID); err != nil {
		return nil, err
	}
	target, err := c.accountPath(ctx, "envelopes", envelopeID)
	if err != nil {
		return nil, err
	}

	var info EnvelopeInfo
	if err := c.doJSON(ctx, http.MethodGet, target, nil, http.StatusOK, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// VoidEnvelope voids an in-process envelope. DocuSign notifies the recipients with the reason.
func (c *Client) VoidEnvelope(ctx context.Context, envelopeID, reason string) error {
	if err := requireID("envelope id", envelopeID); err != nil {
		return err
	}
	if err := requireID("void reason", reason); err != nil {
		return err
	}
	target, err := c.accountPath(ctx, "envelopes", envelopeID)
	if err != nil {
		return err
	}

	body := struct {
		Status       string `json:"status"`
		VoidedReason string `json:"voidedReason"`
	}{
		Status:       "voided",
		VoidedReason: reason,
	}
	if err := c.doJSON(ctx, http.MethodPut, target, body, http.StatusOK, nil); err != nil {
		return err
	}

	c.logger.Info("envelope voided", slog.String("envelope_id", envelopeID))
	return nil
}

// PostRecipientView returns the URL of the embedded signing ceremony of a recipient.
// The recipient must have been created with a client user id.
func (c *Client) PostRecipientView(ctx context.Context, view RecipientViewRequest) (string, error) {
	if err := requireID("envelope id", view.EnvelopeID); err != nil {
		return "", err
	}
	if view.AuthenticationMethod == "" {
		view.AuthenticationMethod = "none"
	}
	target, err := c.accountPath(ctx, "envelopes", view.EnvelopeID, "views", "recipient")
	if err != nil {
		return "", err
	}

	var result ViewURL
	if err := c.doJSON(ctx, http.MethodPost, target, view, http.StatusCreated, &result); err != nil {
		return "", err
	}
	return result.URL, nil
}

// RecipientViewURL returns the embedded signing URL of signer for an envelope created by this client.
func (c *Client) RecipientViewURL(ctx context.Context, envelope *Envelope, signer Signer, returnURL string) (string, error) {
	if envelope == nil {
		return "", NewValidationError("envelope is required")
	}
	return c.PostRecipientView(ctx, RecipientViewRequest{
		ClientUserID: signer.ClientUserID,
		Email:        signer.Email,
		EnvelopeID:   envelope.EnvelopeID,
		ReturnURL:    returnURL,
		UserID:       signer.UserID,
		UserName:     signer.Name,
	})
}

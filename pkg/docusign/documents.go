package docusign

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// CertificateDocumentID is the pseudo document id of the certificate of completion.
const CertificateDocumentID = "certificate"

// GetEnvelopeDocumentList returns the documents of an envelope.
func (c *Client) GetEnvelopeDocumentList(ctx context.Context, envelopeID string) ([]EnvelopeDocument, error) {
	if err := requireID("envelope id", envelopeID); err != nil {
		return nil, err
	}
	target, err := c.accountPath(ctx, "envelopes", envelopeID, "documents")
	if err != nil {
		return nil, err
	}

	var list EnvelopeDocumentList
	if err := c.doJSON(ctx, http.MethodGet, target, nil, http.StatusOK, &list); err != nil {
		return nil, err
	}
	return list.EnvelopeDocuments, nil
}

// GetEnvelopeDocument downloads one document of an envelope. The caller must close the returned reader.
func (c *Client) GetEnvelopeDocument(ctx context.Context, envelopeID, documentID string) (io.ReadCloser, error) {
	if err := requireID("envelope id", envelopeID); err != nil {
		return nil, err
	}
	if err := requireID("document id", documentID); err != nil {
		return nil, err
	}
	target, err := c.accountPath(ctx, "envelopes", envelopeID, "documents", documentID)
	if err != nil {
		return nil, err
	}
	return c.download(ctx, target)
}

// GetEnvelopeCertificate downloads the certificate of completion of an envelope.
func (c *Client) GetEnvelopeCertificate(ctx context.Context, envelopeID string) (io.ReadCloser, error) {
	return c.GetEnvelopeDocument(ctx, envelopeID, CertificateDocumentID)
}

// GetPageImage downloads the image of a document page. dpi and maxHeight are omitted when 0.
func (c *Client) GetPageImage(ctx context.Context, envelopeID, documentID string, page, dpi, maxHeight int) (io.ReadCloser, error) {
	if err := requireID("envelope id", envelopeID); err != nil {
		return nil, err
	}
	if err := requireID("document id", documentID); err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, NewValidationError("page number must be at least 1")
	}
	target, err := c.accountPath(ctx, "envelopes", envelopeID, "documents", documentID, "pages", strconv.Itoa(page), "page_image")
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if dpi > 0 {
		query.Set("dpi", strconv.Itoa(dpi))
	}
	if maxHeight > 0 {
		query.Set("max_height", strconv.Itoa(maxHeight))
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.download(ctx, target)
}

func (c *Client) download(ctx context.Context, target string) (io.ReadCloser, error) {
	resp, err := c.send(ctx, request{
		method:   http.MethodGet,
		path:     target,
		expected: http.StatusOK,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

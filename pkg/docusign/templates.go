package docusign

import (
	"context"
	"net/http"
)

// GetTemplate returns the definition of a template, including its documents and recipient roles.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*EnvelopeTemplate, error) {
	if err := requireID("template id", templateID); err != nil {
		return nil, err
	}
	target, err := c.accountPath(ctx, "templates", templateID)
	if err != nil {
		return nil, err
	}

	var template EnvelopeTemplate
	if err := c.doJSON(ctx, http.MethodGet, target, nil, http.StatusOK, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// ListTemplates returns the templates of the account.
func (c *Client) ListTemplates(ctx context.Context) ([]TemplateDefinition, error) {
	target, err := c.accountPath(ctx, "templates")
	if err != nil {
		return nil, err
	}

	var list TemplateList
	if err := c.doJSON(ctx, http.MethodGet, target, nil, http.StatusOK, &list); err != nil {
		return nil, err
	}
	return list.EnvelopeTemplates, nil
}

package docusign

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// LoginInformation returns the accounts of the authenticated user.
//
// The first account becomes the client account: subsequent account-scoped calls use it.
func (c *Client) LoginInformation(ctx context.Context) (*LoginInformation, error) {
	var info LoginInformation
	if err := c.doJSON(ctx, http.MethodGet, "/login_information", nil, http.StatusOK, &info); err != nil {
		return nil, err
	}
	if len(info.LoginAccounts) == 0 {
		return nil, NewDecodeError("login information contains no account")
	}

	accountID := info.LoginAccounts[0].AccountID
	c.setAccount(accountID)
	c.logger.Debug("DocuSign account discovered",
		slog.String("account_id", accountID),
	)
	return &info, nil
}

// GetAccountInformation returns the account identified by accountID, or the client account when accountID is empty.
func (c *Client) GetAccountInformation(ctx context.Context, accountID string) (*AccountInformation, error) {
	var target string
	if accountID == "" {
		path, err := c.accountPath(ctx)
		if err != nil {
			return nil, err
		}
		target = path
	} else {
		target = "/accounts/" + url.PathEscape(accountID)
	}

	var info AccountInformation
	if err := c.doJSON(ctx, http.MethodGet, target, nil, http.StatusOK, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetAccountProvisioning returns the provisioning information (distributor code, plan) linked to the
// configured AppToken. It is required to create accounts.
func (c *Client) GetAccountProvisioning(ctx context.Context) (*AccountProvisioning, error) {
	if c.cfg.AppToken == "" {
		return nil, NewValidationError("an app token is required to get account provisioning information")
	}

	headers := http.Header{}
	headers.Set("X-DocuSign-AppToken", c.cfg.AppToken)

	resp, err := c.send(ctx, request{
		method:   http.MethodGet,
		path:     "/accounts/provisioning",
		headers:  headers,
		expected: http.StatusOK,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var provisioning AccountProvisioning
	if err := decodeResponse(resp, &provisioning); err != nil {
		return nil, err
	}
	return &provisioning, nil
}

// CreateAccount creates a new (subsidiary) account.
func (c *Client) CreateAccount(ctx context.Context, account NewAccount) (*NewAccountSummary, error) {
	if err := requireID("account name", account.AccountName); err != nil {
		return nil, err
	}

	var summary NewAccountSummary
	if err := c.doJSON(ctx, http.MethodPost, "/accounts", account, http.StatusCreated, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// DeleteAccount closes the account identified by accountID.
// It reports whether DocuSign acknowledged the deletion with an empty response body.
func (c *Client) DeleteAccount(ctx context.Context, accountID string) (bool, error) {
	if err := requireID("account id", accountID); err != nil {
		return false, err
	}

	var body string
	if err := c.doJSON(ctx, http.MethodDelete, "/accounts/"+url.PathEscape(accountID), nil, http.StatusOK, &body); err != nil {
		return false, err
	}
	return strings.TrimSpace(body) == "", nil
}

package docusign

// oauth.go implements the token endpoints of DocuSign.
//
// The legacy REST v2 endpoints ({root}/oauth2/token and {root}/oauth2/revoke) exchange the
// username/password/integrator key credentials for a bearer token (password grant).
// The JWT grant lives in jwtgrant.go.

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// OAuth2TokenRequest exchanges the configured credentials for an OAuth2 bearer token.
//
// The token is not installed in the client, use SetOAuth2Token to authenticate the next calls with it.
func (c *Client) OAuth2TokenRequest(ctx context.Context) (*OAuth2Token, error) {
	if c.cfg.Username == "" || c.cfg.Password == "" || c.cfg.IntegratorKey == "" {
		return nil, NewValidationError("username, password and integrator key are required to request an OAuth2 token")
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.cfg.IntegratorKey)
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)
	form.Set("scope", "api")

	var token OAuth2Token
	if err := c.postForm(ctx, c.cfg.RootURL+"/oauth2/token", form, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, NewDecodeError("DocuSign did not return an access token")
	}

	c.logger.Info("OAuth2 token issued",
		slog.String("token_type", token.TokenType),
		slog.String("scope", token.Scope),
	)
	return &token, nil
}

// OAuth2TokenRevoke revokes a token issued by OAuth2TokenRequest.
func (c *Client) OAuth2TokenRevoke(ctx context.Context, token string) error {
	if err := requireID("token", token); err != nil {
		return err
	}

	form := url.Values{}
	form.Set("token", token)

	if err := c.postForm(ctx, c.cfg.RootURL+"/oauth2/revoke", form, nil); err != nil {
		return err
	}
	c.logger.Info("OAuth2 token revoked")
	return nil
}

// postForm posts a form to a token endpoint. Error responses are returned as *OAuth2Error
// when DocuSign includes an OAuth2 error payload, *Error otherwise.
func (c *Client) postForm(ctx context.Context, target string, form url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return WrapTransportError(err, http.MethodPost, target)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return WrapInternalError(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		dsErr := WrapTransportError(err, http.MethodPost, target)
		c.logger.Error(dsErr.Error())
		return dsErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return WrapDecodeError(err, "failed to read token response")
	}

	if resp.StatusCode != http.StatusOK {
		var oauthErr OAuth2Error
		if json.Unmarshal(body, &oauthErr) == nil && oauthErr.ErrorType != "" {
			oauthErr.StatusCode = resp.StatusCode
			c.logger.Error(oauthErr.Error(), slog.Int("status", resp.StatusCode))
			return &oauthErr
		}
		dsErr := newUnexpectedStatusError(http.MethodPost, target, resp.StatusCode, http.StatusOK, body)
		c.logger.Error(dsErr.Error())
		return dsErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return WrapDecodeError(err, "failed to decode token response")
	}
	return nil
}

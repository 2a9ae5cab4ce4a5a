package docusign

// jwtgrant.go implements the OAuth2 JWT bearer grant used by service integrations.
//
// The integration signs a short-lived JWT with the RSA key registered for the integrator key and
// exchanges it at the account server for an access token impersonating UserID.
// Consent must have been granted to the integration by the user (or an administrator) beforehand.

import (
	"bytes"
	"context"
	"crypto/rsa"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

const (
	DemoAuthServer       = "account-d.docusign.com"
	ProductionAuthServer = "account.docusign.com"

	jwtBearerGrantType      = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	defaultJWTGrantLifetime = time.Hour
)

// DefaultJWTGrantScopes are the scopes requested when JWTGrant.Scopes is empty.
var DefaultJWTGrantScopes = []string{"signature", "impersonation"}

// JWTGrant holds the settings of a JWT grant token request.
type JWTGrant struct {
	// AuthServer is the account server host (DemoAuthServer or ProductionAuthServer).
	// A full URL (scheme included) is accepted as well.
	AuthServer string

	IntegratorKey string

	// UserID is the GUID of the impersonated user
	UserID string

	PrivateKey *rsa.PrivateKey
	Scopes     []string
	Lifetime   time.Duration
}

// tokenEndpoint returns the URL of the token endpoint and the audience of the assertion.
func (g JWTGrant) tokenEndpoint() (string, string, error) {
	server := g.AuthServer
	if server == "" {
		server = DemoAuthServer
	}
	if !strings.Contains(server, "://") {
		server = "https://" + server
	}
	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", "", NewValidationError(fmt.Sprintf("invalid auth server %q", g.AuthServer))
	}
	return strings.TrimRight(server, "/") + "/oauth/token", u.Host, nil
}

// Assertion returns the signed (RS256) JWT sent to the token endpoint.
func (g JWTGrant) Assertion(now time.Time) ([]byte, error) {
	if g.IntegratorKey == "" || g.UserID == "" {
		return nil, NewValidationError("integrator key and user id are required for the JWT grant")
	}
	if g.PrivateKey == nil {
		return nil, NewValidationError("a private key is required for the JWT grant")
	}
	_, audience, err := g.tokenEndpoint()
	if err != nil {
		return nil, err
	}

	scopes := g.Scopes
	if len(scopes) == 0 {
		scopes = DefaultJWTGrantScopes
	}
	lifetime := g.Lifetime
	if lifetime <= 0 {
		lifetime = defaultJWTGrantLifetime
	}

	token, err := jwt.NewBuilder().
		Issuer(g.IntegratorKey).
		Subject(g.UserID).
		Audience([]string{audience}).
		IssuedAt(now).
		Expiration(now.Add(lifetime)).
		Claim("scope", strings.Join(scopes, " ")).
		Build()
	if err != nil {
		return nil, WrapInternalError(err, "failed to build JWT assertion")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256(), g.PrivateKey))
	if err != nil {
		return nil, WrapValidationError(err, "failed to sign JWT assertion")
	}
	return signed, nil
}

// RequestJWTGrantToken exchanges a signed assertion for an access token.
//
// The token is not installed in the client, use SetOAuth2Token to authenticate the next calls with it.
func (c *Client) RequestJWTGrantToken(ctx context.Context, grant JWTGrant) (*OAuth2Token, error) {
	endpoint, _, err := grant.tokenEndpoint()
	if err != nil {
		return nil, err
	}
	assertion, err := grant.Assertion(time.Now())
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("grant_type", jwtBearerGrantType)
	form.Set("assertion", string(assertion))

	var token OAuth2Token
	if err := c.postForm(ctx, endpoint, form, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, NewDecodeError("DocuSign did not return an access token")
	}
	return &token, nil
}

// ParseRSAPrivateKey parses an RSA private key in PEM (PKCS#1 or PKCS#8) or JWK format.
// DocuSign provides PKCS#1 PEM keys when an RSA key pair is generated for an integration.
func ParseRSAPrivateKey(data []byte) (*rsa.PrivateKey, error) {
	data = bytes.TrimSpace(data)
	isPEM := bytes.HasPrefix(data, []byte("-----BEGIN"))

	set, err := jwk.Parse(data, jwk.WithPEM(isPEM))
	if err != nil {
		return nil, WrapValidationError(err, "failed to parse private key")
	}
	if set.Len() == 0 {
		return nil, NewValidationError("no key found")
	}
	key, ok := set.Key(0)
	if !ok {
		return nil, NewValidationError("failed to get key from key set")
	}

	var raw any
	if err := jwk.Export(key, &raw); err != nil {
		return nil, WrapValidationError(err, "failed to export key")
	}
	privateKey, ok := raw.(*rsa.PrivateKey)
	if !ok {
		return nil, NewValidationError(fmt.Sprintf("key is not an RSA private key (%T)", raw))
	}
	return privateKey, nil
}

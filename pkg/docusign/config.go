package docusign

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Netflix/go-env"
)

// DefaultRootURL is the root URL of the DocuSign demo (sandbox) environment.
const DefaultRootURL = "https://demo.docusign.net/restapi/v2"

// Config holds the settings of a Client.
//
// The fields can be loaded from DOCUSIGN_* environment variables with ConfigFromEnviron.
// When both Username/Password and OAuth2Token are set, the OAuth2 token is used to authenticate.
type Config struct {
	RootURL       string `env:"DOCUSIGN_ROOT_URL,default=https://demo.docusign.net/restapi/v2"`
	Username      string `env:"DOCUSIGN_USERNAME"`
	Password      string `env:"DOCUSIGN_PASSWORD"`
	IntegratorKey string `env:"DOCUSIGN_INTEGRATOR_KEY"`
	AccountID     string `env:"DOCUSIGN_ACCOUNT_ID"`
	AppToken      string `env:"DOCUSIGN_APP_TOKEN"`
	OAuth2Token   string `env:"DOCUSIGN_OAUTH2_TOKEN"`

	// AccountURL defaults to {RootURL}/accounts/{AccountID} when AccountID is known
	AccountURL string `env:"DOCUSIGN_ACCOUNT_URL"`

	Timeout time.Duration `env:"DOCUSIGN_TIMEOUT,default=30s"`

	// client side rate limiting - 0 disables the limiter
	RateLimitRPS   int32 `env:"DOCUSIGN_RATE_LIMIT_RPS,default=0"`
	RateLimitBurst int32 `env:"DOCUSIGN_RATE_LIMIT_BURST,default=1"`
}

// ConfigFromEnviron loads the client configuration from the DOCUSIGN_* environment variables.
func ConfigFromEnviron() (Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, WrapValidationError(err, "failed to unmarshal DocuSign environment variables")
	}
	return cfg, nil
}

// WithOverrides returns a copy of c where every non-zero field of o replaces the value of c.
// Use this to give explicit settings (flags, arguments) priority over environment variables.
func (c Config) WithOverrides(o Config) Config {
	merged := c
	override := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	override(&merged.RootURL, o.RootURL)
	override(&merged.Username, o.Username)
	override(&merged.Password, o.Password)
	override(&merged.IntegratorKey, o.IntegratorKey)
	override(&merged.AccountID, o.AccountID)
	override(&merged.AppToken, o.AppToken)
	override(&merged.OAuth2Token, o.OAuth2Token)
	override(&merged.AccountURL, o.AccountURL)
	if o.Timeout != 0 {
		merged.Timeout = o.Timeout
	}
	if o.RateLimitRPS != 0 {
		merged.RateLimitRPS = o.RateLimitRPS
	}
	if o.RateLimitBurst != 0 {
		merged.RateLimitBurst = o.RateLimitBurst
	}
	return merged
}

// accountURL returns the configured account URL, derived from the root URL and account id when not set.
func (c Config) accountURL() string {
	if c.AccountURL != "" {
		return c.AccountURL
	}
	if c.RootURL != "" && c.AccountID != "" {
		return buildAccountURL(c.RootURL, c.AccountID)
	}
	return ""
}

func buildAccountURL(rootURL, accountID string) string {
	return fmt.Sprintf("%s/accounts/%s", rootURL, url.PathEscape(accountID))
}

func (c Config) validate() error {
	if c.RootURL == "" {
		return NewValidationError("root URL is required")
	}
	u, err := url.Parse(c.RootURL)
	if err != nil {
		return WrapValidationError(err, "invalid root URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewValidationError(fmt.Sprintf("root URL must use http or https, got %q", c.RootURL))
	}
	if u.Host == "" {
		return NewValidationError(fmt.Sprintf("root URL has no host: %q", c.RootURL))
	}
	if c.Timeout <= 0 {
		return NewValidationError("timeout must be greater than 0")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return NewValidationError("rate limit settings must not be negative")
	}
	return nil
}

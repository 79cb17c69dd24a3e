// Package calm is a client for the CALM licensing and configuration service.
package calm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/avplayer-sdk/internal/version"
)

const (
	// DefaultBaseURL is the CALM service host
	DefaultBaseURL = "https://cfd.staging.calm-nonprod.sportradar.dev"

	// DefaultTimeout for HTTP requests
	DefaultTimeout = 30 * time.Second

	// maxBodySize caps how much of a response is read
	maxBodySize = 1 << 20
)

// App identifier query parameter names per platform.
const (
	ParamPackageName = "packageName"
	ParamBundleID    = "bundleId"
)

// Client validates client licenses against CALM.
type Client struct {
	baseURL    string
	userAgent  string
	appIDParam string
	httpClient *http.Client
}

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithAppIdentifierParam sets the query parameter carrying the app identifier.
func WithAppIdentifierParam(name string) Option {
	return func(c *Client) {
		c.appIDParam = name
	}
}

// NewClient creates a new CALM client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  version.GetInfo().UserAgent(),
		appIDParam: ParamBundleID,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ClientConfig is one configuration record returned by CALM.
type ClientConfig struct {
	ConfigID              int    `json:"configId"`
	ConfigValue           string `json:"configValue"`
	CreatedAt             string `json:"createdAt"`
	ID                    int    `json:"id"`
	OrganizationVersionID int    `json:"organizationVersionId"`
	UpdatedAt             string `json:"updatedAt"`
	Valid                 bool   `json:"valid"`
}

// ValidationResponse is the body of a successful validation call.
type ValidationResponse struct {
	Configs []ClientConfig `json:"configs"`
}

// Valid reports the first config's validity. No configs means invalid.
func (r *ValidationResponse) Valid() bool {
	if r == nil || len(r.Configs) == 0 {
		return false
	}
	return r.Configs[0].Valid
}

// HTTPError is the error shape CALM returns. The zero value stands for a
// failure with no usable response.
type HTTPError struct {
	Status    int    `json:"status,omitempty"`
	ErrorText string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (e *HTTPError) Error() string {
	if e.Status == 0 && e.ErrorText == "" && e.Message == "" {
		return "calm: request failed"
	}
	msg := e.Message
	if msg == "" {
		msg = e.ErrorText
	}
	return fmt.Sprintf("calm: %d: %s", e.Status, msg)
}

// IsGeneric reports whether the error carries no server detail.
func (e *HTTPError) IsGeneric() bool {
	return *e == HTTPError{}
}

// ValidateClient calls the license validation endpoint. Every failure is
// returned as *HTTPError: a decoded server error when the body allows it,
// the generic HTTPError otherwise.
func (c *Client) ValidateClient(ctx context.Context, clientID int, appIdentifier, appKey string) (*ValidationResponse, error) {
	endpoint := fmt.Sprintf("%s/api/v1/consumer/%s/licensing-and-configuration/validate",
		c.baseURL, url.PathEscape(strconv.Itoa(clientID)))
	query := url.Values{}
	query.Set(c.appIDParam, appIdentifier)
	query.Set("appkey", appKey)
	reqURL := endpoint + "?" + query.Encode()

	log.Debug().
		Int("clientId", clientID).
		Str("url", endpoint).
		Str("method", http.MethodGet).
		Msg("CALM request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Error().Err(err).Msg("CALM request could not be built")
		return nil, &HTTPError{}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Int("clientId", clientID).Msg("CALM request completed with exception")
		return nil, &HTTPError{}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Error().Err(err).Msg("CALM response could not be read")
		return nil, &HTTPError{}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result, err := decodeValidation(body)
		if err == nil {
			return result, nil
		}
		log.Warn().Err(err).Msg("CALM response parsing failed")
	}

	return nil, resolveError(resp.StatusCode, body)
}

var errMissingConfigs = errors.New("missing configs")

func decodeValidation(body []byte) (*ValidationResponse, error) {
	var result ValidationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if result.Configs == nil {
		return nil, errMissingConfigs
	}
	return &result, nil
}

// resolveError decodes the body as an HTTPError. Bodies that are not a JSON
// object yield the generic error.
func resolveError(status int, body []byte) *HTTPError {
	var herr HTTPError
	if err := json.Unmarshal(body, &herr); err != nil {
		log.Info().Int("status", status).Err(err).Msg("Unable to parse response body as HTTPError")
		return &HTTPError{}
	}
	return &herr
}

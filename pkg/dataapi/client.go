package dataapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"go.mongodb.org/mongo-driver/bson"
)

// APIVersion selects the Data API version segment of the endpoint URL.
type APIVersion string

// V1 is the only version the Data API currently serves.
const V1 APIVersion = "v1"

// Config holds the static configuration for a Client.
type Config struct {
	// AppID is the Atlas App Services application ID, inserted into the
	// endpoint URL.
	AppID string

	// APIKey authenticates every request via the apiKey header. It must be a
	// valid HTTP header value (printable ASCII); NewClient rejects anything
	// else.
	APIKey string

	// APIVersion defaults to V1.
	APIVersion APIVersion

	// DeploymentRegion is empty for globally deployed apps, or
	// "<Region>.<Cloud>" (e.g. "us-east-1.aws") for local deployments; when
	// set it is prefixed onto the endpoint hostname.
	DeploymentRegion string

	// Logger receives debug-level request traces. Optional; defaults to a
	// null logger, so the client is silent unless one is injected.
	Logger hclog.Logger
}

// Client issues Data API actions. Its configuration is immutable after
// NewClient, so a single Client may be shared across goroutines; per-call
// state lives entirely in the request and response values.
type Client struct {
	appID      string
	apiKey     string
	apiVersion APIVersion
	region     string
	logger     hclog.Logger
}

// NewClient creates a Client from cfg. Beyond the API key header check no
// validation happens here; a malformed app ID only surfaces as an HTTP
// failure on the first call.
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" {
		return nil, fmt.Errorf("app ID is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if !validHeaderValue(cfg.APIKey) {
		return nil, fmt.Errorf("API key contains characters not allowed in an HTTP header value")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = V1
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &Client{
		appID:      cfg.AppID,
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		region:     cfg.DeploymentRegion,
		logger:     cfg.Logger.Named("dataapi"),
	}, nil
}

// BaseURL returns the endpoint URL shared by all actions:
// https://{region.}data.mongodb-api.com/app/{appID}/endpoint/data/{version}.
func (c *Client) BaseURL() string {
	region := ""
	if c.region != "" {
		region = c.region + "."
	}
	return fmt.Sprintf("https://%sdata.mongodb-api.com/app/%s/endpoint/data/%s",
		region, c.appID, c.apiVersion)
}

func (c *Client) actionURL(action string) string {
	return c.BaseURL() + "/action/" + action
}

// do runs one action round trip: marshal reqBody to extended JSON, POST it,
// map a non-2xx status to a remote error, and decode the body into out.
func (c *Client) do(ctx context.Context, httpClient *http.Client, action string, reqBody, out interface{}) error {
	body, err := bson.MarshalExtJSON(reqBody, false, false)
	if err != nil {
		return &Error{Kind: ErrorKindFormat, Message: fmt.Sprintf("format error: %v", err), Err: err}
	}

	url := c.actionURL(action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: ErrorKindFormat, Message: fmt.Sprintf("format error: %v", err), Err: err}
	}
	req.Header.Set("apiKey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("sending data api request", "action", action, "url", url)

	resp, err := httpClient.Do(req)
	if err != nil {
		return &Error{Kind: ErrorKindTransport, Message: fmt.Sprintf("failed to send request: %v", err), Err: err}
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Body text is best effort; an unreadable body leaves it empty.
		text := ""
		if readErr == nil {
			text = string(respBody)
		}
		return &Error{
			Kind:       ErrorKindRemote,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("remote returned status %d; content: %s", resp.StatusCode, text),
		}
	}
	if readErr != nil {
		return &Error{Kind: ErrorKindTransport, Message: fmt.Sprintf("failed to read response: %v", readErr), Err: readErr}
	}

	if err := bson.UnmarshalExtJSON(respBody, false, out); err != nil {
		return &Error{Kind: ErrorKindDecode, Message: fmt.Sprintf("failed to decode response: %v", err), Err: err}
	}

	return nil
}

// validHeaderValue reports whether s can be sent as an HTTP header value
// (RFC 7230 field-content: tab or printable bytes).
func validHeaderValue(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b != '\t' && (b < 0x20 || b == 0x7f) {
			return false
		}
	}
	return true
}

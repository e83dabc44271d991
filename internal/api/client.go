package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUploadBase is the hosted upload API endpoint.
const DefaultUploadBase = "https://upload.imagekit.io"

// Params configures a Client. All values are read once at startup and are
// immutable for the lifetime of the client.
type Params struct {
	// APIBase is the backend that issues short-lived auth grants.
	APIBase string
	// UploadBase is the upload API host. Defaults to DefaultUploadBase.
	UploadBase string
	// PublicKey identifies the account to the upload API.
	PublicKey string
	// URLEndpoint is the delivery (CDN) base used to build preview URLs.
	URLEndpoint string
}

// Client talks to the auth backend and the hosted upload API.
type Client struct {
	restClient *resty.Client
	httpClient *http.Client
	params     Params
}

// NewClient creates a new API client.
func NewClient(p Params) *Client {
	if p.UploadBase == "" {
		p.UploadBase = DefaultUploadBase
	}
	rc := resty.New().
		SetBaseURL(p.APIBase).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	return &Client{
		restClient: rc,
		httpClient: &http.Client{},
		params:     p,
	}
}

// PublicKey returns the configured account public key.
func (c *Client) PublicKey() string {
	return c.params.PublicKey
}

// DeliveryURL builds the CDN URL for a remote path.
func (c *Client) DeliveryURL(remotePath string) string {
	if remotePath == "" {
		return ""
	}
	base := strings.TrimSuffix(c.params.URLEndpoint, "/")
	if !strings.HasPrefix(remotePath, "/") {
		remotePath = "/" + remotePath
	}
	return base + remotePath
}

// AuthenticationError is returned when the auth grant fetch fails, either
// with a non-success HTTP status (Message carries the response body) or a
// transport failure (StatusCode is zero, Message carries the cause).
type AuthenticationError struct {
	StatusCode int
	Message    string
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// UploadError is returned when the hosted upload API rejects or fails a
// transfer, or when a success payload is missing the remote path.
type UploadError struct {
	StatusCode int
	Message    string
}

func (e *UploadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upload failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upload failed: %s", e.Message)
}

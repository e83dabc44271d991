package api

import (
	"context"
)

// AuthGrant is the short-lived signed credential authorizing exactly one
// client-side upload. It is fetched (or self-signed) once per attempt and
// never persisted.
type AuthGrant struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// GetAuthGrant requests a fresh auth grant from the backend. The endpoint
// takes no upload-specific parameters; each grant is valid for one transfer.
func (c *Client) GetAuthGrant(ctx context.Context) (*AuthGrant, error) {
	var result AuthGrant
	r, err := c.restClient.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/auth/imagekit")

	if err != nil {
		return nil, &AuthenticationError{Message: err.Error()}
	}

	if r.IsError() {
		return nil, &AuthenticationError{
			StatusCode: r.StatusCode(),
			Message:    r.String(),
		}
	}

	if result.Token == "" || result.Signature == "" {
		return nil, &AuthenticationError{
			StatusCode: r.StatusCode(),
			Message:    "malformed auth response: " + r.String(),
		}
	}

	return &result, nil
}

// GrantSource produces one auth grant per upload attempt. The backend
// endpoint is the usual source; a local signer can stand in when the
// account's private key is available.
type GrantSource interface {
	GetAuthGrant(ctx context.Context) (*AuthGrant, error)
}

// ABOUTME: Token operation for exchanging credentials for access/refresh tokens
// ABOUTME: Maps credential rejection to *AuthError

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token exchanges credentials for a token pair. Rejected credentials
// yield *AuthError; transport and decoding failures pass through as-is.
func (c *Client) Token(ctx context.Context, username, password string) (*TokenPair, error) {
	payload, err := json.Marshal(tokenRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encoding credentials: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/token/", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var pair TokenPair
	if err := c.do(req, &pair); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusBadRequest) {
			return nil, &AuthError{StatusCode: apiErr.StatusCode, Detail: apiErr.Detail}
		}
		return nil, err
	}

	if pair.Access == "" {
		return nil, fmt.Errorf("token endpoint returned no access token")
	}
	return &pair, nil
}

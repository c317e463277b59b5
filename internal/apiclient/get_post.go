// ABOUTME: GetPost operation for fetching a single post by identifier
// ABOUTME: Maps upstream 404 to the ErrPostNotFound sentinel

package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// GetPost fetches one post by its server-assigned identifier.
// A missing identifier yields ErrPostNotFound.
func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/%d/", id), nil)
	if err != nil {
		return nil, err
	}

	var post Post
	if err := c.do(req, &post); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

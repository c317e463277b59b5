// ABOUTME: ListPosts operation for fetching the full post collection
// ABOUTME: Public endpoint, no bearer token attached

package apiclient

import (
	"context"
	"net/http"
)

// ListPosts fetches every post. The result replaces any previously
// fetched collection wholesale; callers never merge.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/", nil)
	if err != nil {
		return nil, err
	}

	var posts []Post
	if err := c.do(req, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ABOUTME: CreatePost operation for submitting a new post
// ABOUTME: Multipart form upload with bearer authentication

package apiclient

import (
	"context"
	"net/http"
)

// CreatePost submits a new post. The server assigns the identifier and
// creation timestamp and returns the stored post.
func (c *Client) CreatePost(ctx context.Context, fields PostFields) (*Post, error) {
	body, contentType, err := encodePostForm(fields)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/create/", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(req)

	var post Post
	if err := c.do(req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ABOUTME: UpdatePost operation for resubmitting a post's full field set
// ABOUTME: Image part omitted unless a replacement was chosen

package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// UpdatePost resubmits title and content for the post with the given
// identifier. The image is resent only when fields.Image is non-nil;
// otherwise the server keeps its stored image.
func (c *Client) UpdatePost(ctx context.Context, id int, fields PostFields) (*Post, error) {
	body, contentType, err := encodePostForm(fields)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/api/update/%d/", id), body)
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

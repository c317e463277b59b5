// ABOUTME: DeletePost operation for removing a post by identifier
// ABOUTME: Bearer-authenticated request with no body

package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// DeletePost removes the post with the given identifier.
func (c *Client) DeletePost(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/delete/%d/", id), nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	return c.do(req, nil)
}

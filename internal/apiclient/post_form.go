// ABOUTME: Multipart form encoding shared by CreatePost and UpdatePost
// ABOUTME: Omits the image part entirely when no replacement was chosen

package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// ImageUpload is an optional image riding along with a post submission.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// PostFields are the client-settable fields of a post. A nil Image
// means "keep whatever the server has" — the field is left out of the
// form so an update cannot accidentally clear a stored image.
type PostFields struct {
	Title   string
	Content string
	Image   *ImageUpload
}

// encodePostForm writes fields as multipart form data and returns the
// body and its content type.
func encodePostForm(fields PostFields) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("title", fields.Title); err != nil {
		return nil, "", fmt.Errorf("encoding title: %w", err)
	}
	if err := w.WriteField("content", fields.Content); err != nil {
		return nil, "", fmt.Errorf("encoding content: %w", err)
	}

	if fields.Image != nil {
		part, err := w.CreateFormFile("image", fields.Image.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("creating image part: %w", err)
		}
		if _, err := io.Copy(part, fields.Image.Reader); err != nil {
			return nil, "", fmt.Errorf("copying image data: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

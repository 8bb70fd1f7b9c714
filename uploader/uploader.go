// Package uploader talks to the third-party file host: it multipart-posts a
// binary blob and returns the public URL the host assigns to it.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrUnknownFileType = fmt.Errorf("file type not recognized")
	ErrUploadFailed    = fmt.Errorf("upload failed")
	ErrMissingURL      = fmt.Errorf("upload response contains no url")
)

const userAgent = "Mozilla/5.0 (compatible; bio-link-uploader)"

// Client uploads blobs to a single fixed endpoint. The zero http.Client is
// fine: the host is expected to answer promptly and a hang blocks only the
// requesting task.
type Client struct {
	endpoint string
	httpc    *http.Client
}

func New(endpoint string) *Client {
	return &Client{endpoint: endpoint, httpc: &http.Client{}}
}

// Upload sniffs the blob's content type, posts it as a multipart form and
// returns the url field of the host's JSON response.
func (c *Client) Upload(ctx context.Context, data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if mt.Extension() == "" {
		return "", ErrUnknownFileType
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="file%s"`, mt.Extension()))
	hdr.Set("Content-Type", mt.String())

	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrUploadFailed, resp.StatusCode, msg)
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if payload.URL == "" {
		return "", ErrMissingURL
	}
	return payload.URL, nil
}

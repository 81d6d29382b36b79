// Package blob is the client for the upload proxy. Files go up as
// multipart form data; the proxy answers with a public URL.
package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/config"
)

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Client talks to the upload proxy.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an upload client from configuration.
func NewClient(cfg *config.BlobConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends one file and returns the URL the proxy assigned.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload %s: proxy returned %d", filename, resp.StatusCode)
	}

	var ur uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return "", fmt.Errorf("upload %s: decode response: %w", filename, err)
	}
	if ur.URL == "" {
		return "", fmt.Errorf("upload %s: proxy returned empty url", filename)
	}
	return ur.URL, nil
}

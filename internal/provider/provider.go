// Package provider talks to remote image services.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/colors"
)

// BaseProvider holds the HTTP client shared by providers.
type BaseProvider struct {
	client  *http.Client
	baseURL string
}

// NewBaseProvider creates a provider rooted at baseURL with a 30 second timeout.
func NewBaseProvider(baseURL string) *BaseProvider {
	return &BaseProvider{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (p *BaseProvider) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.Network, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Network, fmt.Errorf("failed to fetch %s: %w", url, err))
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, apperr.New(apperr.Network, "%s returned status: %d", url, resp.StatusCode)
	}

	return resp, nil
}

// getJSON decodes the body of a GET request into v.
func (p *BaseProvider) getJSON(ctx context.Context, url string, v any) error {
	resp, err := p.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.Parse, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// Download fetches url and decodes it as a JPEG, PNG, or WebP image.
func (p *BaseProvider) Download(ctx context.Context, url string) (image.Image, error) {
	resp, err := p.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.Network, fmt.Errorf("failed to read image: %w", err))
	}

	img, err := colors.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.ImageGeneration, err)
	}
	return img, nil
}

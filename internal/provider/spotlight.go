package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/darkawower/astra/internal/apperr"
)

// SpotlightURL is the Windows Spotlight selection service.
const SpotlightURL = "https://fd.api.iris.microsoft.com"

const spotlightPlacement = "88000820"

// Query selects Spotlight images.
type Query struct {
	Count   int
	Country string
	Locale  string
}

// DefaultQuery asks for a single US English image.
func DefaultQuery() Query {
	return Query{Count: 1, Country: "US", Locale: "en-US"}
}

// Spotlight fetches the Windows Spotlight image of the day.
type Spotlight struct {
	*BaseProvider
}

// NewSpotlight creates a client for the public service.
func NewSpotlight() *Spotlight {
	return NewSpotlightAt(SpotlightURL)
}

// NewSpotlightAt creates a client for a service rooted at baseURL.
func NewSpotlightAt(baseURL string) *Spotlight {
	return &Spotlight{BaseProvider: NewBaseProvider(baseURL)}
}

func (p *Spotlight) Name() string {
	return "spotlight"
}

// SelectionURL builds the selection request for q.
func (p *Spotlight) SelectionURL(q Query) string {
	return fmt.Sprintf("%s/v4/api/selection?&placement=%s&fmt=json&bcnt=%d&country=%s&locale=%s",
		p.baseURL, spotlightPlacement, q.Count, url.QueryEscape(q.Country), url.QueryEscape(q.Locale))
}

type selectionResponse struct {
	BatchRsp struct {
		Items []struct {
			Item string `json:"item"`
		} `json:"items"`
	} `json:"batchrsp"`
}

type selectionItem struct {
	Ad struct {
		LandscapeImage struct {
			Asset string `json:"asset"`
		} `json:"landscapeImage"`
	} `json:"ad"`
}

// URLs returns the landscape asset URL of every selected item, in response
// order. Each item carries its payload as a JSON document encoded in a string.
func (p *Spotlight) URLs(ctx context.Context, q Query) ([]string, error) {
	var resp selectionResponse
	if err := p.getJSON(ctx, p.SelectionURL(q), &resp); err != nil {
		return nil, err
	}

	if len(resp.BatchRsp.Items) == 0 {
		return nil, apperr.New(apperr.ImageGeneration, "No download URLs found in response")
	}

	urls := make([]string, 0, len(resp.BatchRsp.Items))
	for i, it := range resp.BatchRsp.Items {
		var item selectionItem
		if err := json.Unmarshal([]byte(it.Item), &item); err != nil {
			return nil, apperr.Wrap(apperr.Parse, fmt.Errorf("failed to decode item %d: %w", i, err))
		}
		if item.Ad.LandscapeImage.Asset == "" {
			return nil, apperr.New(apperr.Parse, "item %d has no landscape image", i)
		}
		urls = append(urls, item.Ad.LandscapeImage.Asset)
	}

	return urls, nil
}

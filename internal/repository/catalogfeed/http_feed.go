package catalogfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"elaraMarket/business/catalog"
)

// HTTPFeed pulls the catalog from a remote feed endpoint.
type HTTPFeed struct {
	feedURL string
	client  *http.Client
}

func NewHTTPFeed(feedURL string) *HTTPFeed {
	return &HTTPFeed{
		feedURL: feedURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *HTTPFeed) Fetch(ctx context.Context) (catalog.FeedData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, nil)
	if err != nil {
		return catalog.FeedData{}, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return catalog.FeedData{}, fmt.Errorf("fetch catalog feed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return catalog.FeedData{}, fmt.Errorf("catalog feed returned %v", res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return catalog.FeedData{}, fmt.Errorf("read feed response: %w", err)
	}

	return decodeFeed(raw)
}

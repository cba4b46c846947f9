package catalogfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"elaraMarket/business/catalog"
	"elaraMarket/domain"
)

// FileFeed reads the catalog from a JSON file on disk. The file is either a
// {"products": [...], "categories": [...]} object or a bare product array.
type FileFeed struct {
	path string
}

func NewFileFeed(path string) *FileFeed {
	return &FileFeed{path: path}
}

func (f *FileFeed) Fetch(ctx context.Context) (catalog.FeedData, error) {
	if err := ctx.Err(); err != nil {
		return catalog.FeedData{}, fmt.Errorf("context error: %w", err)
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return catalog.FeedData{}, fmt.Errorf("read catalog file %s: %w", f.path, err)
	}

	return decodeFeed(raw)
}

func decodeFeed(raw []byte) (catalog.FeedData, error) {
	var data catalog.FeedData
	if err := json.Unmarshal(raw, &data); err == nil && len(data.Products) > 0 {
		return data, nil
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return catalog.FeedData{}, fmt.Errorf("decode catalog payload: %w", err)
	}

	return catalog.FeedData{Products: products}, nil
}

package catalog

import (
	"context"

	"elaraMarket/domain"
)

// Feed is the external catalog source (file or remote API). Fetch returns the
// raw records as decoded; validation and derived-field computation happen in
// the snapshot builder so a bad record never poisons the index.
type Feed interface {
	Fetch(ctx context.Context) (FeedData, error)
}

type FeedData struct {
	Products   []domain.Product  `json:"products"`
	Categories []domain.Category `json:"categories"`
}

// Diagnostics describes the outcome of the last load or reload.
type Diagnostics struct {
	Loaded      int            `json:"loaded"`
	Skipped     int            `json:"skipped"`
	SkipReasons map[string]int `json:"skip_reasons,omitempty"`
	Degraded    bool           `json:"degraded"`
}

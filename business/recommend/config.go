package recommend

import "time"

// Strategy names used in the personalized blend order.
const (
	StrategyCollaborative = "collaborative"
	StrategyContent       = "content"
	StrategyPopularity    = "popularity"
)

// Config carries every tunable of the engine. The blend order and the
// per-strategy limits are explicit here instead of magic numbers scattered
// through the strategies.
type Config struct {
	// minimum shared view/purchase products before another user counts as
	// similar
	MinOverlap int

	// how many similar users feed the collaborative candidate pool
	SimilarUserLimit int

	// how far back behavior events are read
	BehaviorWindow time.Duration

	// half-width of the similar-to-product price band, as a fraction of the
	// anchor product's price
	PriceBandPct float64

	// strategies tried in order by the personalized mode until the limit is
	// filled
	BlendOrder []string
}

const (
	defaultMinOverlap       = 2
	defaultSimilarUserLimit = 20
	defaultBehaviorWindow   = 30 * 24 * time.Hour
	defaultPriceBandPct     = 0.30
)

func DefaultConfig() Config {
	return Config{
		MinOverlap:       defaultMinOverlap,
		SimilarUserLimit: defaultSimilarUserLimit,
		BehaviorWindow:   defaultBehaviorWindow,
		PriceBandPct:     defaultPriceBandPct,
		BlendOrder: []string{
			StrategyCollaborative,
			StrategyContent,
			StrategyPopularity,
		},
	}
}

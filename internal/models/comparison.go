package models

// PriceComparison pairs a listing from the base store with its best match
// in the other store. Match is nil when nothing cleared the threshold.
type PriceComparison struct {
	Base       Listing  `json:"base"`
	Match      *Listing `json:"match"`
	Score      float64  `json:"score"`
	PriceDelta float64  `json:"price_delta"` // match price minus base price, 0 when unmatched
	Cheaper    string   `json:"cheaper"`     // store name with the lower price, "" when equal or unmatched
}

// ComparisonSummary is the per-listing comparison of two stores with match counts
type ComparisonSummary struct {
	BaseStore   string            `json:"base_store"`
	OtherStore  string            `json:"other_store"`
	Game        Game              `json:"game"`
	Matched     int               `json:"matched"`
	Unmatched   int               `json:"unmatched"`
	Comparisons []PriceComparison `json:"comparisons"`
}

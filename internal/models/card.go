package models

// Game identifies which card game's matching rules apply
type Game string

const (
	GamePokemon Game = "pokemon"
	GameYugioh  Game = "yugioh"
	GameMagic   Game = "magic"
)

// AllGames returns the supported games in detection priority order
func AllGames() []Game {
	return []Game{GamePokemon, GameYugioh, GameMagic}
}

// Listing is a single scraped storefront product row
type Listing struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Store    string  `json:"store"`
	Category string  `json:"category"`
}

// StoreResults is the raw scraper output: store -> category -> products
type StoreResults map[string]map[string][]Listing

// ListingSearchResult is a flattened listing set with its size
type ListingSearchResult struct {
	Listings   []Listing `json:"listings"`
	TotalCount int       `json:"total_count"`
}

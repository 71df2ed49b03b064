package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/codyseavey/tcg-matcher/internal/metrics"
	"github.com/codyseavey/tcg-matcher/internal/models"
)

// ConsolidationService flattens scraper output and compares prices between
// two stores using the match service.
type ConsolidationService struct {
	matches *MatchService
}

func NewConsolidationService(matches *MatchService) *ConsolidationService {
	return &ConsolidationService{matches: matches}
}

// Consolidate flattens store -> category -> listings into one slice, stamping
// each listing with its store and category. Stores and categories are visited
// in sorted order; listings keep their input order.
func (s *ConsolidationService) Consolidate(game models.Game, results models.StoreResults) []models.Listing {
	stores := make([]string, 0, len(results))
	for store := range results {
		stores = append(stores, store)
	}
	sort.Strings(stores)

	var rows []models.Listing
	for _, store := range stores {
		categories := results[store]
		if len(categories) == 0 {
			continue
		}
		names := make([]string, 0, len(categories))
		for category := range categories {
			names = append(names, category)
		}
		sort.Strings(names)

		for _, category := range names {
			for _, item := range categories[category] {
				item.Store = store
				item.Category = category
				rows = append(rows, item)
			}
		}
	}

	metrics.ConsolidatedListingsTotal.WithLabelValues(string(game)).Add(float64(len(rows)))
	log.Printf("Consolidation: consolidated %d items from %d stores", len(rows), len(stores))
	return rows
}

// Compare matches every baseStore listing against the otherStore listings
// and reports the price difference for each. gameTag may be empty to detect
// the game from the names; a nil threshold uses the match service default.
func (s *ConsolidationService) Compare(ctx context.Context, listings []models.Listing, baseStore, otherStore, gameTag string, threshold *float64) (*models.ComparisonSummary, error) {
	var base, other []models.Listing
	for _, l := range listings {
		switch l.Store {
		case baseStore:
			base = append(base, l)
		case otherStore:
			other = append(other, l)
		}
	}

	queries := make([]string, len(base))
	for i, l := range base {
		queries[i] = l.Name
	}
	candidates := make([]string, len(other))
	byName := make(map[string]models.Listing, len(other))
	for i, l := range other {
		candidates[i] = l.Name
		if _, ok := byName[l.Name]; !ok {
			byName[l.Name] = l
		}
	}

	run, err := s.matches.Run(ctx, MatchRequest{
		Queries:    queries,
		Candidates: candidates,
		Game:       gameTag,
		Threshold:  threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("comparing %s to %s: %w", baseStore, otherStore, err)
	}

	summary := &models.ComparisonSummary{
		BaseStore:   baseStore,
		OtherStore:  otherStore,
		Game:        run.Game,
		Comparisons: make([]models.PriceComparison, 0, len(base)),
	}
	for _, l := range base {
		cmp := models.PriceComparison{Base: l}
		if m := run.Matches[l.Name]; m != nil {
			match := byName[m.Card]
			cmp.Match = &match
			cmp.Score = m.Score
			cmp.PriceDelta = match.Price - l.Price
			switch {
			case match.Price < l.Price:
				cmp.Cheaper = otherStore
			case match.Price > l.Price:
				cmp.Cheaper = baseStore
			}
			summary.Matched++
		} else {
			summary.Unmatched++
		}
		summary.Comparisons = append(summary.Comparisons, cmp)
	}

	metrics.ComparisonsTotal.WithLabelValues("matched").Add(float64(summary.Matched))
	metrics.ComparisonsTotal.WithLabelValues("unmatched").Add(float64(summary.Unmatched))
	log.Printf("Consolidation: compared %s to %s (%s): %d matched, %d unmatched",
		baseStore, otherStore, run.Game, summary.Matched, summary.Unmatched)

	return summary, nil
}

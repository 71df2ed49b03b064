package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"runtime"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/codyseavey/tcg-matcher/internal/matcher"
	"github.com/codyseavey/tcg-matcher/internal/metrics"
	"github.com/codyseavey/tcg-matcher/internal/models"
)

const defaultRunCacheSize = 32

// MatchRequest is one batch of queries to resolve against one candidate list.
// An empty Game triggers detection; a nil Threshold uses the service
// default. An explicit 0 is honored and accepts any scored candidate.
type MatchRequest struct {
	Queries    []string
	Candidates []string
	Game       string
	Threshold  *float64
}

// MatchRun is the result of a completed batch
type MatchRun struct {
	ID         string             `json:"run_id"`
	Game       models.Game        `json:"game"`
	Threshold  float64            `json:"threshold"`
	Matches    matcher.MatchTable `json:"matches"`
	GroupCount int                `json:"group_count"`
	Duration   time.Duration      `json:"-"`
}

// MatchService runs batch matches over a bounded worker pool and remembers
// the candidate grouping of recent runs.
type MatchService struct {
	opts    matcher.Options
	workers int
	runs    *lru.Cache[string, matcher.CandidateGroup] // runID -> grouping
}

// NewMatchService creates a match service. workers <= 0 uses GOMAXPROCS and
// cacheSize <= 0 uses the default run cache size.
func NewMatchService(opts matcher.Options, workers, cacheSize int) *MatchService {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if cacheSize <= 0 {
		cacheSize = defaultRunCacheSize
	}

	runs, err := lru.New[string, matcher.CandidateGroup](cacheSize)
	if err != nil {
		log.Printf("Match service: failed to create run cache: %v", err)
	}

	log.Printf("Match service: threshold=%.2f fallback_bucket_limit=%d workers=%d run_cache=%d",
		opts.Threshold, opts.FallbackBucketLimit, workers, cacheSize)

	return &MatchService{opts: opts, workers: workers, runs: runs}
}

// Run resolves every distinct query. It is all-or-nothing: if ctx is done
// before every query is resolved the run is discarded and the context error
// returned.
func (s *MatchService) Run(ctx context.Context, req MatchRequest) (*MatchRun, error) {
	start := time.Now()

	game, err := matcher.SelectGame(req.Game, req.Queries, req.Candidates)
	if err != nil {
		metrics.MatchRunsTotal.WithLabelValues("", "unsupported").Inc()
		return nil, err
	}

	opts := s.opts
	if req.Threshold != nil {
		opts.Threshold = *req.Threshold
	}
	if opts.Threshold < 0 || math.IsNaN(opts.Threshold) {
		opts.Threshold = matcher.DefaultThreshold
	}

	g := matcher.Group(game, req.Candidates)
	queries := distinct(req.Queries)
	results := make([]*matcher.MatchResult, len(queries))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for i, q := range queries {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = matcher.Resolve(game, q, g, opts)
			return nil
		})
	}
	err = eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		metrics.MatchRunsTotal.WithLabelValues(string(game), "canceled").Inc()
		return nil, fmt.Errorf("match run canceled after %v: %w", time.Since(start), err)
	}

	table := make(matcher.MatchTable, len(queries))
	for i, q := range queries {
		table[q] = results[i]
		if results[i] != nil {
			metrics.MatchScoreHistogram.Observe(results[i].Score)
		}
	}

	run := &MatchRun{
		ID:         uuid.New().String(),
		Game:       game,
		Threshold:  opts.Threshold,
		Matches:    table,
		GroupCount: g.Len(),
		Duration:   time.Since(start),
	}
	if s.runs != nil {
		s.runs.Add(run.ID, g)
	}

	matched := table.Matched()
	metrics.MatchRunsTotal.WithLabelValues(string(game), "success").Inc()
	metrics.MatchQueriesTotal.WithLabelValues(string(game), "matched").Add(float64(matched))
	metrics.MatchQueriesTotal.WithLabelValues(string(game), "unmatched").Add(float64(len(table) - matched))
	metrics.MatchRunDuration.WithLabelValues(string(game)).Observe(run.Duration.Seconds())
	metrics.CandidateBuckets.WithLabelValues(string(game)).Set(float64(g.Len()))

	log.Printf("Match service: run %s (%s) matched %d/%d queries against %d candidates in %d buckets (%v)",
		run.ID, game, matched, len(table), g.Size(), g.Len(), run.Duration)

	return run, nil
}

// Groups returns the candidate grouping built by a recent run
func (s *MatchService) Groups(runID string) (matcher.CandidateGroup, bool) {
	if s.runs == nil {
		return matcher.CandidateGroup{}, false
	}
	g, ok := s.runs.Get(runID)
	if ok {
		metrics.RunCacheHits.Inc()
	} else {
		metrics.RunCacheMisses.Inc()
	}
	return g, ok
}

// Detect guesses the game of a list of names
func (s *MatchService) Detect(names []string) models.Game {
	return matcher.DetectGame(names)
}

// distinct drops repeated names, keeping first-seen order
func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/platefinder/backend/internal/domain"
)

// Strategy weights over normalized rating and the capped vote signal.
const (
	ratingHeavyRatingWeight = 0.8
	ratingHeavyVotesWeight  = 0.2
	votesHeavyRatingWeight  = 0.5
	votesHeavyVotesWeight   = 0.5
)

// Ranking defaults. The vote cap is configurable for the same reason
// the sparsity threshold is: it is a tuning knob, not a law.
const (
	defaultVoteCap = 1000
	defaultTopN    = 10
)

// RankingConfig holds configuration for the recommendation engine
type RankingConfig struct {
	VoteCap            int
	DefaultTopN        int
	EnableDebugLogging bool
}

// RecommendationService filters the cleaned dataset against user
// criteria, scores and ranks survivors under the selected strategy,
// and attaches an explanation per result. Filter -> Score -> Rank ->
// Explain; re-ranking re-enters at Score over a retained filtered set.
type RecommendationService struct {
	voteCap            int
	defaultTopN        int
	enableDebugLogging bool
}

// NewRecommendationService creates a new recommendation engine with
// the given configuration
func NewRecommendationService(config RankingConfig) *RecommendationService {
	voteCap := config.VoteCap
	if voteCap <= 0 {
		voteCap = defaultVoteCap
	}

	topN := config.DefaultTopN
	if topN <= 0 {
		topN = defaultTopN
	}

	return &RecommendationService{
		voteCap:            voteCap,
		defaultTopN:        topN,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// RecommendResult carries the ranked top-N and the pre-score filtered
// set the caller retains for later re-ranking.
type RecommendResult struct {
	Ranked   []domain.Recommendation
	Filtered *domain.FilteredSet
}

// Recommend runs the full engine over a cleaned dataset. An empty
// result is a valid outcome, never an error; the caller renders the
// no-match state from the echoed criteria.
func (s *RecommendationService) Recommend(
	ctx context.Context,
	records []domain.Restaurant,
	columns domain.ColumnSet,
	criteria domain.Criteria,
) (*RecommendResult, error) {
	criteria, err := s.validate(criteria)
	if err != nil {
		return nil, err
	}

	filtered := s.filter(ctx, records, columns, criteria)

	if s.enableDebugLogging {
		log.Printf("[RECOMMEND] %d of %d records passed filters", len(filtered.Records), len(records))
	}

	ranked := s.rank(filtered, criteria.Strategy, criteria.TopN)
	return &RecommendResult{Ranked: ranked, Filtered: filtered}, nil
}

// Rerank re-scores, re-sorts, and re-explains a previously filtered
// set under a new strategy, bypassing the filter stage entirely.
// Re-ranking under the strategy used originally reproduces the
// original top-N.
func (s *RecommendationService) Rerank(
	ctx context.Context,
	set *domain.FilteredSet,
	strategy domain.Strategy,
	topN int,
) ([]domain.Recommendation, error) {
	if set == nil {
		return nil, domain.ErrInvalidRequest
	}
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, strategy)
	}
	if topN <= 0 {
		topN = s.defaultTopN
	}

	criteria := set.Criteria
	criteria.Strategy = strategy
	criteria.TopN = topN

	reranked := &domain.FilteredSet{Records: set.Records, Columns: set.Columns, Criteria: criteria}
	return s.rank(reranked, strategy, topN), nil
}

// validate normalizes criteria in place: lowercases the free-text
// inputs, applies the top-N default, and rejects structurally invalid
// requests.
func (s *RecommendationService) validate(criteria domain.Criteria) (domain.Criteria, error) {
	if len(criteria.Cuisines) == 0 || criteria.Location == "" {
		return criteria, domain.ErrInvalidRequest
	}

	budget := strings.ToLower(criteria.Budget)
	if budget != "low" && budget != "medium" && budget != "high" {
		return criteria, fmt.Errorf("%w: budget must be low, medium, or high", domain.ErrInvalidRequest)
	}
	criteria.Budget = budget

	if !criteria.Strategy.Valid() {
		return criteria, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, criteria.Strategy)
	}

	if criteria.TopN <= 0 {
		criteria.TopN = s.defaultTopN
	}

	lowered := make([]string, len(criteria.Cuisines))
	for i, c := range criteria.Cuisines {
		lowered[i] = strings.ToLower(strings.TrimSpace(c))
	}
	criteria.Cuisines = lowered
	criteria.Location = strings.ToLower(criteria.Location)

	return criteria, nil
}

// filter retains records passing every structurally applicable
// condition. A condition is skipped entirely, not defaulted, when its
// backing column was absent from the source; with all three columns
// absent the full dataset passes through.
func (s *RecommendationService) filter(
	ctx context.Context,
	records []domain.Restaurant,
	columns domain.ColumnSet,
	criteria domain.Criteria,
) *domain.FilteredSet {
	set := &domain.FilteredSet{Columns: columns, Criteria: criteria}

	for i, r := range records {
		if i%1024 == 0 {
			select {
			case <-ctx.Done():
				return set
			default:
			}
		}

		if columns.Cuisines && !matchesAnyCuisine(r.PrimaryCuisine, criteria.Cuisines) {
			continue
		}
		if columns.Cost && r.CostCategory != criteria.Budget {
			continue
		}
		if columns.Location && !strings.Contains(strings.ToLower(r.Location), criteria.Location) {
			continue
		}
		set.Records = append(set.Records, r)
	}

	return set
}

// matchesAnyCuisine is a substring predicate over the tokenized primary
// cuisine: any requested cuisine occurring within it is a match. This
// replaces the regex-alternation match so user input cannot inject
// pattern syntax.
func matchesAnyCuisine(primaryCuisine string, requested []string) bool {
	for _, cuisine := range requested {
		if cuisine != "" && strings.Contains(primaryCuisine, cuisine) {
			return true
		}
	}
	return false
}

// rank scores the filtered set, sorts descending by score, truncates
// to topN, and attaches explanations. Ties keep ingestion order: the
// sort is stable over the filtered slice.
func (s *RecommendationService) rank(set *domain.FilteredSet, strategy domain.Strategy, topN int) []domain.Recommendation {
	scored := make([]domain.Recommendation, 0, len(set.Records))
	for _, r := range set.Records {
		scored = append(scored, domain.Recommendation{
			Restaurant: r,
			Score:      s.score(r, strategy),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}

	for i := range scored {
		scored[i].Explanation = explain(&scored[i].Restaurant, set.Columns, set.Criteria, strategy)
	}

	return scored
}

// score combines normalized rating with the vote signal: votes capped
// at the configured ceiling and scaled to [0,1], so popularity beyond
// the cap earns nothing extra.
func (s *RecommendationService) score(r domain.Restaurant, strategy domain.Strategy) float64 {
	votes := r.Votes
	if votes < 0 {
		votes = 0
	}
	if votes > s.voteCap {
		votes = s.voteCap
	}
	voteSignal := float64(votes) / float64(s.voteCap)

	if strategy == domain.StrategyVotesHeavy {
		return votesHeavyRatingWeight*r.NormalizedRating + votesHeavyVotesWeight*voteSignal
	}
	return ratingHeavyRatingWeight*r.NormalizedRating + ratingHeavyVotesWeight*voteSignal
}

// explain renders the per-result explanation. The budget and rating
// clauses appear only when the source actually carried those columns.
func explain(r *domain.Restaurant, columns domain.ColumnSet, criteria domain.Criteria, strategy domain.Strategy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Matched on %s cuisine", strings.Join(criteria.Cuisines, ", "))
	if columns.Cost {
		fmt.Fprintf(&b, ", %s budget", criteria.Budget)
	}
	if columns.Rating {
		fmt.Fprintf(&b, ", and %.1f rating from %d votes", r.NormalizedRating, r.Votes)
	}
	fmt.Fprintf(&b, " (Strategy: %s)", strategy.Label())
	return b.String()
}

package match

import (
	"time"

	"github.com/crete-bi/account-linkage/internal/debug"
	"github.com/crete-bi/account-linkage/internal/normalize"
)

// Engine runs the matching sequence for one (company code, source system)
// unit: blocking, name distance, field scoring, aggregation. Pure in-memory
// computation; loading and persistence belong to the caller.
type Engine struct {
	blocker    *Blocker
	distance   *NameDistance
	scorer     *Scorer
	aggregator *Aggregator
	maxDist    int
}

// NewEngine creates an engine for the given normalizer version, scoring
// profile and maximum name distance.
func NewEngine(version normalize.Version, profile ScoringProfile, maxDist int) *Engine {
	return &Engine{
		blocker:    NewBlocker(version),
		distance:   NewNameDistance(version),
		scorer:     NewScorer(profile),
		aggregator: NewAggregator(),
		maxDist:    maxDist,
	}
}

// Block generates the candidate pairs for this unit.
func (e *Engine) Block(sources []SourceRecord, references []ReferenceRecord) []CandidatePair {
	return e.blocker.Block(sources, references)
}

// Score computes distances and field scores for the candidate pairs and
// aggregates the survivors into result rows. Every returned row has
// Dist <= the configured maximum. An empty return means nothing survived;
// that is a skip, not an error.
func (e *Engine) Score(pairs []CandidatePair, runDate time.Time) []Result {
	scored := make([]scoredPair, 0, len(pairs))
	for _, pair := range pairs {
		dist := e.distance.Distance(pair.Source.Name, pair.Reference.Name, e.maxDist)
		if dist > e.maxDist {
			debug.Logf("rejected %s -> %s: dist %d > %d",
				pair.Source.Name, pair.Reference.Name, dist, e.maxDist)
			continue
		}
		scored = append(scored, scoredPair{
			Pair:   pair,
			Dist:   dist,
			Scores: e.scorer.Score(pair, dist),
		})
	}
	if len(scored) == 0 {
		return nil
	}

	return e.aggregator.Aggregate(scored, runDate)
}

// Run is Block followed by Score.
func (e *Engine) Run(sources []SourceRecord, references []ReferenceRecord, runDate time.Time) []Result {
	return e.Score(e.Block(sources, references), runDate)
}

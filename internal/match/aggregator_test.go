package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandBoundaries(t *testing.T) {
	assert.Equal(t, BandHigh, BandFor(-3))
	assert.Equal(t, BandHigh, BandFor(0))
	assert.Equal(t, BandMedium, BandFor(1))
	assert.Equal(t, BandMedium, BandFor(2))
	assert.Equal(t, BandLow, BandFor(3))
	assert.Equal(t, BandLow, BandFor(7))
}

func pairFor(srcID, accountID string) CandidatePair {
	return CandidatePair{
		Source:    &SourceRecord{ID: srcID, CustomerNumber: "N-" + srcID, CompanyCode: "100", SourceSystem: "BUILDOPS"},
		Reference: &ReferenceRecord{AccountID: accountID},
	}
}

func TestAggregateTotalsAndBands(t *testing.T) {
	agg := NewAggregator()
	runDate := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	pairs := []scoredPair{
		{Pair: pairFor("c1", "a1"), Dist: 0, Scores: FieldScores{Email: -1, City: -1, Bonus: -1}},
		{Pair: pairFor("c1", "a2"), Dist: 2, Scores: FieldScores{City: 1}},
	}

	results := agg.Aggregate(pairs, runDate)
	require.Len(t, results, 2)

	best := results[0]
	assert.Equal(t, "a1", best.AccountID)
	assert.Equal(t, -3, best.TotalScore)
	assert.Equal(t, BandHigh, best.ConfidenceBand)
	assert.True(t, best.BestMatchFlag)
	assert.Equal(t, runDate, best.RunDate)

	other := results[1]
	assert.Equal(t, "a2", other.AccountID)
	assert.Equal(t, 3, other.TotalScore)
	assert.Equal(t, BandLow, other.ConfidenceBand)
	assert.False(t, other.BestMatchFlag)
}

func TestAggregateFlagsAllTies(t *testing.T) {
	agg := NewAggregator()

	pairs := []scoredPair{
		{Pair: pairFor("c1", "a1"), Dist: 0, Scores: FieldScores{Email: -1}},
		{Pair: pairFor("c1", "a2"), Dist: 0, Scores: FieldScores{City: -1}},
		{Pair: pairFor("c1", "a3"), Dist: 2, Scores: FieldScores{}},
	}

	results := agg.Aggregate(pairs, time.Now())
	require.Len(t, results, 3)

	flagged := 0
	for _, r := range results {
		if r.BestMatchFlag {
			flagged++
			assert.Equal(t, -1, r.TotalScore, "every flagged row shares the minimum total")
		}
	}
	assert.Equal(t, 2, flagged, "both tied candidates flagged")
}

func TestAggregateFlagsPerCustomerGroup(t *testing.T) {
	agg := NewAggregator()

	pairs := []scoredPair{
		{Pair: pairFor("c1", "a1"), Dist: 1, Scores: FieldScores{}},
		{Pair: pairFor("c1", "a2"), Dist: 4, Scores: FieldScores{}},
		{Pair: pairFor("c2", "a2"), Dist: 3, Scores: FieldScores{City: 1}},
	}

	results := agg.Aggregate(pairs, time.Now())
	require.Len(t, results, 3)

	byCustomer := make(map[string][]Result)
	for _, r := range results {
		byCustomer[r.CustomerID] = append(byCustomer[r.CustomerID], r)
	}

	for customer, rows := range byCustomer {
		hasFlag := false
		for _, r := range rows {
			if r.BestMatchFlag {
				hasFlag = true
			}
		}
		assert.True(t, hasFlag, "customer %s has at least one best-match row", customer)
	}
}

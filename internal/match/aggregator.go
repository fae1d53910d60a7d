package match

import (
	"sort"
	"time"
)

// Aggregator turns scored candidate pairs into persistable results: total
// score, confidence band, and per-source best-match flags.
type Aggregator struct{}

// NewAggregator creates an aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// scoredPair couples a candidate pair with its computed distances and costs.
type scoredPair struct {
	Pair   CandidatePair
	Dist   int
	Scores FieldScores
}

// Aggregate builds the final result rows. Ties on the minimum total score
// within a customer all receive the best-match flag; tie resolution is left
// to the reviewer.
func (a *Aggregator) Aggregate(pairs []scoredPair, runDate time.Time) []Result {
	results := make([]Result, 0, len(pairs))

	for _, sp := range pairs {
		src := sp.Pair.Source
		ref := sp.Pair.Reference
		total := sp.Dist + sp.Scores.Total()

		results = append(results, Result{
			CompanyCode:      src.CompanyCode,
			SourceSystem:     src.SourceSystem,
			CustomerID:       src.ID,
			CustomerNumber:   src.CustomerNumber,
			AccountID:        ref.AccountID,
			ExternalCode:     ref.ExternalCode,
			Dist:             sp.Dist,
			EmailScore:       sp.Scores.Email,
			PhoneScore:       sp.Scores.Phone,
			ZipScore:         sp.Scores.Zip,
			AddressCityScore: sp.Scores.City,
			StateScore:       sp.Scores.State,
			MultiSignalBonus: sp.Scores.Bonus,
			TotalScore:       total,
			ConfidenceBand:   BandFor(total),
			RunDate:          runDate,
		})
	}

	FlagBestMatches(results)

	// Stable output order: by customer, best candidates first
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].CustomerID != results[j].CustomerID {
			return results[i].CustomerID < results[j].CustomerID
		}
		return results[i].TotalScore < results[j].TotalScore
	})

	return results
}

// FlagBestMatches sets BestMatchFlag on every result sharing the minimum
// total score within its customer group.
func FlagBestMatches(results []Result) {
	minByCustomer := make(map[string]int)
	for _, r := range results {
		min, seen := minByCustomer[r.CustomerID]
		if !seen || r.TotalScore < min {
			minByCustomer[r.CustomerID] = r.TotalScore
		}
	}

	for i := range results {
		results[i].BestMatchFlag = results[i].TotalScore == minByCustomer[results[i].CustomerID]
	}
}

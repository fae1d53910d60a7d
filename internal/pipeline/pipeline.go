package pipeline

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/crete-bi/account-linkage/internal/config"
	"github.com/crete-bi/account-linkage/internal/debug"
	"github.com/crete-bi/account-linkage/internal/match"
)

// RecordStore loads the two record collections for a unit. Implemented by
// the Postgres store; faked in tests.
type RecordStore interface {
	CompanyCodes() ([]string, error)
	LoadReferenceRecords(companyCode string) ([]match.ReferenceRecord, error)
	LoadSourceRecords(system config.SourceSystem, companyCode string) ([]match.SourceRecord, error)
}

// ResultSink persists one unit's result rows atomically.
type ResultSink interface {
	SaveResults(results []match.Result) (int, error)
}

// Unit is one (company code, source system) matching run.
type Unit struct {
	CompanyCode string
	System      config.SourceSystem
}

// UnitStats summarizes one unit's run for logging.
type UnitStats struct {
	Unit       Unit
	Sources    int
	References int
	Candidates int
	Results    int
	Inserted   int
	Skipped    bool
	Err        error
	Duration   time.Duration
}

// RunStats aggregates a whole run.
type RunStats struct {
	Units     int
	Skipped   int
	Failed    int
	Inserted  int
	StartedAt time.Time
	Duration  time.Duration
}

// Runner sequences matching units. Units are independent; a bounded worker
// pool may run them concurrently without changing matching semantics because
// each unit's results are computed fully in memory and persisted in one
// transaction.
type Runner struct {
	cfg    *config.Config
	store  RecordStore
	sink   ResultSink
	engine *match.Engine
}

// NewRunner creates a runner from an explicit configuration.
func NewRunner(cfg *config.Config, store RecordStore, sink ResultSink) *Runner {
	return &Runner{
		cfg:    cfg,
		store:  store,
		sink:   sink,
		engine: match.NewEngine(cfg.NormalizerVersion, cfg.Profile, cfg.MaxDist),
	}
}

// Units expands the configured company code and system selection into the
// concrete unit list. COMPANY_CODE=ALL enumerates codes from the store.
func (r *Runner) Units() ([]Unit, error) {
	codes := []string{r.cfg.CompanyCode}
	if r.cfg.CompanyCode == "" || r.cfg.CompanyCode == "ALL" {
		loaded, err := r.store.CompanyCodes()
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate company codes: %w", err)
		}
		codes = loaded
	}

	var units []Unit
	for _, code := range codes {
		for _, system := range r.cfg.System.Systems() {
			units = append(units, Unit{CompanyCode: code, System: system})
		}
	}
	return units, nil
}

// Run executes every unit. A unit's failure is logged and absorbed; it never
// aborts the remaining units.
func (r *Runner) Run() (*RunStats, error) {
	units, err := r.Units()
	if err != nil {
		return nil, err
	}

	stats := &RunStats{Units: len(units), StartedAt: time.Now()}
	log.Printf("Starting matching run: %d units, max_dist=%d, normalizer=%s, profile=%s",
		len(units), r.cfg.MaxDist, r.cfg.NormalizerVersion, r.cfg.Profile.Name)

	workers := r.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	unitCh := make(chan Unit)
	statCh := make(chan UnitStats)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range unitCh {
				statCh <- r.runUnit(unit)
			}
		}()
	}

	go func() {
		for _, unit := range units {
			unitCh <- unit
		}
		close(unitCh)
		wg.Wait()
		close(statCh)
	}()

	for us := range statCh {
		switch {
		case us.Err != nil:
			stats.Failed++
		case us.Skipped:
			stats.Skipped++
		default:
			stats.Inserted += us.Inserted
		}
	}

	stats.Duration = time.Since(stats.StartedAt)
	log.Printf("Matching run complete: %d units, %d skipped, %d failed, %d rows inserted in %v",
		stats.Units, stats.Skipped, stats.Failed, stats.Inserted, stats.Duration)
	return stats, nil
}

// runUnit loads, matches and persists one unit. All errors are reported via
// the returned stats, not propagated.
func (r *Runner) runUnit(unit Unit) UnitStats {
	started := time.Now()
	us := UnitStats{Unit: unit}
	tag := fmt.Sprintf("[%s/%s]", unit.CompanyCode, unit.System)

	defer debug.Timing("unit " + tag)()
	defer func() { us.Duration = time.Since(started) }()

	references, err := r.store.LoadReferenceRecords(unit.CompanyCode)
	if err != nil {
		us.Err = err
		log.Printf("%s failed to load CRM accounts: %v", tag, err)
		return us
	}
	sources, err := r.store.LoadSourceRecords(unit.System, unit.CompanyCode)
	if err != nil {
		us.Err = err
		log.Printf("%s failed to load customers: %v", tag, err)
		return us
	}

	us.Sources = len(sources)
	us.References = len(references)
	log.Printf("%s loaded %d customers, %d CRM accounts", tag, len(sources), len(references))

	if len(sources) == 0 || len(references) == 0 {
		us.Skipped = true
		log.Printf("%s skipping: empty input collection", tag)
		return us
	}

	pairs := r.engine.Block(sources, references)
	us.Candidates = len(pairs)
	log.Printf("%s generated %d candidate pairs", tag, len(pairs))

	if len(pairs) == 0 {
		us.Skipped = true
		log.Printf("%s skipping: no candidates survived blocking", tag)
		return us
	}

	results := r.engine.Score(pairs, time.Now())
	us.Results = len(results)
	log.Printf("%s produced %d matches (dist <= %d)", tag, len(results), r.cfg.MaxDist)

	if len(results) == 0 {
		us.Skipped = true
		log.Printf("%s skipping: no results survived scoring", tag)
		return us
	}

	inserted, err := r.sink.SaveResults(results)
	if err != nil {
		us.Err = err
		log.Printf("%s failed to persist results: %v", tag, err)
		return us
	}
	us.Inserted = inserted
	log.Printf("%s inserted %d result rows in %v", tag, inserted, time.Since(started))
	return us
}

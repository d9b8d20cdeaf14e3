package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"volleyzone-tables/internal/division"
	"volleyzone-tables/internal/logger"
	"volleyzone-tables/internal/scraper"
	"volleyzone-tables/internal/storage"
)

// TableFetcher returns the HTML table fragment for a competition id
type TableFetcher interface {
	FetchTable(ctx context.Context, competitionID string) (string, error)
}

// Result describes one exported division
type Result struct {
	Division division.Division
	Path     string
	Rows     int
}

// Summary lists the divisions exported by a run, in configured order
type Summary struct {
	Results []Result
	Rows    int
}

// Runner exports league tables for a list of divisions
type Runner struct {
	Divisions []division.Division
	Fetcher   TableFetcher
	Storage   *storage.Storage
	// Parallel is the number of divisions processed at once; values below 2 run sequentially
	Parallel int
	Logger   *logger.Logger
	Metrics  *logger.Metrics
}

// Run exports every division. It returns at the first failure; divisions after the
// failing one are not attempted and files already written are kept.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if r.Logger == nil {
		r.Logger = logger.Default()
	}
	if r.Metrics == nil {
		r.Metrics = logger.NewMetrics()
	}

	if r.Parallel > 1 {
		return r.runParallel(ctx)
	}
	return r.runSequential(ctx)
}

func (r *Runner) runSequential(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	for _, d := range r.Divisions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := r.export(ctx, d)
		if err != nil {
			return summary, err
		}
		summary.add(result)
	}
	return summary, nil
}

func (r *Runner) runParallel(ctx context.Context) (*Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := ants.NewPool(r.Parallel)
	if err != nil {
		return &Summary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]*Result, len(r.Divisions))

	var (
		workers  sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for i, d := range r.Divisions {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if ctx.Err() != nil {
				return
			}

			result, err := r.export(ctx, d)
			if err != nil {
				fail(err)
				return
			}
			results[i] = &result
		}); err != nil {
			workers.Done()
			fail(fmt.Errorf("submit %s: %w", d.Label, err))
			break
		}
	}
	workers.Wait()

	summary := &Summary{}
	for _, result := range results {
		if result != nil {
			summary.add(*result)
		}
	}

	if firstErr != nil {
		return summary, firstErr
	}
	// parent canceled with no division failing
	if err := ctx.Err(); err != nil && len(summary.Results) < len(r.Divisions) {
		return summary, err
	}
	return summary, nil
}

// export fetches, parses and saves a single division
func (r *Runner) export(ctx context.Context, d division.Division) (Result, error) {
	r.Logger.Info("Retrieving table", logger.Fields{"division": d.Label, "id": d.CompetitionID})

	start := time.Now()
	html, err := r.Fetcher.FetchTable(ctx, d.CompetitionID)
	r.Metrics.RecordTiming("fetch", time.Since(start))
	if err != nil {
		r.Metrics.IncrCounter("divisions.failed")
		return Result{}, fmt.Errorf("fetching table for %s (id %s): %w", d.Label, d.CompetitionID, err)
	}

	teams, err := scraper.ParseTableString(html)
	if err != nil {
		r.Metrics.IncrCounter("divisions.failed")
		return Result{}, fmt.Errorf("parsing table for %s (id %s): %w", d.Label, d.CompetitionID, err)
	}
	if len(teams) == 0 {
		r.Logger.Warn("No standings rows found", logger.Fields{"division": d.Label, "id": d.CompetitionID})
	}

	path, err := r.Storage.SaveTable(d.Label, teams)
	if err != nil {
		r.Metrics.IncrCounter("divisions.failed")
		return Result{}, fmt.Errorf("saving table for %s: %w", d.Label, err)
	}

	r.Metrics.IncrCounter("divisions.saved")
	r.Metrics.AddCounter("rows.written", int64(len(teams)))
	r.Metrics.SetGauge("rows."+d.Label, float64(len(teams)))
	r.Logger.Info("Saved", logger.Fields{"division": d.Label, "id": d.CompetitionID, "path": path, "rows": len(teams)})

	return Result{Division: d, Path: path, Rows: len(teams)}, nil
}

func (s *Summary) add(result Result) {
	s.Results = append(s.Results, result)
	s.Rows += result.Rows
}

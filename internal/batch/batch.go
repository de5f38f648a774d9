// Package batch evaluates many wall designs at once, reading them from a
// spreadsheet or a JSON/YAML list and writing one result row per design.
package batch

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/gowall/internal/wall"
)

// Row is one wall design to evaluate. Dimensions are in meters.
type Row struct {
	Name   string  `json:"name" yaml:"name"`
	Height float64 `json:"height" yaml:"height"`
	Width  float64 `json:"width" yaml:"width"`
	Depth  float64 `json:"depth" yaml:"depth"`
}

// Result is the outcome of evaluating a Row. Exactly one of Materials
// and Err is set.
type Result struct {
	Row       Row
	Spec      wall.Spec
	Materials *wall.MaterialList
	Err       error
}

// OK reports whether the design passed validation and capacity checks.
func (r Result) OK() bool { return r.Err == nil }

// Evaluate validates and calculates every row using at most workers
// goroutines. Results are returned in input order. Per-row failures are
// recorded on the Result; the returned error is only set when ctx is
// cancelled.
func Evaluate(ctx context.Context, rows []Row, workers int, logger *zap.Logger) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(rows))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, row := range rows {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = evaluate(row)
			if err := results[i].Err; err != nil {
				logger.Debug("design rejected",
					zap.String("name", row.Name),
					zap.String("kind", wall.KindName(err)),
					zap.Error(err))
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func evaluate(row Row) Result {
	res := Result{Row: row}
	s, err := wall.New(row.Height, row.Width, row.Depth)
	if err != nil {
		res.Err = err
		return res
	}
	res.Spec = s
	ml, err := wall.Calculate(s)
	if err != nil {
		res.Err = err
		return res
	}
	res.Materials = ml
	return res
}

// Summary counts passing and failing results.
func Summary(results []Result) (passed, failed int) {
	for _, r := range results {
		if r.OK() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Package bench measures how the page size affects the time needed to fetch a corpus.
package bench

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Result is one measured session.
type Result struct {
	K         int
	Run       int
	ElapsedMS int64
}

// SessionFunc runs one complete session with page size k and reports how long it took.
type SessionFunc func(ctx context.Context, k int) (time.Duration, error)

// Sink stores results.
type Sink interface {
	Write(Result) error
	Close() error
}

// Runner repeats sessions for every page size.
type Runner struct {
	pageSizes []int
	runs      int
	session   SessionFunc
	sinks     []Sink
}

// Cfg configures a Runner.
type Cfg func(*Runner) error

// WithPageSizes sets the page sizes to measure, in order.
func WithPageSizes(ks ...int) Cfg {
	return func(r *Runner) error {
		for _, k := range ks {
			if k < 1 {
				return errors.Errorf("page size %d must be positive", k)
			}
		}
		r.pageSizes = ks
		return nil
	}
}

// WithRuns sets the number of sessions per page size.
func WithRuns(n int) Cfg {
	return func(r *Runner) error {
		if n < 1 {
			return errors.Errorf("runs %d must be positive", n)
		}
		r.runs = n
		return nil
	}
}

// WithSession sets the function that runs one session.
func WithSession(fn SessionFunc) Cfg {
	return func(r *Runner) error {
		r.session = fn
		return nil
	}
}

// WithSink adds a destination for results.
func WithSink(s Sink) Cfg {
	return func(r *Runner) error {
		r.sinks = append(r.sinks, s)
		return nil
	}
}

// NewRunner creates a new Runner with the given configuration.
func NewRunner(cfgs ...Cfg) (*Runner, error) {
	r := &Runner{runs: 1}
	for _, cfg := range cfgs {
		if err := cfg(r); err != nil {
			return nil, errors.Wrap(err, "apply Runner cfg failed")
		}
	}
	if r.session == nil {
		return nil, errors.New("runner requires a session func")
	}
	return r, nil
}

// Run measures every page size and writes each result to every sink.
// The first failing session or sink aborts the run.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	var results []Result
	for _, k := range r.pageSizes {
		var total int64
		for run := 1; run <= r.runs; run++ {
			if err := ctx.Err(); err != nil {
				return results, errors.Wrap(err, "bench cancelled")
			}
			elapsed, err := r.session(ctx, k)
			if err != nil {
				return results, errors.Wrapf(err, "session k=%d run=%d failed", k, run)
			}
			res := Result{K: k, Run: run, ElapsedMS: elapsed.Milliseconds()}
			for _, s := range r.sinks {
				if err := s.Write(res); err != nil {
					return results, errors.Wrap(err, "write result failed")
				}
			}
			results = append(results, res)
			total += res.ElapsedMS
			logger.WithFields(logrus.Fields{
				"k":          k,
				"run":        run,
				"elapsed_ms": res.ElapsedMS,
			}).Debug("session measured")
		}
		logger.WithFields(logrus.Fields{
			"k":       k,
			"mean_ms": float64(total) / float64(r.runs),
		}).Info("page size measured")
	}
	return results, nil
}

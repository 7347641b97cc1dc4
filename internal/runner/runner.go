// Package runner counts points on many curves: it executes batch items concurrently with a bounded number of workers,
// limits the time spent on each item and writes the results in input order.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/GottfriedHerold/Schoof/internal/config"
	"github.com/GottfriedHerold/Schoof/schoof"
)

var ErrTimeout = errors.New("runner: timeout exceeded")

// Result is the outcome of one item. Exactly one of Order and Error is set.
type Result struct {
	P          int64    `json:"p"`
	A          int64    `json:"a"`
	B          int64    `json:"b"`
	Order      *big.Int `json:"order,omitempty"`
	Trace      *big.Int `json:"trace,omitempty"`
	Algorithm  string   `json:"algorithm"`
	DurationMs int64    `json:"durationMs"`
	Error      string   `json:"error,omitempty"`

	progress string // progress line written by the algorithm
}

type Runner struct {
	algorithmName string
	algorithm     schoof.TraceAlgorithm
	workers       int
	timeout       time.Duration
}

// New creates a runner with the algorithm, number of workers and timeout of conf.
func New(conf *config.Config) (*Runner, error) {
	algorithm, err := schoof.LookupAlgorithm(conf.Algorithm)
	if err != nil {
		return nil, err
	}
	timeout, err := conf.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if conf.Workers < 1 {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidWorkers, conf.Workers)
	}
	return &Runner{algorithmName: conf.Algorithm, algorithm: algorithm, workers: conf.Workers, timeout: timeout}, nil
}

// Run processes all items and returns their results in the order of items.
//
// Failing items do not stop the others; their error is recorded in the result.
// If ctx is cancelled, the remaining items fail with the error of ctx.
func (r *Runner) Run(ctx context.Context, items []Item) []Result {
	log.WithFields(log.Fields{"items": len(items), "workers": r.workers, "algorithm": r.algorithmName, "timeout": r.timeout}).Info("starting batch")
	results := make([]Result, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			results[i] = r.runItem(ctx, item)
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	return results
}

type outcome struct {
	order    *big.Int
	err      error
	progress string
}

// runItem counts the points of a single curve. If the timeout expires first, the result records the timeout and the
// output of the computation is discarded. The computation cannot be interrupted, so runItem only returns once it has
// finished; this keeps the number of running computations bounded by the number of workers.
func (r *Runner) runItem(ctx context.Context, item Item) Result {
	result := Result{P: item.P, A: item.A, B: item.B, Algorithm: r.algorithmName}
	if err := ctx.Err(); err != nil {
		result.Error = err.Error()
		return result
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	start := time.Now()
	done := make(chan outcome, 1)
	go func() {
		var buf bytes.Buffer
		order, err := schoof.CountPoints(r.algorithm, item.P, item.A, item.B, &buf)
		done <- outcome{order: order, err: err, progress: buf.String()}
	}()

	select {
	case o := <-done:
		result.DurationMs = time.Since(start).Milliseconds()
		if o.err != nil {
			log.WithFields(log.Fields{"curve": item.String(), "line": item.Line}).WithError(o.err).Warn("point counting failed")
			result.Error = o.err.Error()
			return result
		}
		result.Order = o.order
		result.Trace = new(big.Int).Sub(big.NewInt(item.P+1), o.order)
		result.progress = o.progress
		log.WithFields(log.Fields{"curve": item.String(), "order": o.order.String(), "durationMs": result.DurationMs}).Info("counted points")
	case <-ctx.Done():
		result.DurationMs = time.Since(start).Milliseconds()
		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v after %v", ErrTimeout, item, r.timeout)
		}
		log.WithFields(log.Fields{"curve": item.String(), "line": item.Line}).WithError(err).Error("point counting abandoned")
		result.Error = err.Error()
		<-done
	}
	return result
}

package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ngamma/glassdamage/internal/accumulate"
	"github.com/ngamma/glassdamage/internal/damage"
	"github.com/ngamma/glassdamage/pkg/transport"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Scorer scores a single step
type Scorer interface {
	Score(step transport.Step) damage.Contribution
}

// queueDepth is the per-worker channel buffer
const queueDepth = 256

// Run decodes every record from r and scores it with s. Each event is
// routed to worker eventID mod workers, so steps of one event are handled
// by a single worker in stream order. An event ends when a worker sees a
// different event ID or its queue closes. Worker totals are merged once all
// workers have finished.
func Run(ctx context.Context, r *Reader, s Scorer, c Catalog, workers int, logger *zap.SugaredLogger) (*accumulate.Run, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	queues := make([]chan transport.Step, workers)
	for i := range queues {
		queues[i] = make(chan transport.Step, queueDepth)
	}
	results := make([]*accumulate.Run, workers)

	g.Go(func() error {
		defer func() {
			for _, q := range queues {
				close(q)
			}
		}()
		return dispatch(ctx, r, c, queues)
	})

	for i := range queues {
		i := i
		g.Go(func() error {
			results[i] = work(queues[i], s)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := accumulate.NewRun()
	for _, res := range results {
		total.Merge(res)
	}

	logger.Infow("replay finished",
		"run", total.ID,
		"records", r.Count(),
		"events", total.Events,
		"workers", workers,
		"elapsed", time.Since(start),
	)
	return total, nil
}

func dispatch(ctx context.Context, r *Reader, c Catalog, queues []chan transport.Step) error {
	n := int64(len(queues))
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		step, err := rec.Step(c)
		if err != nil {
			return fmt.Errorf("record %d: %w", r.Count()-1, err)
		}

		idx := step.EventID % n
		if idx < 0 {
			idx += n
		}

		select {
		case queues[idx] <- step:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// work drains q into a private run accumulator
func work(q <-chan transport.Step, s Scorer) *accumulate.Run {
	run := accumulate.NewRun()
	var ev accumulate.Event
	open := false

	for step := range q {
		if !open || step.EventID != ev.ID {
			if open {
				run.AddEvent(ev)
			}
			ev.Reset(step.EventID)
			open = true
		}
		ev.Add(s.Score(step))
	}
	if open {
		run.AddEvent(ev)
	}
	return run
}

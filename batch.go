package tfmt

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/tagfmt/tfmt/tags"
)

// Outcome is the result of running a script against one entry.
type Outcome struct {
	Entry  tags.Entry
	Target string // destination path including extension
	Err    error
}

// OK reports whether the entry was interpreted successfully.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// RunBatch interprets every entry, using up to the configured number of
// goroutines. It returns one Outcome per entry, in input order. A failing
// entry does not stop the others; the returned error combines every
// failure, or is nil if there were none. Entries not yet started when ctx
// is cancelled fail with the context's error.
func (inv *Invocation) RunBatch(ctx context.Context, entries []tags.Entry) ([]Outcome, error) {
	log := inv.script.opts.logger.With().Str("script", inv.script.Name()).Logger()
	start := time.Now()

	outcomes := make([]Outcome, len(entries))
	var g errgroup.Group
	g.SetLimit(inv.script.opts.concurrency)
	for i, entry := range entries {
		g.Go(func() error {
			outcomes[i] = inv.runEntry(ctx, entry)
			return nil
		})
	}
	// Workers record failures in their Outcome and never return an error.
	_ = g.Wait()

	var result *multierror.Error
	for _, o := range outcomes {
		if o.Err == nil {
			log.Debug().Str("path", o.Entry.Path).Str("target", o.Target).Msg("interpreted")
			continue
		}
		log.Warn().Str("path", o.Entry.Path).Err(o.Err).Msg("interpretation failed")
		result = multierror.Append(result, fmt.Errorf("%s: %w", o.Entry.Path, o.Err))
	}
	log.Info().
		Int("entries", len(entries)).
		Int("failed", failures(result)).
		Dur("elapsed", time.Since(start)).
		Msg("batch complete")
	return outcomes, result.ErrorOrNil()
}

func (inv *Invocation) runEntry(ctx context.Context, entry tags.Entry) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{Entry: entry, Err: err}
	}
	target, err := inv.Target(entry.Tags, entry.Path)
	return Outcome{Entry: entry, Target: target, Err: err}
}

func failures(err *multierror.Error) int {
	if err == nil {
		return 0
	}
	return len(err.Errors)
}

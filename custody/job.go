package custody

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ruteri/paper-custody-kit/interfaces"
	"github.com/ruteri/paper-custody-kit/layout"
	"go.uber.org/atomic"
)

// ErrStopped is returned by Run when Stop was called before the job finished.
var ErrStopped = errors.New("print job stopped")

// PrintJob drives one custody kit from the first to the last page.
type PrintJob struct {
	sequencer *PageSequencer
	resolver  *Resolver
	log       *slog.Logger

	stopped atomic.Bool
}

// NewPrintJob splits the secret and prepares the page sequence. An uneven
// split or operator text the printer font cannot show fails here, before any
// page exists.
func NewPrintJob(secret interfaces.Secret, artifact interfaces.RecoveryArtifact, custodians int, texts Texts, log *slog.Logger) (*PrintJob, error) {
	if err := layout.CheckPrintable(artifact.AddressWithLock); err != nil {
		return nil, fmt.Errorf("address with lock: %w", err)
	}
	if err := layout.CheckPrintable(artifact.RedeemScript); err != nil {
		return nil, fmt.Errorf("redeem script: %w", err)
	}

	shares, err := Split(secret, custodians)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(Join(shares), secret) {
		return nil, fmt.Errorf("%w: shares do not reassemble the secret", interfaces.ErrUnevenSplit)
	}

	sequencer, err := NewPageSequencer(custodians)
	if err != nil {
		return nil, err
	}

	return &PrintJob{
		sequencer: sequencer,
		resolver:  NewResolver(shares, artifact, texts, layout.NewMetrics()),
		log:       log,
	}, nil
}

// Total returns the number of pages the job renders.
func (j *PrintJob) Total() int {
	return j.sequencer.Total()
}

// Stop asks a running job to stop at the next safe point. It may be called
// from any goroutine.
func (j *PrintJob) Stop() {
	j.stopped.Store(true)
}

// Run renders every page in order and returns the number of rendered pages.
//
// Cancellation, through ctx or Stop, is only honoured before a page that does
// not follow a disclosure, so a rendered disclosure page always has its cover.
// A job that returns an error must not be printed.
func (j *PrintJob) Run(ctx context.Context, renderer interfaces.PageRenderer) (int, error) {
	rendered := 0
	var previous interfaces.PageKind

	for spec := range j.sequencer.Pages() {
		if !previous.IsDisclosure() {
			if err := ctx.Err(); err != nil {
				return rendered, fmt.Errorf("print job cancelled after %d of %d pages: %w", rendered, j.Total(), err)
			}
			if j.stopped.Load() {
				return rendered, fmt.Errorf("%w after %d of %d pages", ErrStopped, rendered, j.Total())
			}
		}

		content, err := j.resolver.Resolve(spec)
		if err != nil {
			return rendered, err
		}
		if err := renderer.RenderPage(content); err != nil {
			return rendered, fmt.Errorf("failed to render page %d (%s): %w", spec.Index, spec.Kind, err)
		}

		rendered++
		previous = spec.Kind
		j.log.Debug("Rendered page", "page", spec.Index, "total", spec.Total, "kind", spec.Kind.String())
	}

	if rendered != j.Total() {
		return rendered, fmt.Errorf("%w: rendered %d of %d pages", interfaces.ErrSequenceExhausted, rendered, j.Total())
	}
	return rendered, nil
}

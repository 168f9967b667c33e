package contraindications

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metricare/patient-api/interfaces"
	"github.com/metricare/patient-api/logging"
)

// Pipeline runs the contraindication stages for one request:
// FETCH (fan-out) -> CLASSIFY -> FILTER -> SUMMARIZE. Each stage catches
// its own failures and degrades to the previous stage's output, so the
// pipeline always produces a response list.
type Pipeline struct {
	labels        interfaces.LabelSource
	generator     interfaces.TextGenerator
	lookupTimeout time.Duration
}

// NewPipeline creates a pipeline with injected dependencies
func NewPipeline(labels interfaces.LabelSource, generator interfaces.TextGenerator, lookupTimeout time.Duration) *Pipeline {
	return &Pipeline{
		labels:        labels,
		generator:     generator,
		lookupTimeout: lookupTimeout,
	}
}

// Run produces the contraindication entries for a patient. The caller
// bounds the whole run through ctx; individual label lookups additionally
// get their own timeout so one stalled upstream cannot consume the budget.
func (p *Pipeline) Run(ctx context.Context, pc PatientContext) []Entry {
	runID := uuid.NewString()
	start := time.Now()

	raw := p.fetchAndClassify(ctx, pc.Medications, runID)
	filtered := p.filterRelevant(ctx, pc, raw, runID)
	summarized := p.summarizeForDisplay(ctx, pc, filtered, runID)

	logging.Info("Contraindication pipeline finished",
		"run_id", runID,
		"medications", len(pc.Medications),
		"entries", len(summarized),
		"duration_ms", time.Since(start).Milliseconds())

	return summarized
}

// RunRaw produces only the fetch+classify stages, used by callers that
// want the unfiltered severity-tagged list.
func (p *Pipeline) RunRaw(ctx context.Context, medications []string) []Entry {
	return p.fetchAndClassify(ctx, medications, uuid.NewString())
}

// fetchAndClassify looks up every medication concurrently and classifies
// each result. Lookups are independent: a failed lookup degrades that one
// entry to UNKNOWN and the rest proceed. Output order matches input order.
func (p *Pipeline) fetchAndClassify(ctx context.Context, medications []string, runID string) []Entry {
	entries := make([]Entry, len(medications))

	var wg sync.WaitGroup
	for i, name := range medications {
		wg.Add(1)

		go func(i int, name string) {
			defer wg.Done()

			lookupCtx, cancel := context.WithTimeout(ctx, p.lookupTimeout)
			defer cancel()

			record, err := p.labels.GetDrugInfo(lookupCtx, name)
			if err != nil {
				logging.Warn("Label lookup degraded to UNKNOWN", "run_id", runID, "drug", name, "error", err)
			}
			entries[i] = NewEntry(name, record, err)
		}(i, name)
	}
	wg.Wait()

	return entries
}

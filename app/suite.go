package app

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"godrift/adapters/drift/tests"
	"godrift/domain/core"
	"godrift/domain/dataset"
	"godrift/domain/drift"
	"godrift/internal/errors"
)

// SmallSampleRows is the row count under which statistics get noisy
// enough to warrant a warning.
const SmallSampleRows = 1000

// DefaultConcurrency bounds the feature x variant fan-out. Every
// invocation is independent pure CPU work, so the batch parallelizes
// trivially.
const DefaultConcurrency = 4

// TestSpec selects one drift test variant with its configuration,
// applied to every feature in a run.
type TestSpec struct {
	Variant tests.Variant
	Options tests.Options
}

// DefaultSpecs returns the full battery with default thresholds.
func DefaultSpecs() []TestSpec {
	variants := tests.AllVariants()
	specs := make([]TestSpec, len(variants))
	for i, v := range variants {
		specs[i] = TestSpec{Variant: v}
	}
	return specs
}

// InvocationFailure records a single (test, feature) invocation that
// could not produce a ResultRecord. Failures never abort the rest of the
// batch.
type InvocationFailure struct {
	FeatureName string        `json:"feature_name"`
	Variant     tests.Variant `json:"variant"`
	Code        string        `json:"code"`
	Err         error         `json:"-"`
	Message     string        `json:"message"`
}

// RunOptions tunes a single suite run
type RunOptions struct {
	Features    []string // defaults to the feature set's numerical columns
	Concurrency int
}

// SuiteResult aggregates one run: concatenated records plus attributable
// per-invocation failures.
type SuiteResult struct {
	RunID     core.RunID           `json:"run_id"`
	StartedAt core.Timestamp       `json:"started_at"`
	RuntimeMs int64                `json:"runtime_ms"`
	Records   []drift.ResultRecord `json:"records"`
	Failures  []InvocationFailure  `json:"failures,omitempty"`
}

// AllPassed reports whether every invocation produced an OK verdict
func (r *SuiteResult) AllPassed() bool {
	if len(r.Failures) > 0 {
		return false
	}
	for _, rec := range r.Records {
		if !rec.Passed() {
			return false
		}
	}
	return true
}

// Suite runs a battery of drift test variants over the numerical features
// of a control and a treatment frame.
type Suite struct {
	control   *dataset.Frame
	treatment *dataset.Frame
	features  dataset.FeatureSet
	specs     []TestSpec
}

// NewSuite validates both frames and assembles a runnable suite
func NewSuite(control, treatment *dataset.Frame, features dataset.FeatureSet, specs []TestSpec) (*Suite, error) {
	if control == nil || treatment == nil {
		return nil, errors.InvalidInput("suite requires both a control and a treatment frame")
	}
	if len(specs) == 0 {
		return nil, errors.ConfigInvalid("suite requires at least one test spec")
	}
	if err := control.CheckHealth(); err != nil {
		return nil, errors.Wrap(err, "control frame failed health check")
	}
	if err := treatment.CheckHealth(); err != nil {
		return nil, errors.Wrap(err, "treatment frame failed health check")
	}

	if control.Rows() < SmallSampleRows || treatment.Rows() < SmallSampleRows {
		log.Printf("[Suite] small sample warning: control=%d treatment=%d rows, statistics may be unreliable below %d",
			control.Rows(), treatment.Rows(), SmallSampleRows)
	}

	return &Suite{
		control:   control,
		treatment: treatment,
		features:  features,
		specs:     specs,
	}, nil
}

// Run executes every (variant, feature) invocation, in parallel up to the
// configured concurrency, and aggregates the records. A failed invocation
// becomes a failure entry; it never takes down the batch.
func (s *Suite) Run(ctx context.Context, opts RunOptions) (*SuiteResult, error) {
	startTime := time.Now()

	features := opts.Features
	if len(features) == 0 {
		features = s.features.Numerical
	}
	if len(features) == 0 {
		return nil, errors.ConfigInvalid("no numerical features selected for the run")
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	result := &SuiteResult{
		RunID:     core.RunID(core.NewID()),
		StartedAt: core.NewTimestamp(startTime),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, spec := range s.specs {
		for _, feature := range features {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				record, err := s.runOne(gctx, spec, feature)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					result.Failures = append(result.Failures, InvocationFailure{
						FeatureName: feature,
						Variant:     spec.Variant,
						Code:        errors.GetCode(err),
						Err:         err,
						Message:     err.Error(),
					})
					return nil
				}
				result.Records = append(result.Records, record)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortRecords(result.Records)
	sortFailures(result.Failures)
	result.RuntimeMs = time.Since(startTime).Milliseconds()
	return result, nil
}

// runOne executes a single (variant, feature) invocation
func (s *Suite) runOne(ctx context.Context, spec TestSpec, feature string) (drift.ResultRecord, error) {
	if !s.features.IsNumerical(feature) {
		return drift.ResultRecord{}, errors.InvalidInput(fmt.Sprintf("feature %q is not mapped as numerical", feature))
	}
	control, ok := s.control.Column(feature)
	if !ok {
		return drift.ResultRecord{}, errors.InvalidInput(fmt.Sprintf("feature %q missing from control frame", feature))
	}
	treatment, ok := s.treatment.Column(feature)
	if !ok {
		return drift.ResultRecord{}, errors.InvalidInput(fmt.Sprintf("feature %q missing from treatment frame", feature))
	}

	test, err := tests.Build(spec.Variant, feature, spec.Options)
	if err != nil {
		return drift.ResultRecord{}, err
	}
	return test.Run(ctx, control, treatment)
}

// sortRecords orders records conclusion-descending (OK rows first), then
// by feature and test name for stable output.
func sortRecords(records []drift.ResultRecord) {
	sort.Slice(records, func(a, b int) bool {
		if records[a].Conclusion != records[b].Conclusion {
			return records[a].Conclusion > records[b].Conclusion
		}
		if records[a].FeatureName != records[b].FeatureName {
			return records[a].FeatureName < records[b].FeatureName
		}
		return records[a].TestName < records[b].TestName
	})
}

func sortFailures(failures []InvocationFailure) {
	sort.Slice(failures, func(a, b int) bool {
		if failures[a].FeatureName != failures[b].FeatureName {
			return failures[a].FeatureName < failures[b].FeatureName
		}
		return failures[a].Variant < failures[b].Variant
	})
}

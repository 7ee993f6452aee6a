package tests

import (
	"context"
	"fmt"

	"godrift/domain/core"
	"godrift/domain/drift"
	"godrift/internal/errors"
	"godrift/internal/numeric"
)

// Default threshold policy shared by the variants. Alpha guards the
// p-value tests; Border is the fixed empirical threshold for the
// divergence and distance tests (the industry-standard 0.1 for PSI).
const (
	DefaultAlpha  = 0.05
	DefaultBorder = 0.1

	// DefaultPSICutoff trims each sample's upper tail before PSI binning.
	DefaultPSICutoff = 0.95

	// MinStdNorm floors the Wasserstein normalizer so a near-constant
	// control sample cannot blow the normalized distance up to infinity.
	MinStdNorm = 0.001
)

// Test is the contract every drift test variant implements: one
// invocation against a (control, treatment) pair yields one complete
// ResultRecord or a coded error, never partial state.
type Test interface {
	Name() string
	Description() string
	Run(ctx context.Context, control, treatment []float64) (drift.ResultRecord, error)
}

// Variant identifies a drift test variant for configuration-time wiring.
// The set is closed; threshold policy and quantile support are data on
// the variant structs, not inherited behavior.
type Variant string

const (
	VariantKLDivergence      Variant = "kl_divergence"
	VariantPSI               Variant = "psi"
	VariantKolmogorovSmirnov Variant = "kolmogorov_smirnov"
	VariantMannWhitney       Variant = "mann_whitney"
	VariantMeanTTest         Variant = "mean_ttest"
	VariantWasserstein       Variant = "wasserstein"
)

// AllVariants lists every variant in reporting order.
func AllVariants() []Variant {
	return []Variant{
		VariantKLDivergence,
		VariantPSI,
		VariantKolmogorovSmirnov,
		VariantMannWhitney,
		VariantMeanTTest,
		VariantWasserstein,
	}
}

// SupportsQuantileCutoff reports whether a variant accepts upper-tail
// quantile trimming. The rank and ECDF tests run on the raw samples.
func SupportsQuantileCutoff(v Variant) bool {
	switch v {
	case VariantKLDivergence, VariantPSI, VariantWasserstein:
		return true
	default:
		return false
	}
}

// Options carries the per-invocation configuration for Build. Zero values
// mean "use the variant's default".
type Options struct {
	Alpha          float64
	Border         float64
	QuantileCutoff float64
	EqualVar       bool
	Resamples      int
	Seed           int64
}

// Build constructs a configured variant for one feature. Unsupported
// options are rejected here, at configuration time, so a misconfigured
// test never reaches computation.
func Build(v Variant, feature string, opts Options) (Test, error) {
	if opts.QuantileCutoff != 0 && !SupportsQuantileCutoff(v) {
		return nil, errors.UnsupportedOption(fmt.Sprintf("variant %q does not support a quantile cutoff", v))
	}
	if opts.QuantileCutoff != 0 && (opts.QuantileCutoff <= 0 || opts.QuantileCutoff >= 1) {
		return nil, errors.ConfigInvalid(fmt.Sprintf("quantile cutoff must be in (0, 1), got %g", opts.QuantileCutoff))
	}

	switch v {
	case VariantKLDivergence:
		t := NewKLDivergence(feature)
		if opts.Border != 0 {
			t.Border = opts.Border
		}
		t.QuantileCutoff = opts.QuantileCutoff
		return t, nil
	case VariantPSI:
		t := NewPSI(feature)
		if opts.Border != 0 {
			t.Border = opts.Border
		}
		if opts.QuantileCutoff != 0 {
			t.QuantileCutoff = opts.QuantileCutoff
		}
		return t, nil
	case VariantKolmogorovSmirnov:
		t := NewKolmogorovSmirnov(feature)
		if opts.Alpha != 0 {
			t.Alpha = opts.Alpha
		}
		return t, nil
	case VariantMannWhitney:
		t := NewMannWhitney(feature)
		if opts.Alpha != 0 {
			t.Alpha = opts.Alpha
		}
		return t, nil
	case VariantMeanTTest:
		t := NewMeanTTest(feature)
		if opts.Alpha != 0 {
			t.Alpha = opts.Alpha
		}
		if opts.Resamples != 0 {
			t.Resamples = opts.Resamples
		}
		t.EqualVar = opts.EqualVar
		t.Seed = opts.Seed
		return t, nil
	case VariantWasserstein:
		t := NewWasserstein(feature)
		if opts.Border != 0 {
			t.Border = opts.Border
		}
		t.QuantileCutoff = opts.QuantileCutoff
		return t, nil
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown drift test variant %q", v))
	}
}

// validatePair enforces the shared sample preconditions before any variant
// touches the data.
func validatePair(control, treatment []float64) error {
	if err := numeric.ValidateSample("control", control); err != nil {
		return err
	}
	return numeric.ValidateSample("treatment", treatment)
}

// newRecord assembles the uniform ResultRecord every variant returns.
func newRecord(feature, testName string, controlSummary, treatmentSummary numeric.Summary, pValue, statistic float64, conclusion drift.Conclusion) drift.ResultRecord {
	return drift.ResultRecord{
		FeatureName:   feature,
		FeatureType:   drift.FeatureNumerical,
		ControlMean:   controlSummary.Mean,
		TreatmentMean: treatmentSummary.Mean,
		ControlStd:    controlSummary.Std,
		TreatmentStd:  treatmentSummary.Std,
		TestName:      testName,
		PValue:        pValue,
		Statistic:     statistic,
		Conclusion:    conclusion,
		CreatedAt:     core.Now(),
	}
}

package tests

import (
	"context"
	"math"

	"godrift/domain/drift"
	"godrift/internal/errors"
	"godrift/internal/numeric"
)

// PSI computes the Population Stability Index, a symmetric KL-like
// divergence with an industry-standard 0.1 "stable" threshold. The upper
// tail of each sample is trimmed at its own 0.95 quantile by default.
type PSI struct {
	FeatureName    string
	Border         float64
	QuantileCutoff float64
}

// NewPSI creates a PSI test with the default border and tail cutoff
func NewPSI(feature string) *PSI {
	return &PSI{
		FeatureName:    feature,
		Border:         DefaultBorder,
		QuantileCutoff: DefaultPSICutoff,
	}
}

// Name returns the test name
func (t *PSI) Name() string {
	return "Population Stability Index"
}

// Description returns a human-readable description
func (t *PSI) Description() string {
	return "Symmetric divergence between binned control and treatment distributions"
}

// Run computes the PSI and classifies it against the border
func (t *PSI) Run(ctx context.Context, control, treatment []float64) (drift.ResultRecord, error) {
	if err := validatePair(control, treatment); err != nil {
		return drift.ResultRecord{}, err
	}

	controlMass, treatmentMass, err := numeric.BinAndNormalize(control, treatment, t.QuantileCutoff)
	if err != nil {
		return drift.ResultRecord{}, errors.Wrapf(err, "PSI binning failed for %q", t.FeatureName)
	}

	statistic := 0.0
	for i := range controlMass {
		statistic += (controlMass[i] - treatmentMass[i]) * math.Log(controlMass[i]/treatmentMass[i])
	}

	// Reported moments describe the raw samples, not the trimmed ones.
	controlSummary, err := numeric.Summarize(control)
	if err != nil {
		return drift.ResultRecord{}, err
	}
	treatmentSummary, err := numeric.Summarize(treatment)
	if err != nil {
		return drift.ResultRecord{}, err
	}

	conclusion := drift.ClassifyByStatistic(statistic, t.Border)
	return newRecord(t.FeatureName, t.Name(), controlSummary, treatmentSummary, drift.PValueNotApplicable, statistic, conclusion), nil
}

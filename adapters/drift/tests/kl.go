package tests

import (
	"context"
	"math"

	"godrift/domain/drift"
	"godrift/internal/errors"
	"godrift/internal/numeric"
)

// KLDivergence measures the relative entropy of the treatment mass from
// the control mass on shared adaptive bins. Control is the "true"
// distribution in the ratio.
type KLDivergence struct {
	FeatureName    string
	Border         float64
	QuantileCutoff float64 // 0 disables upper-tail trimming
}

// NewKLDivergence creates a KL divergence test with the default border
func NewKLDivergence(feature string) *KLDivergence {
	return &KLDivergence{
		FeatureName: feature,
		Border:      DefaultBorder,
	}
}

// Name returns the test name
func (t *KLDivergence) Name() string {
	return "KL Divergence"
}

// Description returns a human-readable description
func (t *KLDivergence) Description() string {
	return "Relative entropy between binned control and treatment distributions"
}

// Run computes the KL divergence and classifies it against the border
func (t *KLDivergence) Run(ctx context.Context, control, treatment []float64) (drift.ResultRecord, error) {
	if err := validatePair(control, treatment); err != nil {
		return drift.ResultRecord{}, err
	}

	controlMass, treatmentMass, err := numeric.BinAndNormalize(control, treatment, t.QuantileCutoff)
	if err != nil {
		return drift.ResultRecord{}, errors.Wrapf(err, "KL divergence binning failed for %q", t.FeatureName)
	}

	statistic := 0.0
	for i := range controlMass {
		statistic += controlMass[i] * math.Log(controlMass[i]/treatmentMass[i])
	}

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

package tests

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"godrift/domain/drift"
	"godrift/internal/numeric"
)

// KolmogorovSmirnov runs the two-sample Kolmogorov-Smirnov test on the
// raw samples. It has no quantile cutoff: the ECDF comparison wants the
// full distributions, tails included.
type KolmogorovSmirnov struct {
	FeatureName string
	Alpha       float64
}

// NewKolmogorovSmirnov creates a KS test with the default alpha
func NewKolmogorovSmirnov(feature string) *KolmogorovSmirnov {
	return &KolmogorovSmirnov{
		FeatureName: feature,
		Alpha:       DefaultAlpha,
	}
}

// Name returns the test name
func (t *KolmogorovSmirnov) Name() string {
	return "Kolmogorov-Smirnov test"
}

// Description returns a human-readable description
func (t *KolmogorovSmirnov) Description() string {
	return "Maximum distance between empirical CDFs of control and treatment"
}

// Run computes the KS statistic and its asymptotic two-sided p-value
func (t *KolmogorovSmirnov) Run(ctx context.Context, control, treatment []float64) (drift.ResultRecord, error) {
	if err := validatePair(control, treatment); err != nil {
		return drift.ResultRecord{}, err
	}

	sortedControl := append([]float64(nil), control...)
	sortedTreatment := append([]float64(nil), treatment...)
	sort.Float64s(sortedControl)
	sort.Float64s(sortedTreatment)

	statistic := stat.KolmogorovSmirnov(sortedControl, nil, sortedTreatment, nil)

	// Asymptotic p-value with the small-sample correction on the
	// effective sample size.
	n1 := float64(len(control))
	n2 := float64(len(treatment))
	en := math.Sqrt(n1 * n2 / (n1 + n2))
	pValue := numeric.KolmogorovPValue((en + 0.12 + 0.11/en) * statistic)

	controlSummary, err := numeric.Summarize(control)
	if err != nil {
		return drift.ResultRecord{}, err
	}
	treatmentSummary, err := numeric.Summarize(treatment)
	if err != nil {
		return drift.ResultRecord{}, err
	}

	conclusion := drift.ClassifyByPValue(pValue, t.Alpha)
	return newRecord(t.FeatureName, t.Name(), controlSummary, treatmentSummary, pValue, statistic, conclusion), nil
}

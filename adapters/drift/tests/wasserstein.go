package tests

import (
	"context"
	"sort"

	"godrift/domain/drift"
	"godrift/internal/errors"
	"godrift/internal/numeric"
)

// Wasserstein computes the first Wasserstein (earth-mover) distance
// between the samples and normalizes it by the control standard
// deviation, floored at StdFloor so a near-constant control cannot blow
// the ratio up.
type Wasserstein struct {
	FeatureName    string
	Border         float64
	QuantileCutoff float64 // 0 disables upper-tail trimming
	StdFloor       float64
}

// NewWasserstein creates a Wasserstein distance test with default thresholds
func NewWasserstein(feature string) *Wasserstein {
	return &Wasserstein{
		FeatureName: feature,
		Border:      DefaultBorder,
		StdFloor:    MinStdNorm,
	}
}

// Name returns the test name
func (t *Wasserstein) Name() string {
	return "Wasserstein distance"
}

// Description returns a human-readable description
func (t *Wasserstein) Description() string {
	return "Earth-mover distance between distributions, normalized by control spread"
}

// Run computes the normalized distance and classifies it against the border
func (t *Wasserstein) Run(ctx context.Context, control, treatment []float64) (drift.ResultRecord, error) {
	if err := validatePair(control, treatment); err != nil {
		return drift.ResultRecord{}, err
	}

	var err error
	if t.QuantileCutoff != 0 {
		control, err = numeric.TrimBelowQuantile(control, t.QuantileCutoff)
		if err != nil {
			return drift.ResultRecord{}, errors.Wrapf(err, "failed to trim control sample for %q", t.FeatureName)
		}
		treatment, err = numeric.TrimBelowQuantile(treatment, t.QuantileCutoff)
		if err != nil {
			return drift.ResultRecord{}, errors.Wrapf(err, "failed to trim treatment sample for %q", t.FeatureName)
		}
	}

	// When trimming applies, the reported moments and the normalizer both
	// describe the trimmed samples.
	controlSummary, err := numeric.Summarize(control)
	if err != nil {
		return drift.ResultRecord{}, err
	}
	treatmentSummary, err := numeric.Summarize(treatment)
	if err != nil {
		return drift.ResultRecord{}, err
	}

	distance := wassersteinDistance(control, treatment)

	norm := controlSummary.Std
	if norm < t.StdFloor {
		norm = t.StdFloor
	}
	statistic := distance / norm

	conclusion := drift.ClassifyByStatistic(statistic, t.Border)
	return newRecord(t.FeatureName, t.Name(), controlSummary, treatmentSummary, drift.PValueNotApplicable, statistic, conclusion), nil
}

// wassersteinDistance computes the first Wasserstein distance between two
// empirical distributions as the integral of |F1 - F2| over the merged
// support.
func wassersteinDistance(x, y []float64) float64 {
	sortedX := append([]float64(nil), x...)
	sortedY := append([]float64(nil), y...)
	sort.Float64s(sortedX)
	sort.Float64s(sortedY)

	merged := make([]float64, 0, len(sortedX)+len(sortedY))
	merged = append(merged, sortedX...)
	merged = append(merged, sortedY...)
	sort.Float64s(merged)

	nx := float64(len(sortedX))
	ny := float64(len(sortedY))

	distance := 0.0
	for i := 0; i < len(merged)-1; i++ {
		delta := merged[i+1] - merged[i]
		if delta == 0 {
			continue
		}
		cdfX := float64(upperBound(sortedX, merged[i])) / nx
		cdfY := float64(upperBound(sortedY, merged[i])) / ny
		diff := cdfX - cdfY
		if diff < 0 {
			diff = -diff
		}
		distance += diff * delta
	}
	return distance
}

// upperBound returns the count of elements in sorted data that are <= v.
func upperBound(data []float64, v float64) int {
	return sort.Search(len(data), func(i int) bool { return data[i] > v })
}

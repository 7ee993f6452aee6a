package tests

import (
	"context"
	"math"
	"sort"

	"godrift/domain/drift"
	"godrift/internal/errors"
	"godrift/internal/numeric"
)

// MannWhitney runs the two-sample Mann-Whitney U test on the raw samples
// using the tie-corrected normal approximation. Like KS, it takes no
// quantile cutoff.
type MannWhitney struct {
	FeatureName string
	Alpha       float64
}

// NewMannWhitney creates a Mann-Whitney test with the default alpha
func NewMannWhitney(feature string) *MannWhitney {
	return &MannWhitney{
		FeatureName: feature,
		Alpha:       DefaultAlpha,
	}
}

// Name returns the test name
func (t *MannWhitney) Name() string {
	return "Mann-Whitney test"
}

// Description returns a human-readable description
func (t *MannWhitney) Description() string {
	return "Rank-based comparison of control and treatment distributions"
}

// Run computes the U statistic and a continuity-corrected two-sided p-value
func (t *MannWhitney) Run(ctx context.Context, control, treatment []float64) (drift.ResultRecord, error) {
	if err := validatePair(control, treatment); err != nil {
		return drift.ResultRecord{}, err
	}

	n1 := float64(len(control))
	n2 := float64(len(treatment))
	n := n1 + n2

	pooled := make([]float64, 0, len(control)+len(treatment))
	pooled = append(pooled, control...)
	pooled = append(pooled, treatment...)
	ranks, tieTerm := midRanks(pooled)

	controlRankSum := 0.0
	for i := range control {
		controlRankSum += ranks[i]
	}
	u1 := controlRankSum - n1*(n1+1)/2

	mu := n1 * n2 / 2
	sigmaSq := n1 * n2 / 12 * ((n + 1) - tieTerm/(n*(n-1)))
	if sigmaSq <= 0 {
		return drift.ResultRecord{}, errors.DegenerateData("all pooled observations are tied, Mann-Whitney variance is zero")
	}

	// Continuity correction pulls the numerator half a rank toward zero.
	num := u1 - mu
	if num > 0 {
		num -= 0.5
	} else if num < 0 {
		num += 0.5
	}
	z := num / math.Sqrt(sigmaSq)
	pValue := numeric.NormalTwoTailedPValue(z)

	controlSummary, err := numeric.Summarize(control)
	if err != nil {
		return drift.ResultRecord{}, err
	}
	treatmentSummary, err := numeric.Summarize(treatment)
	if err != nil {
		return drift.ResultRecord{}, err
	}

	conclusion := drift.ClassifyByPValue(pValue, t.Alpha)
	return newRecord(t.FeatureName, t.Name(), controlSummary, treatmentSummary, pValue, u1, conclusion), nil
}

// midRanks assigns 1-based ranks with ties sharing their average rank.
// The second return value accumulates sum(t^3 - t) over tie groups for
// the variance correction.
func midRanks(data []float64) ([]float64, float64) {
	n := len(data)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return data[order[a]] < data[order[b]] })

	ranks := make([]float64, n)
	tieTerm := 0.0
	for i := 0; i < n; {
		j := i
		for j < n && data[order[j]] == data[order[i]] {
			j++
		}
		// Positions i..j-1 hold a tie group; they share the average rank.
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		size := float64(j - i)
		tieTerm += size*size*size - size
		i = j
	}
	return ranks, tieTerm
}

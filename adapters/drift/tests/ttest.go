package tests

import (
	"context"
	"math"

	"godrift/domain/drift"
	"godrift/internal/errors"
	"godrift/internal/numeric"
)

// MeanTTest compares mean location by running a two-sample t-test on the
// bootstrap-mean distributions of control and treatment, not on the raw
// samples. Bootstrapping the mean with small resamples deliberately
// tightens both distributions and inflates power; that resampling
// contract is part of the test's definition and must not be "fixed" into
// a textbook t-test.
type MeanTTest struct {
	FeatureName string
	Alpha       float64
	EqualVar    bool // pooled-variance Student's test instead of Welch's
	Resamples   int
	Fraction    float64
	Seed        int64
}

// NewMeanTTest creates a Welch's mean test with the default bootstrap contract
func NewMeanTTest(feature string) *MeanTTest {
	return &MeanTTest{
		FeatureName: feature,
		Alpha:       DefaultAlpha,
		Resamples:   numeric.DefaultBootstrapResamples,
		Fraction:    numeric.DefaultBootstrapFraction,
	}
}

// Name returns the test name
func (t *MeanTTest) Name() string {
	if t.EqualVar {
		return "Student t-test (sample mean)"
	}
	return "Welch's test (sample mean)"
}

// Description returns a human-readable description
func (t *MeanTTest) Description() string {
	return "Two-sample t-test on bootstrap distributions of the sample mean"
}

// Run bootstraps both means and classifies the t-test p-value against alpha
func (t *MeanTTest) Run(ctx context.Context, control, treatment []float64) (drift.ResultRecord, error) {
	if err := validatePair(control, treatment); err != nil {
		return drift.ResultRecord{}, err
	}

	// Both resamplers share the seed (common random numbers), so
	// identical inputs yield identical bootstrap distributions and an
	// exact no-difference result.
	controlMeans, err := numeric.MeanBootstrap(control, t.Resamples, t.Fraction, t.Seed)
	if err != nil {
		return drift.ResultRecord{}, errors.Wrapf(err, "control bootstrap failed for %q", t.FeatureName)
	}
	treatmentMeans, err := numeric.MeanBootstrap(treatment, t.Resamples, t.Fraction, t.Seed)
	if err != nil {
		return drift.ResultRecord{}, errors.Wrapf(err, "treatment bootstrap failed for %q", t.FeatureName)
	}

	statistic, pValue := twoSampleTTest(controlMeans, treatmentMeans, t.EqualVar)

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

// twoSampleTTest computes the t-statistic and two-tailed p-value for two
// independent samples: Welch's by default, pooled-variance Student's when
// equalVar is set.
func twoSampleTTest(x, y []float64, equalVar bool) (float64, float64) {
	n1 := float64(len(x))
	n2 := float64(len(y))
	m1, v1 := meanAndSampleVariance(x)
	m2, v2 := meanAndSampleVariance(y)

	var tStat, df float64
	if equalVar {
		pooled := ((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2)
		se := math.Sqrt(pooled * (1/n1 + 1/n2))
		if se == 0 {
			return zeroSpreadResult(m1, m2)
		}
		tStat = (m1 - m2) / se
		df = n1 + n2 - 2
	} else {
		se := math.Sqrt(v1/n1 + v2/n2)
		if se == 0 {
			return zeroSpreadResult(m1, m2)
		}
		tStat = (m1 - m2) / se
		// Welch-Satterthwaite degrees of freedom
		df = math.Pow(v1/n1+v2/n2, 2) / (math.Pow(v1/n1, 2)/(n1-1) + math.Pow(v2/n2, 2)/(n2-1))
	}

	return tStat, numeric.TTestPValue(tStat, df)
}

// zeroSpreadResult handles the degenerate case of two spread-free
// bootstrap distributions: equal means are a perfect match, unequal means
// an unambiguous difference.
func zeroSpreadResult(m1, m2 float64) (float64, float64) {
	if m1 == m2 {
		return 0, 1
	}
	return math.Inf(sign(m1 - m2)), 0
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

func meanAndSampleVariance(data []float64) (float64, float64) {
	n := float64(len(data))
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= n

	if n < 2 {
		return mean, 0
	}
	sumSq := 0.0
	for _, v := range data {
		d := v - mean
		sumSq += d * d
	}
	return mean, sumSq / (n - 1)
}

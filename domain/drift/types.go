package drift

import (
	"fmt"

	"godrift/domain/core"
)

// ============================================================================
// STABLE OUTPUT SCHEMA (Canonical, consumed verbatim by reporting)
// ============================================================================

// Conclusion is the binary drift verdict for one (test, feature) invocation
type Conclusion string

const (
	ConclusionOK     Conclusion = "OK"
	ConclusionFailed Conclusion = "FAILED"
)

// FeatureType classifies the feature a record refers to.
// Only numerical features are tested today; categorical support would add
// its own test family without touching this schema.
type FeatureType string

const (
	FeatureNumerical FeatureType = "numerical"
)

// PValueNotApplicable is the sentinel reported by tests that produce a
// distance or divergence rather than a p-value. Real p-values live in
// [0, 1], so a negative sentinel is unambiguous and stays JSON-safe.
const PValueNotApplicable = -1.0

// ResultRecord is the uniform output of every drift test variant.
// INVARIANTS:
// - Conclusion is derived only from Statistic (or PValue) vs the variant's
//   configured threshold, never set by hand
// - A record is created once per (test, feature) invocation and immutable
//   thereafter; aggregation concatenates records, it never mutates one
type ResultRecord struct {
	FeatureName   string         `json:"feature_name"`
	FeatureType   FeatureType    `json:"feature_type"`
	ControlMean   float64        `json:"control_mean"`
	TreatmentMean float64        `json:"treatment_mean"`
	ControlStd    float64        `json:"control_std"`
	TreatmentStd  float64        `json:"treatment_std"`
	TestName      string         `json:"test_name"`
	PValue        float64        `json:"p_value"`
	Statistic     float64        `json:"statistic"`
	Conclusion    Conclusion     `json:"conclusion"`
	CreatedAt     core.Timestamp `json:"test_datetime"`
}

// HasPValue reports whether the record carries an applicable p-value
func (r ResultRecord) HasPValue() bool {
	return r.PValue >= 0
}

// PValueDisplay renders the p-value for tabular output, with "-" standing
// in for tests that do not produce one
func (r ResultRecord) PValueDisplay() string {
	if !r.HasPValue() {
		return "-"
	}
	return fmt.Sprintf("%.4f", r.PValue)
}

// Passed reports whether the record concluded OK
func (r ResultRecord) Passed() bool {
	return r.Conclusion == ConclusionOK
}

// ClassifyByStatistic derives the verdict for divergence/distance tests:
// OK iff the statistic stays strictly below the configured border
func ClassifyByStatistic(statistic, border float64) Conclusion {
	if statistic < border {
		return ConclusionOK
	}
	return ConclusionFailed
}

// ClassifyByPValue derives the verdict for significance tests:
// OK iff the p-value is at or above the configured alpha
func ClassifyByPValue(pValue, alpha float64) Conclusion {
	if pValue >= alpha {
		return ConclusionOK
	}
	return ConclusionFailed
}

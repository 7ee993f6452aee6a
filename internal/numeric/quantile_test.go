package numeric

import (
	"testing"

	"github.com/montanaflynn/stats"

	"godrift/internal/errors"
	"godrift/internal/testkit"
)

func TestTrimBelowQuantile_Boundedness(t *testing.T) {
	data := testkit.NormalSample(500, 10, 3, 7)

	trimmed, err := TrimBelowQuantile(data, 0.9)
	if err != nil {
		t.Fatalf("trim: %v", err)
	}

	if len(trimmed) > len(data) {
		t.Fatalf("trimmed sample grew: %d > %d", len(trimmed), len(data))
	}
	if len(trimmed) == len(data) {
		t.Fatal("expected the 0.9 trim to remove upper-tail observations")
	}

	threshold, err := stats.Percentile(data, 90)
	if err != nil {
		t.Fatalf("percentile: %v", err)
	}
	for _, v := range trimmed {
		if v >= threshold {
			t.Fatalf("retained value %f is not strictly below the 0.9 quantile %f", v, threshold)
		}
	}
}

func TestTrimBelowQuantile_RejectsBadCutoff(t *testing.T) {
	data := []float64{1, 2, 3}

	for _, q := range []float64{0, 1, -0.5, 1.5} {
		if _, err := TrimBelowQuantile(data, q); errors.GetCode(err) != errors.CodeConfigInvalid {
			t.Errorf("cutoff %g: expected %s, got %v", q, errors.CodeConfigInvalid, err)
		}
	}
}

func TestTrimBelowQuantile_ConstantSampleDegenerates(t *testing.T) {
	// Every value equals the quantile, so a strict cut removes everything.
	data := testkit.ConstantSample(50, 3.14)

	_, err := TrimBelowQuantile(data, 0.5)
	if errors.GetCode(err) != errors.CodeDegenerateData {
		t.Fatalf("expected %s for constant sample, got %v", errors.CodeDegenerateData, err)
	}
}

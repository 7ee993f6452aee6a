package tests

import (
	"context"
	"math"
	"testing"

	"godrift/domain/drift"
	"godrift/internal/errors"
	"godrift/internal/testkit"
)

func TestMannWhitney_IdenticalSamples(t *testing.T) {
	sample := testkit.NormalSample(1000, 0, 1, 7)

	record, err := NewMannWhitney("f").Run(context.Background(), sample, sample)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Identical samples split ranks evenly: U sits exactly at its mean
	// and the p-value is 1.
	if record.PValue != 1.0 {
		t.Errorf("identical samples must yield p=1, got %f", record.PValue)
	}
	n := float64(len(sample))
	if record.Statistic != n*n/2 {
		t.Errorf("expected U at its mean %f, got %f", n*n/2, record.Statistic)
	}
	if record.Conclusion != drift.ConclusionOK {
		t.Errorf("expected OK, got %s", record.Conclusion)
	}
}

func TestMannWhitney_ShiftedMeanFails(t *testing.T) {
	control := testkit.NormalSample(1000, 0, 1, 7)
	treatment := testkit.NormalSample(1000, 3, 1, 8)

	record, err := NewMannWhitney("f").Run(context.Background(), control, treatment)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if record.Conclusion != drift.ConclusionFailed {
		t.Errorf("three-sigma shift must fail, got %s (p=%f)", record.Conclusion, record.PValue)
	}
	if record.PValue > 1e-6 {
		t.Errorf("expected p~0, got %g", record.PValue)
	}
}

func TestMannWhitney_AllTiedDegenerates(t *testing.T) {
	control := testkit.ConstantSample(50, 1)
	treatment := testkit.ConstantSample(50, 1)

	_, err := NewMannWhitney("f").Run(context.Background(), control, treatment)
	if errors.GetCode(err) != errors.CodeDegenerateData {
		t.Fatalf("expected %s when every observation ties, got %v", errors.CodeDegenerateData, err)
	}
}

func TestMidRanks_TiesShareAverageRank(t *testing.T) {
	ranks, tieTerm := midRanks([]float64{10, 20, 20, 30})

	want := []float64{1, 2.5, 2.5, 4}
	for i := range want {
		if math.Abs(ranks[i]-want[i]) > 1e-12 {
			t.Errorf("rank %d: expected %f, got %f", i, want[i], ranks[i])
		}
	}
	// One tie group of size 2: 2^3 - 2 = 6
	if tieTerm != 6 {
		t.Errorf("expected tie term 6, got %f", tieTerm)
	}
}

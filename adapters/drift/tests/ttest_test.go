package tests

import (
	"context"
	"math"
	"testing"

	"godrift/domain/drift"
	"godrift/internal/testkit"
)

func TestMeanTTest_IdenticalSamples(t *testing.T) {
	sample := testkit.NormalSample(1000, 0, 1, 7)

	record, err := NewMeanTTest("f").Run(context.Background(), sample, sample)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Shared bootstrap seeds make the two mean distributions identical,
	// so the no-difference result is exact, not merely likely.
	if record.Statistic != 0 {
		t.Errorf("identical samples must yield t=0 exactly, got %f", record.Statistic)
	}
	if record.PValue != 1.0 {
		t.Errorf("identical samples must yield p=1 exactly, got %f", record.PValue)
	}
	if record.Conclusion != drift.ConclusionOK {
		t.Errorf("expected OK, got %s", record.Conclusion)
	}
}

func TestMeanTTest_ShiftedMeanFails(t *testing.T) {
	control := testkit.NormalSample(1000, 0, 1, 7)
	treatment := testkit.NormalSample(1000, 0.5, 1, 8)

	record, err := NewMeanTTest("f").Run(context.Background(), control, treatment)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Bootstrapping the mean shrinks its spread, so even a half-sigma
	// shift is overwhelming evidence.
	if record.Conclusion != drift.ConclusionFailed {
		t.Errorf("half-sigma shift must fail, got %s (p=%f)", record.Conclusion, record.PValue)
	}
	if record.PValue > 1e-6 {
		t.Errorf("expected p~0, got %g", record.PValue)
	}
}

func TestMeanTTest_EqualVarSwitchesName(t *testing.T) {
	welch := NewMeanTTest("f")
	if welch.Name() != "Welch's test (sample mean)" {
		t.Errorf("unexpected Welch name %q", welch.Name())
	}

	student := NewMeanTTest("f")
	student.EqualVar = true
	if student.Name() != "Student t-test (sample mean)" {
		t.Errorf("unexpected Student name %q", student.Name())
	}
}

func TestMeanTTest_ConstantSamples(t *testing.T) {
	control := testkit.ConstantSample(100, 5)
	treatment := testkit.ConstantSample(100, 5)

	record, err := NewMeanTTest("f").Run(context.Background(), control, treatment)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if record.PValue != 1.0 || record.Conclusion != drift.ConclusionOK {
		t.Errorf("equal constants must match exactly, got p=%f %s", record.PValue, record.Conclusion)
	}

	shifted := testkit.ConstantSample(100, 6)
	record, err = NewMeanTTest("f").Run(context.Background(), control, shifted)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if record.PValue != 0 || record.Conclusion != drift.ConclusionFailed {
		t.Errorf("distinct constants must fail with p=0, got p=%f %s", record.PValue, record.Conclusion)
	}
}

func TestTwoSampleTTest_WelchVsStudent(t *testing.T) {
	x := testkit.NormalSample(500, 0, 1, 11)
	y := testkit.NormalSample(500, 0, 1, 12)

	welchT, welchP := twoSampleTTest(x, y, false)
	studentT, studentP := twoSampleTTest(x, y, true)

	// With equal sample sizes both forms give the same t-statistic; only
	// the degrees of freedom, and hence the p-value, differ slightly.
	if math.Abs(welchT-studentT) > 1e-9 {
		t.Errorf("equal-n t-statistics should agree: %f vs %f", welchT, studentT)
	}
	if welchP < 0 || welchP > 1 || studentP < 0 || studentP > 1 {
		t.Errorf("p-values outside [0,1]: %f, %f", welchP, studentP)
	}
}

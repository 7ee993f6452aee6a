package numeric

import (
	"math"
	"testing"
)

func TestKolmogorovPValue_Limits(t *testing.T) {
	if p := KolmogorovPValue(0); p != 1.0 {
		t.Errorf("zero statistic must yield p=1, got %f", p)
	}
	if p := KolmogorovPValue(5); p > 1e-10 {
		t.Errorf("large statistic must yield p~0, got %g", p)
	}
}

func TestKolmogorovPValue_Monotone(t *testing.T) {
	prev := 1.0
	for _, lambda := range []float64{0.3, 0.6, 0.9, 1.2, 1.8, 2.5} {
		p := KolmogorovPValue(lambda)
		if p < 0 || p > 1 {
			t.Fatalf("p-value %f outside [0,1] at lambda=%f", p, lambda)
		}
		if p > prev {
			t.Fatalf("p-value not decreasing at lambda=%f: %f > %f", lambda, p, prev)
		}
		prev = p
	}
}

func TestKolmogorovPValue_KnownValue(t *testing.T) {
	// Q(1.0) ~ 0.27, a standard reference point for the KS distribution.
	p := KolmogorovPValue(1.0)
	if math.Abs(p-0.27) > 0.01 {
		t.Errorf("Q(1.0) should be about 0.27, got %f", p)
	}
}

func TestTTestPValue(t *testing.T) {
	if p := TTestPValue(0, 100); math.Abs(p-1.0) > 1e-12 {
		t.Errorf("t=0 must yield p=1, got %f", p)
	}
	if p := TTestPValue(10, 100); p > 1e-6 {
		t.Errorf("t=10 must be overwhelmingly significant, got %g", p)
	}
	if p, q := TTestPValue(2.5, 30), TTestPValue(-2.5, 30); math.Abs(p-q) > 1e-12 {
		t.Errorf("two-tailed p must be symmetric: %f vs %f", p, q)
	}
	if p := TTestPValue(3, 0); p != 1.0 {
		t.Errorf("non-positive df must yield p=1, got %f", p)
	}
}

func TestNormalTwoTailedPValue(t *testing.T) {
	if p := NormalTwoTailedPValue(0); math.Abs(p-1.0) > 1e-12 {
		t.Errorf("z=0 must yield p=1, got %f", p)
	}
	// z=1.96 is the canonical 5% two-tailed boundary
	if p := NormalTwoTailedPValue(1.96); math.Abs(p-0.05) > 0.001 {
		t.Errorf("z=1.96 should yield p~0.05, got %f", p)
	}
}

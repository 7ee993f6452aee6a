package numeric

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Two-tailed p-value helpers for the drift tests. Exact distributions come
// from gonum; only the Kolmogorov survival function is computed here
// because gonum does not ship it.

// TTestPValue computes the two-tailed p-value for a t-statistic using
// Student's t-distribution with the given degrees of freedom.
func TTestPValue(tStatistic, degreesOfFreedom float64) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	return 2 * (1 - tDist.CDF(math.Abs(tStatistic)))
}

// NormalTwoTailedPValue computes the two-tailed p-value for a z-statistic
// under the standard normal distribution.
func NormalTwoTailedPValue(z float64) float64 {
	p := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
	if p > 1 {
		p = 1
	}
	return p
}

// KolmogorovPValue evaluates the asymptotic two-sided Kolmogorov-Smirnov
// survival function
//
//	Q(lambda) = 2 * sum_{k>=1} (-1)^(k-1) * exp(-2 k^2 lambda^2)
//
// The series alternates and converges fast for lambda > 0; a zero
// statistic means the empirical CDFs coincide and the p-value is 1.
func KolmogorovPValue(lambda float64) float64 {
	if lambda <= 0 {
		return 1.0
	}

	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := math.Exp(-2 * float64(k) * float64(k) * lambda * lambda)
		sum += sign * term
		if term < 1e-12 {
			break
		}
		sign = -sign
	}

	p := 2 * sum
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

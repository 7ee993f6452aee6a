package numeric

import (
	"math"
	"sort"

	"godrift/internal/errors"
)

// DefaultMassFloor caps the replacement value for empty histogram bins.
// Smoothing never injects more mass than this into a single bin.
const DefaultMassFloor = 1e-4

// massFloorScale divides the smallest observed nonzero mass when that mass
// is already at or below DefaultMassFloor, so the floor tracks the data's
// own granularity instead of a fixed constant.
const massFloorScale = 1e6

// DoaneEdges computes shared histogram bin edges for a pooled sample using
// Doane's rule, which widens the bin count for skewed data:
//
//	k = 1 + log2(n) + log2(1 + |g1|/sigma_g1)
//
// with g1 the population skewness. Both samples are histogrammed on these
// edges so their masses are directly comparable.
func DoaneEdges(pooled []float64) ([]float64, error) {
	n := len(pooled)
	if n == 0 {
		return nil, errors.InvalidSample("cannot derive bin edges from an empty sample")
	}

	min, max := pooled[0], pooled[0]
	for _, v := range pooled[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return nil, errors.DegenerateData("pooled sample is constant, histogram would collapse to a single edge")
	}

	k := 1 + math.Log2(float64(n))
	if n > 2 {
		mean := 0.0
		for _, v := range pooled {
			mean += v
		}
		mean /= float64(n)

		sigma := 0.0
		for _, v := range pooled {
			d := v - mean
			sigma += d * d
		}
		sigma = math.Sqrt(sigma / float64(n))

		if sigma > 0 {
			g1 := 0.0
			for _, v := range pooled {
				d := (v - mean) / sigma
				g1 += d * d * d
			}
			g1 /= float64(n)

			sg1 := math.Sqrt(6 * float64(n-2) / (float64(n+1) * float64(n+3)))
			k += math.Log2(1 + math.Abs(g1)/sg1)
		}
	}

	bins := int(math.Ceil(k))
	if bins < 1 {
		bins = 1
	}

	edges := make([]float64, bins+1)
	width := (max - min) / float64(bins)
	for i := 0; i <= bins; i++ {
		edges[i] = min + float64(i)*width
	}
	edges[bins] = max
	return edges, nil
}

// HistogramMass histograms a sample on the given edges and divides each
// bin count by the sample's own size, yielding probability mass per bin
// (not density). Bins are left-closed; the last bin also includes the
// right edge. Values outside the edge range are dropped, which happens
// when per-sample trimming leaves the samples on different ranges.
func HistogramMass(data, edges []float64) ([]float64, error) {
	if len(edges) < 2 {
		return nil, errors.DegenerateData("histogram requires at least two bin edges")
	}
	if len(data) == 0 {
		return nil, errors.InvalidSample("cannot histogram an empty sample")
	}

	mass := make([]float64, len(edges)-1)
	lo, hi := edges[0], edges[len(edges)-1]
	for _, v := range data {
		if v < lo || v > hi {
			continue
		}
		i := sort.SearchFloat64s(edges, v)
		if i == len(edges) || edges[i] != v {
			i--
		}
		if i == len(mass) {
			i--
		}
		mass[i]++
	}

	size := float64(len(data))
	for i := range mass {
		mass[i] /= size
	}
	return mass, nil
}

// SmoothZeroMass replaces zero entries of a probability mass vector with a
// strictly positive floor derived from the vector's smallest nonzero mass.
// Divergence metrics downstream take ratios and logarithms of these
// masses, so every entry must be strictly positive. Returns a new vector.
func SmoothZeroMass(mass []float64) ([]float64, error) {
	minPositive := math.Inf(1)
	for _, m := range mass {
		if m > 0 && m < minPositive {
			minPositive = m
		}
	}
	if math.IsInf(minPositive, 1) {
		return nil, errors.DegenerateData("probability mass vector has no positive entries")
	}

	floor := DefaultMassFloor
	if minPositive <= DefaultMassFloor {
		floor = minPositive / massFloorScale
	}

	smoothed := make([]float64, len(mass))
	for i, m := range mass {
		if m == 0 {
			smoothed[i] = floor
		} else {
			smoothed[i] = m
		}
	}
	return smoothed, nil
}

// BinAndNormalize derives shared Doane bin edges from the pooled (and
// optionally per-sample quantile-trimmed) samples, then returns each
// sample's smoothed probability mass on those edges. A quantileCutoff of
// zero disables trimming.
func BinAndNormalize(control, treatment []float64, quantileCutoff float64) ([]float64, []float64, error) {
	var err error
	if quantileCutoff != 0 {
		control, err = TrimBelowQuantile(control, quantileCutoff)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to trim control sample")
		}
		treatment, err = TrimBelowQuantile(treatment, quantileCutoff)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to trim treatment sample")
		}
	}

	pooled := make([]float64, 0, len(control)+len(treatment))
	pooled = append(pooled, control...)
	pooled = append(pooled, treatment...)

	edges, err := DoaneEdges(pooled)
	if err != nil {
		return nil, nil, err
	}

	controlMass, err := HistogramMass(control, edges)
	if err != nil {
		return nil, nil, err
	}
	treatmentMass, err := HistogramMass(treatment, edges)
	if err != nil {
		return nil, nil, err
	}

	controlMass, err = SmoothZeroMass(controlMass)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to smooth control mass")
	}
	treatmentMass, err = SmoothZeroMass(treatmentMass)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to smooth treatment mass")
	}

	return controlMass, treatmentMass, nil
}

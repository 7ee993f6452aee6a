package numeric

import (
	"fmt"
	"math"
	"math/rand"

	"godrift/internal/errors"
)

// Bootstrap defaults. Each resample draws a fifth of the sample with
// replacement; the small fraction deliberately tightens the resulting
// mean distribution, and the mean-comparison test depends on exactly this
// contract.
const (
	DefaultBootstrapResamples = 10_000
	DefaultBootstrapFraction  = 0.2
)

// MeanBootstrap draws `resamples` subsamples of size round(fraction*n)
// with replacement from data and records each subsample's mean, producing
// an empirical sampling distribution of the mean. The rand source is
// seeded so a given (data, seed) pair is reproducible.
func MeanBootstrap(data []float64, resamples int, fraction float64, seed int64) ([]float64, error) {
	if len(data) == 0 {
		return nil, errors.InvalidSample("cannot bootstrap an empty sample")
	}
	if resamples <= 0 {
		return nil, errors.ConfigInvalid(fmt.Sprintf("bootstrap resample count must be positive, got %d", resamples))
	}
	if fraction <= 0 || fraction > 1 {
		return nil, errors.ConfigInvalid(fmt.Sprintf("bootstrap fraction must be in (0, 1], got %g", fraction))
	}

	n := len(data)
	size := int(math.Round(fraction * float64(n)))
	if size < 1 {
		size = 1
	}

	rng := rand.New(rand.NewSource(seed))
	means := make([]float64, resamples)
	for i := range means {
		sum := 0.0
		for j := 0; j < size; j++ {
			sum += data[rng.Intn(n)]
		}
		means[i] = sum / float64(size)
	}
	return means, nil
}

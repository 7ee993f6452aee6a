package numeric

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"godrift/internal/errors"
)

// Summary holds the per-sample moments reported with every drift verdict.
// Population (not sample) moments, matching how the rest of the pipeline
// summarizes columns.
type Summary struct {
	Mean float64
	Std  float64
	Var  float64
}

// Summarize computes the population mean, standard deviation and variance
// of a sample. Empty input is a precondition violation, not a recoverable
// condition.
func Summarize(data []float64) (Summary, error) {
	if len(data) == 0 {
		return Summary{}, errors.InvalidSample("cannot summarize an empty sample")
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, errors.Wrap(err, "failed to compute mean")
	}

	std, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return Summary{}, errors.Wrap(err, "failed to compute standard deviation")
	}

	variance, err := stats.PopulationVariance(data)
	if err != nil {
		return Summary{}, errors.Wrap(err, "failed to compute variance")
	}

	return Summary{Mean: mean, Std: std, Var: variance}, nil
}

// ValidateSample rejects empty samples and non-finite values up front so
// every downstream computation can assume finite numeric input.
func ValidateSample(label string, data []float64) error {
	if len(data) == 0 {
		return errors.InvalidSample(fmt.Sprintf("%s sample is empty", label))
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.InvalidSample(fmt.Sprintf("%s sample contains non-finite value at index %d", label, i))
		}
	}
	return nil
}

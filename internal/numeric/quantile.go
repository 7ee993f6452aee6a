package numeric

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"godrift/internal/errors"
)

// TrimBelowQuantile returns the observations strictly below the sample's
// own q-quantile. Trimming is per-sample, never joint: control and
// treatment are each cut against their own distribution, which can leave
// the two filtered samples spanning different numeric ranges. That is
// intentional upper-tail outlier suppression, not range alignment.
func TrimBelowQuantile(data []float64, q float64) ([]float64, error) {
	if q <= 0 || q >= 1 {
		return nil, errors.ConfigInvalid(fmt.Sprintf("quantile cutoff must be in (0, 1), got %g", q))
	}
	if len(data) == 0 {
		return nil, errors.InvalidSample("cannot trim an empty sample")
	}

	threshold, err := stats.Percentile(data, q*100)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute quantile threshold")
	}

	trimmed := make([]float64, 0, len(data))
	for _, v := range data {
		if v < threshold {
			trimmed = append(trimmed, v)
		}
	}

	if len(trimmed) == 0 {
		return nil, errors.DegenerateData(fmt.Sprintf("quantile trim at %g removed every observation", q))
	}
	return trimmed, nil
}

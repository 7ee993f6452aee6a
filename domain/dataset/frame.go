package dataset

import (
	"fmt"
	"math"
	"strings"

	"godrift/internal/errors"
)

// Frame is an ordered collection of equal-length numeric feature columns,
// the in-memory form both drift samples arrive in.
type Frame struct {
	order   []string
	columns map[string][]float64
}

// NewFrame creates an empty frame
func NewFrame() *Frame {
	return &Frame{columns: make(map[string][]float64)}
}

// AddColumn appends a named feature column. All columns must share the
// same length.
func (f *Frame) AddColumn(name string, values []float64) error {
	if strings.TrimSpace(name) == "" {
		return errors.InvalidInput("feature name cannot be empty")
	}
	if _, exists := f.columns[name]; exists {
		return errors.InvalidInput(fmt.Sprintf("duplicate feature %q", name))
	}
	if len(f.order) > 0 && len(values) != f.Rows() {
		return errors.InvalidInput(fmt.Sprintf("feature %q has %d rows, frame has %d", name, len(values), f.Rows()))
	}
	f.order = append(f.order, name)
	f.columns[name] = values
	return nil
}

// Column returns the named feature column. Callers must treat the slice
// as read-only.
func (f *Frame) Column(name string) ([]float64, bool) {
	col, ok := f.columns[name]
	return col, ok
}

// Features returns the feature names in insertion order
func (f *Frame) Features() []string {
	return append([]string(nil), f.order...)
}

// Rows returns the number of observations per column
func (f *Frame) Rows() int {
	if len(f.order) == 0 {
		return 0
	}
	return len(f.columns[f.order[0]])
}

// CheckHealth rejects frames carrying NaN or infinite values. Missing
// values must be resolved by the caller before drift testing; they are
// never silently coerced here.
func (f *Frame) CheckHealth() error {
	for _, name := range f.order {
		for i, v := range f.columns[name] {
			if math.IsNaN(v) {
				return errors.InvalidInput(fmt.Sprintf("feature %q has NaN at row %d, replace missing values first", name, i))
			}
			if math.IsInf(v, 0) {
				return errors.InvalidInput(fmt.Sprintf("feature %q has infinite value at row %d", name, i))
			}
		}
	}
	return nil
}

// FeatureSet maps dataset columns onto their roles for a drift run.
type FeatureSet struct {
	Target      string
	Categorical []string
	Numerical   []string
}

// Describe renders the feature mapping as a small parameter table
func (s FeatureSet) Describe() string {
	join := func(names []string) string {
		if len(names) == 0 {
			return "None"
		}
		return strings.Join(names, ", ")
	}
	target := s.Target
	if target == "" {
		target = "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Target:               %s\n", target)
	fmt.Fprintf(&b, "Categorical Features: %s\n", join(s.Categorical))
	fmt.Fprintf(&b, "Numerical Features:   %s\n", join(s.Numerical))
	return b.String()
}

// IsNumerical reports whether the named feature is mapped as numerical
func (s FeatureSet) IsNumerical(name string) bool {
	for _, n := range s.Numerical {
		if n == name {
			return true
		}
	}
	return false
}

package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"godrift/domain/drift"
)

// RenderTable renders drift records as a plain-text table with the frozen
// column order of the ResultRecord schema. Numeric columns are rounded to
// four decimals for readability; the records themselves are untouched.
func RenderTable(records []drift.ResultRecord) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "FEATURE\tTYPE\tCONTROL MEAN\tTREATMENT MEAN\tCONTROL STD\tTREATMENT STD\tTEST\tP-VALUE\tSTATISTIC\tCONCLUSION")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.4f\t%.4f\t%s\t%s\t%.4f\t%s\n",
			r.FeatureName,
			r.FeatureType,
			r.ControlMean,
			r.TreatmentMean,
			r.ControlStd,
			r.TreatmentStd,
			r.TestName,
			r.PValueDisplay(),
			r.Statistic,
			r.Conclusion,
		)
	}
	w.Flush()
	return b.String()
}

// Summarize renders a one-line verdict count for log output
func Summarize(records []drift.ResultRecord) string {
	ok := 0
	for _, r := range records {
		if r.Passed() {
			ok++
		}
	}
	return fmt.Sprintf("%d/%d checks OK", ok, len(records))
}

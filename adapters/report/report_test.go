package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"godrift/app"
	"godrift/domain/core"
	"godrift/domain/drift"
)

func sampleResult() *app.SuiteResult {
	return &app.SuiteResult{
		RunID:     "run-1",
		StartedAt: core.NewTimestamp(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		RuntimeMs: 42,
		Records: []drift.ResultRecord{
			{
				FeatureName: "age", FeatureType: drift.FeatureNumerical,
				ControlMean: 40.1234, TreatmentMean: 40.5678,
				ControlStd: 10, TreatmentStd: 10.5,
				TestName: "Kolmogorov-Smirnov test",
				PValue:   0.8312, Statistic: 0.0210,
				Conclusion: drift.ConclusionOK,
			},
			{
				FeatureName: "income", FeatureType: drift.FeatureNumerical,
				ControlMean: 50000, TreatmentMean: 80000,
				ControlStd: 8000, TreatmentStd: 8000,
				TestName: "Wasserstein distance",
				PValue:   drift.PValueNotApplicable, Statistic: 3.75,
				Conclusion: drift.ConclusionFailed,
			},
		},
		Failures: []app.InvocationFailure{
			{FeatureName: "flat", Variant: "psi", Code: "DEGENERATE_DATA", Message: "constant sample"},
		},
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sampleResult().Records)

	if !strings.Contains(out, "FEATURE") || !strings.Contains(out, "CONCLUSION") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "40.1234") {
		t.Errorf("means must round to four decimals:\n%s", out)
	}
	if !strings.Contains(out, "0.8312") {
		t.Errorf("p-value missing:\n%s", out)
	}

	// The distance record renders a dash, not its sentinel value.
	if strings.Contains(out, "-1.0000") {
		t.Errorf("sentinel p-value leaked into output:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected header plus one line per record, got %d lines", len(lines))
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize(sampleResult().Records); got != "1/2 checks OK" {
		t.Errorf("unexpected summary %q", got)
	}
	if got := Summarize(nil); got != "0/0 checks OK" {
		t.Errorf("unexpected empty summary %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(sampleResult())

	for _, want := range []string{
		"# Drift Report",
		"`run-1`",
		"1/2 checks OK",
		"| age |",
		"| - |", // sentinel p-value
		"FAILED",
		"## Failed invocations",
		"DEGENERATE_DATA",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdown_NoFailuresSection(t *testing.T) {
	result := sampleResult()
	result.Failures = nil

	if strings.Contains(RenderMarkdown(result), "Failed invocations") {
		t.Error("failure section should be omitted for a clean run")
	}
}

func TestRenderHTML(t *testing.T) {
	out := string(RenderHTML(sampleResult()))

	for _, want := range []string{"<html", "<table>", "Drift Report", "Wasserstein distance"} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteXLSX(path, sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus two records, got %d rows", len(rows))
	}
	if rows[0][0] != "feature_name" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "age" || rows[2][0] != "income" {
		t.Errorf("records out of order: %v / %v", rows[1][0], rows[2][0])
	}

	// Wasserstein has no p-value, so its cell carries the dash.
	if rows[2][7] != "-" {
		t.Errorf("expected dash for the sentinel p-value, got %q", rows[2][7])
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"godrift/adapters/report"
	"godrift/adapters/tabular"
	"godrift/app"
	"godrift/domain/dataset"
	"godrift/internal/config"
)

func main() {
	// Load .env file if present (ignore errors - env vars might be set directly)
	_ = godotenv.Load()

	controlPath := flag.String("control", "", "path to the control (baseline) CSV/XLSX file")
	treatmentPath := flag.String("treatment", "", "path to the treatment (current) CSV/XLSX file")
	features := flag.String("features", "", "comma-separated feature subset (default: all shared numeric columns)")
	flag.Parse()

	if *controlPath == "" || *treatmentPath == "" {
		fmt.Fprintln(os.Stderr, "usage: driftrun -control control.csv -treatment treatment.csv [-features a,b,c]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[driftrun] configuration error: %v", err)
	}

	control, err := tabular.NewReader(*controlPath).ReadFrame()
	if err != nil {
		log.Fatalf("[driftrun] failed to read control data: %v", err)
	}
	treatment, err := tabular.NewReader(*treatmentPath).ReadFrame()
	if err != nil {
		log.Fatalf("[driftrun] failed to read treatment data: %v", err)
	}

	featureSet := dataset.FeatureSet{Numerical: sharedFeatures(control, treatment)}
	log.Printf("[driftrun] feature mapping:\n%s", featureSet.Describe())

	specs := app.DefaultSpecs()
	for i := range specs {
		specs[i].Options.Alpha = cfg.Drift.Alpha
		specs[i].Options.Border = cfg.Drift.Border
		specs[i].Options.Seed = cfg.Drift.Seed
		specs[i].Options.Resamples = cfg.Drift.BootstrapResamples
	}

	suite, err := app.NewSuite(control, treatment, featureSet, specs)
	if err != nil {
		log.Fatalf("[driftrun] failed to assemble suite: %v", err)
	}

	result, err := suite.Run(context.Background(), app.RunOptions{
		Features:    splitFeatures(*features),
		Concurrency: cfg.Drift.Concurrency,
	})
	if err != nil {
		log.Fatalf("[driftrun] run failed: %v", err)
	}

	fmt.Print(report.RenderTable(result.Records))
	log.Printf("[driftrun] run %s finished in %dms: %s", result.RunID, result.RuntimeMs, report.Summarize(result.Records))
	for _, f := range result.Failures {
		log.Printf("[driftrun] invocation failed: feature=%s variant=%s code=%s: %s", f.FeatureName, f.Variant, f.Code, f.Message)
	}

	if cfg.Report.XLSXPath != "" {
		if err := report.WriteXLSX(cfg.Report.XLSXPath, result); err != nil {
			log.Fatalf("[driftrun] failed to write xlsx report: %v", err)
		}
		log.Printf("[driftrun] wrote %s", cfg.Report.XLSXPath)
	}
	if cfg.Report.HTMLPath != "" {
		if err := os.WriteFile(cfg.Report.HTMLPath, report.RenderHTML(result), 0o644); err != nil {
			log.Fatalf("[driftrun] failed to write html report: %v", err)
		}
		log.Printf("[driftrun] wrote %s", cfg.Report.HTMLPath)
	}

	if !result.AllPassed() {
		os.Exit(1)
	}
}

// sharedFeatures returns the numeric columns present in both frames, in
// control-frame order.
func sharedFeatures(control, treatment *dataset.Frame) []string {
	shared := make([]string, 0)
	for _, name := range control.Features() {
		if _, ok := treatment.Column(name); ok {
			shared = append(shared, name)
		}
	}
	return shared
}

func splitFeatures(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	features := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			features = append(features, trimmed)
		}
	}
	return features
}

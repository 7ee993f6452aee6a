package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"godrift/app"
)

// RenderMarkdown renders a suite result as a shareable markdown report:
// run metadata, the record table, and any per-invocation failures.
func RenderMarkdown(result *app.SuiteResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Drift Report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", result.RunID)
	fmt.Fprintf(&b, "- Started: %s\n", result.StartedAt)
	fmt.Fprintf(&b, "- Runtime: %d ms\n", result.RuntimeMs)
	fmt.Fprintf(&b, "- Verdict: %s\n\n", Summarize(result.Records))

	b.WriteString("| Feature | Type | Control Mean | Treatment Mean | Control Std | Treatment Std | Test | P-Value | Statistic | Conclusion |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|---|\n")
	for _, r := range result.Records {
		fmt.Fprintf(&b, "| %s | %s | %.4f | %.4f | %.4f | %.4f | %s | %s | %.4f | %s |\n",
			r.FeatureName, r.FeatureType,
			r.ControlMean, r.TreatmentMean, r.ControlStd, r.TreatmentStd,
			r.TestName, r.PValueDisplay(), r.Statistic, r.Conclusion)
	}

	if len(result.Failures) > 0 {
		b.WriteString("\n## Failed invocations\n\n")
		for _, f := range result.Failures {
			fmt.Fprintf(&b, "- `%s` / %s: [%s] %s\n", f.FeatureName, f.Variant, f.Code, f.Message)
		}
	}

	return b.String()
}

// RenderHTML converts the markdown report into a standalone HTML document
func RenderHTML(result *app.SuiteResult) []byte {
	md := RenderMarkdown(result)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Drift Report",
	})
	return markdown.Render(doc, renderer)
}

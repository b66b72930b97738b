package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/yorozuya-cybersecurity/qagate/internal/schema"
	"github.com/yorozuya-cybersecurity/qagate/pkg/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Format is an output rendition of a report
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormats turns "txt,json,html" into a list of known formats.
// Text is always included.
func ParseFormats(s string) ([]Format, error) {
	out := []Format{FormatText}
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(strings.ToLower(f))
		switch Format(f) {
		case "", FormatText:
		case FormatJSON, FormatHTML:
			if !contains(out, Format(f)) {
				out = append(out, Format(f))
			}
		default:
			return nil, fmt.Errorf("unknown report format %q (want txt, json or html)", f)
		}
	}
	return out, nil
}

// ---------- Text layout ----------

// PerfLines lays out the performance summary
func PerfLines(s schema.PerfSummary) []string {
	slowest := emptyFallback(s.SlowestTest, "N/A")
	return []string{
		"Test Performance Summary",
		"========================",
		fmt.Sprintf("Total tests: %d", s.TotalTests),
		fmt.Sprintf("Total time (s): %.3f", s.TotalTime),
		fmt.Sprintf("Average time per test (s): %.3f", s.AverageTime),
		fmt.Sprintf("Slowest test: %s (%.3fs)", slowest, s.SlowestTime),
	}
}

// TraceLines lays out the traceability report
func TraceLines(r schema.TraceResult) []string {
	return []string{
		"Traceability Verification Summary",
		"================================",
		fmt.Sprintf("Risks in register: %d", len(r.RisksInRegister)),
		fmt.Sprintf("Risks in STM: %d", len(r.RisksInMatrix)),
		fmt.Sprintf("Test cases in STM: %d", len(r.TestCasesInMatrix)),
		fmt.Sprintf("Test cases found in docs/tests: %d", len(r.TestCasesKnown)),
		"",
		"Missing Risk IDs in STM:",
		bulletList(r.MissingRisks),
		"",
		"Missing Test Case IDs in docs/tests:",
		bulletList(r.MissingTestCases),
	}
}

// TraceSummary is the one-line outcome printed after a check
func TraceSummary(r schema.TraceResult) string {
	return fmt.Sprintf("Traceability check completed. Missing risks: %d; Missing test cases: %d.",
		len(r.MissingRisks), len(r.MissingTestCases))
}

// Text joins lines with a trailing newline
func Text(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

func bulletList(ids []string) string {
	if len(ids) == 0 {
		return "- None"
	}
	return "- " + strings.Join(ids, "\n- ")
}

// ---------- Writers ----------

// Write renders v in every requested format next to textPath and returns the
// written paths. textPath receives the text rendition of lines.
func Write(textPath string, lines []string, v any, formats []Format) ([]string, error) {
	var written []string
	for _, f := range formats {
		var (
			path = textPath
			err  error
		)
		switch f {
		case FormatText:
			err = utils.WriteFile(path, []byte(Text(lines)))
		case FormatJSON:
			path = withExt(textPath, ".json")
			err = utils.SaveJSON(v, path)
		case FormatHTML:
			path = withExt(textPath, ".html")
			err = GenerateHTML(v, path)
		}
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// GenerateHTML renders a PerfSummary or TraceResult as a standalone page
func GenerateHTML(v any, htmlPath string) error {
	var name string
	switch v.(type) {
	case schema.PerfSummary:
		name = "perf.html"
	case schema.TraceResult:
		name = "trace.html"
	default:
		return fmt.Errorf("no html template for %T", v)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, v); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	return utils.WriteFile(htmlPath, buf.Bytes())
}

func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func emptyFallback(s, fb string) string {
	if strings.TrimSpace(s) == "" {
		return fb
	}
	return s
}

func contains(arr []Format, v Format) bool {
	for _, x := range arr {
		if x == v {
			return true
		}
	}
	return false
}

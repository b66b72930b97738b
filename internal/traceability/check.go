// Package traceability cross-checks risk and test-case identifiers between the
// quality documents and the test sources of a repository.
//
// Documents and sources are treated as opaque text: identifiers are matched
// anywhere, including headings, comments and code blocks.
package traceability

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yorozuya-cybersecurity/qagate/internal/schema"
	"github.com/yorozuya-cybersecurity/qagate/pkg/utils"
)

const (
	DefaultMatrix        = "STANDARDS_TRACEABILITY_MATRIX.md"
	DefaultRiskRegister  = "RISK_REGISTER.md"
	DefaultTestCases     = "TEST_CASES_REFERENCE.md"
	DefaultTestingGuide  = "TESTING_GUIDE.md"
	DefaultTestSources   = "src/test/java"
	DefaultSourcePattern = "**/*.java"
)

// ErrGapsFound signals that at least one risk or test case is untraced
var ErrGapsFound = errors.New("traceability gaps found")

// Paths locates the inputs of a check. All paths are used as given.
type Paths struct {
	Matrix        string
	RiskRegister  string
	TestCases     string
	TestingGuide  string
	TestSources   string
	SourcePattern string
}

// Sources is the raw text of every input
type Sources struct {
	Matrix       string
	RiskRegister string
	TestCases    string
	TestingGuide string
	TestSources  string
}

// LoadSources reads the four documents and concatenates the test sources.
// Missing files and a missing sources directory read as empty text.
func LoadSources(p Paths) (Sources, error) {
	var (
		src Sources
		err error
	)
	docs := []struct {
		path string
		dst  *string
	}{
		{p.Matrix, &src.Matrix},
		{p.RiskRegister, &src.RiskRegister},
		{p.TestCases, &src.TestCases},
		{p.TestingGuide, &src.TestingGuide},
	}
	for _, d := range docs {
		if *d.dst, err = utils.ReadTextIfExists(d.path); err != nil {
			return src, err
		}
	}

	if src.TestSources, err = collectTestSources(p.TestSources, p.SourcePattern); err != nil {
		return src, err
	}
	return src, nil
}

func collectTestSources(dir, pattern string) (string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("stat test sources: %w", err)
	}
	if pattern == "" {
		pattern = DefaultSourcePattern
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	contents := make([]string, 0, len(matches))
	for _, m := range matches {
		text, err := utils.ReadTextIfExists(filepath.Join(dir, filepath.FromSlash(m)))
		if err != nil {
			return "", err
		}
		contents = append(contents, text)
	}
	return strings.Join(contents, "\n"), nil
}

// Check extracts identifier sets from src and computes the gaps
func Check(src Sources) schema.TraceResult {
	risksInRegister := RiskIDs(src.RiskRegister)
	risksInMatrix := RiskIDs(src.Matrix)
	tcsInMatrix := TestCaseIDs(src.Matrix)

	documented := TestCaseIDs(src.TestCases).Union(TestCaseIDs(src.TestingGuide))
	tested := TestCaseIDs(src.TestSources)
	known := documented.Union(tested)

	return schema.TraceResult{
		RisksInRegister:   risksInRegister.Sorted(),
		RisksInMatrix:     risksInMatrix.Sorted(),
		TestCasesInMatrix: tcsInMatrix.Sorted(),
		TestCasesKnown:    known.Sorted(),
		MissingRisks:      risksInRegister.Missing(risksInMatrix),
		MissingTestCases:  tcsInMatrix.Missing(known),
	}
}

package surefire

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yorozuya-cybersecurity/qagate/internal/schema"
)

const (
	DefaultReportsDir = "target/surefire-reports"
	DefaultPattern    = "TEST-*.xml"
)

// ErrReportsNotFound is returned by Discover when the reports directory is absent
var ErrReportsNotFound = errors.New("surefire reports not found")

// Discover lists the regular files in dir matching pattern, sorted by name.
// Only a missing dir is reported as ErrReportsNotFound; any other non-directory
// path simply holds no reports.
func Discover(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrReportsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("stat reports dir: %w", err)
	}
	if !info.IsDir() {
		return []string{}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Join(dir, filepath.FromSlash(m)))
	}
	return files, nil
}

// Aggregator accumulates timing statistics record by record
type Aggregator struct {
	total   int
	sum     float64
	first   schema.TestCase
	slowest schema.TestCase
	found   bool
}

// Add counts one record. A record becomes the slowest only when its time is
// strictly greater than zero and than the current slowest, so the first of
// equal times wins.
func (a *Aggregator) Add(tc schema.TestCase) {
	a.total++
	a.sum += tc.Elapsed
	if a.total == 1 {
		a.first = tc
	}
	if tc.Elapsed > 0 && (!a.found || tc.Elapsed > a.slowest.Elapsed) {
		a.slowest = tc
		a.found = true
	}
}

// Summary returns the aggregate over everything added so far. A lone record
// is the slowest whatever its time; otherwise records without a positive time
// are never reported as slowest.
func (a *Aggregator) Summary() schema.PerfSummary {
	s := schema.PerfSummary{
		TotalTests: a.total,
		TotalTime:  a.sum,
	}
	if a.total == 0 {
		return s
	}
	s.AverageTime = a.sum / float64(a.total)
	switch {
	case a.found:
		s.SlowestTest = a.slowest.QualifiedName()
		s.SlowestTime = a.slowest.Elapsed
	case a.total == 1:
		s.SlowestTest = a.first.QualifiedName()
		s.SlowestTime = a.first.Elapsed
	}
	return s
}

// Summarize parses every file and aggregates its records. Files that fail to
// parse are skipped and listed in SkippedFiles.
func Summarize(files []string, log *slog.Logger) schema.PerfSummary {
	var (
		agg     Aggregator
		skipped []string
		parsed  int
	)
	for _, f := range files {
		cases, err := ParseFile(f)
		if err != nil {
			log.Debug("skipping unreadable report", "file", f, "err", err)
			skipped = append(skipped, filepath.Base(f))
			continue
		}
		parsed++
		for _, tc := range cases {
			agg.Add(tc)
		}
	}

	s := agg.Summary()
	s.ReportFiles = parsed
	s.SkippedFiles = skipped
	return s
}

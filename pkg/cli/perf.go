package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yorozuya-cybersecurity/qagate/internal/report"
	"github.com/yorozuya-cybersecurity/qagate/internal/surefire"
)

const defaultPerfOutput = "target/test-performance/summary.txt"

func newPerfCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "perf",
		Short:   "Summarize test timings from surefire reports",
		Example: "qagate perf --root . --format txt,html",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPerf(cmd, v)
		},
	}

	cmd.Flags().String("reports-dir", surefire.DefaultReportsDir, "Directory holding surefire XML reports")
	cmd.Flags().String("pattern", surefire.DefaultPattern, "Report file name pattern")
	cmd.Flags().String("output", defaultPerfOutput, "Summary text file")
	cmd.Flags().String("format", string(report.FormatText), "Output formats: txt,json,html (txt is always written)")

	_ = v.BindPFlag("perf.reports-dir", cmd.Flags().Lookup("reports-dir"))
	_ = v.BindPFlag("perf.pattern", cmd.Flags().Lookup("pattern"))
	_ = v.BindPFlag("perf.output", cmd.Flags().Lookup("output"))
	_ = v.BindPFlag("perf.format", cmd.Flags().Lookup("format"))
	return cmd
}

// runPerf is informational only: it never fails the process. Bad settings are
// logged and replaced by their defaults.
func runPerf(cmd *cobra.Command, v *viper.Viper) error {
	log, err := setup(v)
	if err != nil {
		log.Warn("ignoring invalid settings", "err", err)
	}
	formats, err := report.ParseFormats(v.GetString("perf.format"))
	if err != nil {
		log.Warn("falling back to txt output", "err", err)
		formats = []report.Format{report.FormatText}
	}

	dir := resolve(v, v.GetString("perf.reports-dir"))
	files, err := surefire.Discover(dir, v.GetString("perf.pattern"))
	if errors.Is(err, surefire.ErrReportsNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "Surefire reports not found.")
		return nil
	}
	if err != nil {
		log.Error("report discovery failed", "dir", dir, "err", err)
		return nil
	}
	log.Debug("discovered reports", "dir", dir, "count", len(files))

	summary := surefire.Summarize(files, log)
	if n := len(summary.SkippedFiles); n > 0 {
		log.Warn("skipped malformed reports", "count", n)
	}

	lines := report.PerfLines(summary)
	out := resolve(v, v.GetString("perf.output"))
	written, err := report.Write(out, lines, summary, formats)
	if err != nil {
		log.Error("writing performance summary failed", "path", out, "err", err)
	}
	for _, p := range written {
		log.Debug("wrote report", "path", p)
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Text(lines))
	return nil
}

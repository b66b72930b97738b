package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yorozuya-cybersecurity/qagate/internal/report"
	"github.com/yorozuya-cybersecurity/qagate/internal/traceability"
)

const defaultTraceOutput = "target/traceability/traceability_report.txt"

func newTraceCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Check risk and test-case traceability; exits 1 on gaps",
		Long: "Cross-checks the risk register and test-case references against the standards " +
			"traceability matrix, the test docs and the test sources. Any gap makes the command exit 1.",
		Example: "qagate trace --root . --format txt,json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrace(cmd, v)
		},
	}

	cmd.Flags().String("matrix", traceability.DefaultMatrix, "Standards traceability matrix")
	cmd.Flags().String("risk-register", traceability.DefaultRiskRegister, "Risk register")
	cmd.Flags().String("test-cases", traceability.DefaultTestCases, "Test cases reference")
	cmd.Flags().String("testing-guide", traceability.DefaultTestingGuide, "Testing guide")
	cmd.Flags().String("test-sources", traceability.DefaultTestSources, "Test sources directory")
	cmd.Flags().String("source-pattern", traceability.DefaultSourcePattern, "Test source file pattern (doublestar syntax)")
	cmd.Flags().String("output", defaultTraceOutput, "Report text file")
	cmd.Flags().String("format", string(report.FormatText), "Output formats: txt,json,html (txt is always written)")

	for _, name := range []string{
		"matrix", "risk-register", "test-cases", "testing-guide",
		"test-sources", "source-pattern", "output", "format",
	} {
		_ = v.BindPFlag("trace."+name, cmd.Flags().Lookup(name))
	}
	return cmd
}

func runTrace(cmd *cobra.Command, v *viper.Viper) error {
	log, err := setup(v)
	if err != nil {
		return err
	}
	formats, err := report.ParseFormats(v.GetString("trace.format"))
	if err != nil {
		return err
	}

	paths := traceability.Paths{
		Matrix:        resolve(v, v.GetString("trace.matrix")),
		RiskRegister:  resolve(v, v.GetString("trace.risk-register")),
		TestCases:     resolve(v, v.GetString("trace.test-cases")),
		TestingGuide:  resolve(v, v.GetString("trace.testing-guide")),
		TestSources:   resolve(v, v.GetString("trace.test-sources")),
		SourcePattern: v.GetString("trace.source-pattern"),
	}
	src, err := traceability.LoadSources(paths)
	if err != nil {
		return err
	}

	res := traceability.Check(src)
	log.Debug("traceability sets",
		"risks_register", len(res.RisksInRegister),
		"risks_matrix", len(res.RisksInMatrix),
		"tcs_matrix", len(res.TestCasesInMatrix),
		"tcs_known", len(res.TestCasesKnown))

	out := resolve(v, v.GetString("trace.output"))
	if _, err := report.Write(out, report.TraceLines(res), res, formats); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.TraceSummary(res))

	if res.HasGaps() {
		return traceability.ErrGapsFound
	}
	return nil
}

package schema

// TestCase is one testcase record read from a surefire report
type TestCase struct {
	Name      string  `json:"name"`
	ClassName string  `json:"classname"`
	Elapsed   float64 `json:"time"`
}

// QualifiedName returns "classname.name", even when classname is empty
func (tc TestCase) QualifiedName() string {
	return tc.ClassName + "." + tc.Name
}

// PerfSummary aggregates timing over every report of one run
type PerfSummary struct {
	TotalTests  int     `json:"totalTests"`
	TotalTime   float64 `json:"totalTime"`
	AverageTime float64 `json:"averageTime"`
	SlowestTest string  `json:"slowestTest"`
	SlowestTime float64 `json:"slowestTime"`

	ReportFiles  int      `json:"reportFiles"`
	SkippedFiles []string `json:"skippedFiles,omitempty"`
}

// TraceResult holds the identifier sets and gaps of one traceability check.
// Every slice is sorted in ascending order.
type TraceResult struct {
	RisksInRegister   []string `json:"risksInRegister"`
	RisksInMatrix     []string `json:"risksInMatrix"`
	TestCasesInMatrix []string `json:"testCasesInMatrix"`
	TestCasesKnown    []string `json:"testCasesKnown"`

	MissingRisks     []string `json:"missingRisks"`
	MissingTestCases []string `json:"missingTestCases"`
}

// HasGaps reports whether any risk or test case is missing
func (r TraceResult) HasGaps() bool {
	return len(r.MissingRisks) > 0 || len(r.MissingTestCases) > 0
}

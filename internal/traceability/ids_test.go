package traceability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskIDs(t *testing.T) {
	text := `# Risk register
| R-SEC-001 | Token leakage |
| R-PERF-12 | Slow checkout (see R-SEC-001) |
r-sec-002 lowercase, R-SEC-X not numbered, XR-SEC-003 glued, R-sec-4 mixed case`

	assert.Equal(t, []string{"R-PERF-12", "R-SEC-001"}, RiskIDs(text).Sorted())
}

func TestTestCaseIDs(t *testing.T) {
	text := "TC-LOGIN-01, TC-CART-2. (TC-API-GET-7) // TC-lower ATC-001 TC-ORDER-9-"

	assert.Equal(t,
		[]string{"TC-API-GET-7", "TC-CART-2", "TC-LOGIN-01", "TC-ORDER-9"},
		TestCaseIDs(text).Sorted())
}

func TestIDSet_Missing(t *testing.T) {
	have := IDSet{"TC-C": {}, "TC-A": {}, "TC-B": {}}
	other := IDSet{"TC-B": {}}

	assert.Equal(t, []string{"TC-A", "TC-C"}, have.Missing(other))
	assert.Equal(t, []string{}, other.Missing(have))
}

func TestIDSet_Union(t *testing.T) {
	a := IDSet{"A": {}}
	b := IDSet{"B": {}}
	u := a.Union(b, IDSet{"A": {}, "C": {}})

	assert.Equal(t, []string{"A", "B", "C"}, u.Sorted())
	assert.Len(t, a, 1)
}

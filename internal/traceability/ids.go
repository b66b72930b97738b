package traceability

import (
	"regexp"
	"sort"
)

var (
	riskIDPattern     = regexp.MustCompile(`\bR-[A-Z]+-\d+\b`)
	testCaseIDPattern = regexp.MustCompile(`\bTC-[A-Z0-9-]+\b`)
)

// IDSet is a set of identifiers; only presence matters
type IDSet map[string]struct{}

// RiskIDs extracts every risk identifier (R-AREA-123) found in text
func RiskIDs(text string) IDSet {
	return extract(riskIDPattern, text)
}

// TestCaseIDs extracts every test-case identifier (TC-...) found in text
func TestCaseIDs(text string) IDSet {
	return extract(testCaseIDPattern, text)
}

func extract(re *regexp.Regexp, text string) IDSet {
	set := IDSet{}
	for _, id := range re.FindAllString(text, -1) {
		set[id] = struct{}{}
	}
	return set
}

// Union returns a new set holding the members of s and every other set
func (s IDSet) Union(others ...IDSet) IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	for _, o := range others {
		for id := range o {
			out[id] = struct{}{}
		}
	}
	return out
}

// Missing lists the members of s absent from other, sorted ascending
func (s IDSet) Missing(other IDSet) []string {
	out := []string{}
	for id := range s {
		if _, ok := other[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Sorted lists the members of s in ascending order
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

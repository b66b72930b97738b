package surefire

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/yorozuya-cybersecurity/qagate/internal/schema"
)

// ParseFile reads one surefire report. Any markup error fails the whole file
// so no partial data from it is ever returned.
func ParseFile(path string) ([]schema.TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a report document held in memory. Only testcase elements that
// are direct children of the document root (usually <testsuite>) are read.
func Parse(data []byte) ([]schema.TestCase, error) {
	cases, err := walk(data)
	if err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return cases, nil
}

func walk(data []byte) ([]schema.TestCase, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charset.NewReaderLabel

	var (
		cases    = []schema.TestCase{}
		depth    int
		seenRoot bool
	)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 && seenRoot {
				return nil, errors.New("junk after document element")
			}
			if err := checkUniqueAttrs(t); err != nil {
				return nil, err
			}
			seenRoot = true
			depth++
			if depth == 2 && t.Name.Local == "testcase" && t.Name.Space == "" {
				cases = append(cases, toTestCase(t.Attr))
			}
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, errors.New("text outside document element")
			}
		case xml.Directive:
			if seenRoot {
				return nil, errors.New("directive after document element")
			}
		case xml.Comment, xml.ProcInst:
		}
	}

	if !seenRoot {
		return nil, errors.New("no document element")
	}
	return cases, nil
}

func checkUniqueAttrs(se xml.StartElement) error {
	seen := make(map[xml.Name]struct{}, len(se.Attr))
	for _, a := range se.Attr {
		if _, ok := seen[a.Name]; ok {
			return fmt.Errorf("duplicate attribute %q on <%s>", a.Name.Local, se.Name.Local)
		}
		seen[a.Name] = struct{}{}
	}
	return nil
}

func toTestCase(attrs []xml.Attr) schema.TestCase {
	tc := schema.TestCase{}
	timeStr := "0"
	for _, a := range attrs {
		if a.Name.Space != "" {
			continue
		}
		switch a.Name.Local {
		case "name":
			tc.Name = a.Value
		case "classname":
			tc.ClassName = a.Value
		case "time":
			timeStr = a.Value
		}
	}
	tc.Elapsed = parseSeconds(timeStr)
	return tc
}

// parseSeconds never fails: malformed or non-finite values count as zero
func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

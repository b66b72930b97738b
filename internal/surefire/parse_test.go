package surefire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorozuya-cybersecurity/qagate/internal/schema"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		doc     string
		want    []schema.TestCase
		wantErr bool
	}{
		"testsuite with cases": {
			doc: `<?xml version="1.0" encoding="UTF-8"?>
<testsuite name="OrderTest" tests="2">
  <properties><property name="java.version" value="21"/></properties>
  <testcase name="createsOrder" classname="com.example.OrderTest" time="0.125"/>
  <testcase name="rejectsEmptyCart" classname="com.example.OrderTest" time="1.5">
    <failure message="boom">stack</failure>
  </testcase>
</testsuite>`,
			want: []schema.TestCase{
				{Name: "createsOrder", ClassName: "com.example.OrderTest", Elapsed: 0.125},
				{Name: "rejectsEmptyCart", ClassName: "com.example.OrderTest", Elapsed: 1.5},
			},
		},
		"missing attributes default": {
			doc:  `<testsuite><testcase/></testsuite>`,
			want: []schema.TestCase{{}},
		},
		"malformed time is zero": {
			doc: `<testsuite><testcase name="a" classname="C" time="1,234"/><testcase name="b" time=" 2 "/></testsuite>`,
			want: []schema.TestCase{
				{Name: "a", ClassName: "C", Elapsed: 0},
				{Name: "b", Elapsed: 2},
			},
		},
		"non-finite time is zero": {
			doc:  `<testsuite><testcase name="a" time="NaN"/><testcase name="b" time="inf"/></testsuite>`,
			want: []schema.TestCase{{Name: "a"}, {Name: "b"}},
		},
		"nested suites are not descended into": {
			doc:  `<testsuites><testsuite><testcase name="a" time="1"/></testsuite></testsuites>`,
			want: []schema.TestCase{},
		},
		"empty suite": {
			doc:  `<testsuite tests="0"></testsuite>`,
			want: []schema.TestCase{},
		},
		"trailing comment is fine": {
			doc:  `<testsuite><testcase name="a" time="1"/></testsuite><!-- generated -->` + "\n",
			want: []schema.TestCase{{Name: "a", Elapsed: 1}},
		},
		"doctype before root": {
			doc:  `<?xml version="1.0"?><!DOCTYPE testsuite><testsuite><testcase name="a" time="1"/></testsuite>`,
			want: []schema.TestCase{{Name: "a", Elapsed: 1}},
		},
		"latin-1 declared encoding": {
			doc: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
				"<testsuite><testcase name=\"caf\xe9\" classname=\"C\" time=\"0.75\"/></testsuite>",
			want: []schema.TestCase{{Name: "café", ClassName: "C", Elapsed: 0.75}},
		},
		"text before root": {
			doc:     `junk<testsuite><testcase name="x" classname="C" time="50"/></testsuite>`,
			wantErr: true,
		},
		"text after root": {
			doc:     `<testsuite><testcase name="x" time="50"/></testsuite>junk`,
			wantErr: true,
		},
		"duplicate attribute on testcase": {
			doc:     `<testsuite><testcase name="x" name="y" classname="C" time="50"/></testsuite>`,
			wantErr: true,
		},
		"duplicate attribute deeper down": {
			doc:     `<testsuite><testcase name="x" time="1"><failure type="a" type="b"/></testcase></testsuite>`,
			wantErr: true,
		},
		"mismatched end tag": {
			doc:     `<testsuite><testcase name="x" time="1"></testsuite></testcase>`,
			wantErr: true,
		},
		"unknown encoding": {
			doc:     `<?xml version="1.0" encoding="X-NOPE"?><testsuite/>`,
			wantErr: true,
		},
		"unclosed element": {
			doc:     `<testsuite><testcase name="a" time="1">`,
			wantErr: true,
		},
		"empty document": {
			doc:     "",
			wantErr: true,
		},
		"plain text": {
			doc:     "not xml at all",
			wantErr: true,
		},
		"second root element": {
			doc:     `<testsuite/><testsuite/>`,
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse([]byte(test.doc))
			if test.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(t.TempDir() + "/TEST-none.xml")
	assert.Error(t, err)
}

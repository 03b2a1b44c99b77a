package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCaretIndicator(t *testing.T) {
	reporter := &Reporter{}

	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "  .Btn--large { }",
			column:     4,
			want:       "   ^",
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\t.Card, .bad-name {",
			column:     11,
			want:       "\t\t        ^",
		},
		{
			name:       "start of line",
			sourceLine: ".A_ext_A {}",
			column:     1,
			want:       "^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^",
		},
		{
			name:       "multibyte prefix",
			sourceLine: "/* é */ .Btn",
			column:     10,
			want:       "         ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporter.buildCaretIndicator(tt.sourceLine, tt.column)
			require.Equal(t, tt.want, got)
		})
	}
}

func sampleResult() Result {
	return Result{
		FilesScanned: 2,
		Components:   3,
		Tokens:       9,
		Issues: []Issue{
			{
				FromLinter:  LinterResolve,
				Text:        "recursive extensions: A extends B extends A",
				Severity:    SeverityError,
				SourceLines: []string{".B_ext_A { }"},
				Pos:         IssuePos{Filename: "b.css", Line: 4, Column: 2},
			},
			{
				FromLinter:  LinterParse,
				Text:        "component name cannot contain dashes: btn-x will be ignored",
				Severity:    SeverityWarning,
				SourceLines: []string{"\t.btn-x { }"},
				Pos:         IssuePos{Filename: "a.css", Line: 7, Column: 3},
			},
		},
	}
}

func TestPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	reporter := &Reporter{w: &buf, printLines: true, printLinterName: true}
	result := sampleResult()

	reporter.PrintIssues(result.Issues)

	want := "a.css:7:3: component name cannot contain dashes: btn-x will be ignored (rccparse)\n" +
		"\t\t.btn-x { }\n" +
		"\t\t ^\n" +
		"b.css:4:2: recursive extensions: A extends B extends A (rccresolve)\n" +
		"\t.B_ext_A { }\n" +
		"\t ^\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	reporter := &Reporter{w: &buf}

	reporter.PrintSummary(sampleResult())

	assert.Equal(t, "\n2 issues (1 error, 1 warning):\n* rccparse: 1\n* rccresolve: 1\n", buf.String())
}

func TestPrintSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	reporter := &Reporter{w: &buf}

	reporter.PrintSummary(Result{Truncated: 1})

	assert.Equal(t, "\n0 issues (1 issue truncated):\n", buf.String())
}

func TestRenderStyle(t *testing.T) {
	assert.Equal(t, "plain", RenderStyle(StyleRed, "plain", false))
}

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		flag string
		want OutputFormat
	}{
		{"", OutputIssues},
		{"issues", OutputIssues},
		{"summary", OutputSummary},
		{"full", OutputFull},
		{"json", OutputJSON},
		{"xml", OutputIssues},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineOutputFormat(tt.flag))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), OutputJSON, Options{}))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "1.0", out.Version)
	assert.Equal(t, JSONSummary{
		TotalIssues:  2,
		Errors:       1,
		Warnings:     1,
		FilesScanned: 2,
		Components:   3,
		Tokens:       9,
	}, out.Summary)
	require.Len(t, out.Issues, 2)
	assert.Equal(t, "b.css", out.Issues[0].File)
	assert.Equal(t, "rccresolve", out.Issues[0].Linter)
	assert.Equal(t, ".B_ext_A { }", out.Issues[0].Source)
}

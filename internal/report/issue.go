// Package report prints the findings of a stylesheet check in golangci-lint
// format or as JSON.
package report

// Issue is a single finding in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "rccparse" or "rccresolve"
	Text        string   `json:"Text"`        // "component name cannot contain dashes: btn-x will be ignored"
	Severity    string   `json:"Severity"`    // "warning" or "error"
	SourceLines []string `json:"SourceLines"` // stylesheet line holding the token
	Pos         IssuePos `json:"Pos"`
}

// IssuePos is the location of the offending class token
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"` // 1-based, start of the class name
}

// Severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Linter names
const (
	LinterParse   = "rccparse"   // naming convention warnings
	LinterResolve = "rccresolve" // extension graph errors
	LinterBuild   = "rccbuild"   // unreadable or uncompilable sources
)

// Result is everything a check produced.
type Result struct {
	Issues       []Issue
	FilesScanned int
	Components   int
	Tokens       int
	Truncated    int // issues dropped by a limit
}

// Errors counts issues with error severity.
func (r Result) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Warnings counts issues with warning severity.
func (r Result) Warnings() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

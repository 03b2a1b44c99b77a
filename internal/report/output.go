package report

import (
	"encoding/json"
	"io"
	"time"
)

// OutputFormat selects how a result is written
type OutputFormat string

const (
	OutputIssues  OutputFormat = "issues"  // golangci-lint lines and a summary
	OutputSummary OutputFormat = "summary" // statistics only
	OutputFull    OutputFormat = "full"    // issues and statistics
	OutputJSON    OutputFormat = "json"
)

// DetermineOutputFormat parses a format flag, falling back to issues.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch OutputFormat(formatFlag) {
	case OutputIssues, OutputSummary, OutputFull, OutputJSON:
		return OutputFormat(formatFlag)
	default:
		return OutputIssues
	}
}

// Write writes the result in the given format.
func Write(w io.Writer, result Result, format OutputFormat, opts Options) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, result)
	case OutputSummary:
		NewReporter(w, opts).PrintStatistics(result)
	case OutputFull:
		reporter := NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result)
		reporter.PrintStatistics(result)
	default:
		reporter := NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result)
	}
	return nil
}

// JSONOutput is the JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains issue and stylesheet counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
	Components   int `json:"components"`
	Tokens       int `json:"tokens"`
}

// JSONIssue is a single finding
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"`
}

// WriteJSON writes the result as JSON
func WriteJSON(w io.Writer, result Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(result))
}

func buildJSONOutput(result Result) JSONOutput {
	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       result.Errors(),
			Warnings:     result.Warnings(),
			FilesScanned: result.FilesScanned,
			Components:   result.Components,
			Tokens:       result.Tokens,
		},
		Issues: issues,
	}
}

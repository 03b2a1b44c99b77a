package rccgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yacobolo/rccgen/internal/extract"
	"github.com/yacobolo/rccgen/internal/precompile"
	"github.com/yacobolo/rccgen/internal/report"
	"github.com/yacobolo/rccgen/rcc"
)

// Issue is a single check finding.
type Issue = report.Issue

// CheckResult holds the findings of Check.
type CheckResult = report.Result

// Check compiles every stylesheet without writing artifacts and reports
// naming convention warnings and extension cycles with their positions.
func Check(ctx context.Context, config Config) (*CheckResult, error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	filter := newFileFilter(config)
	files, _, err := scanStyleFiles(config, filter)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	result := &CheckResult{FilesScanned: len(files)}
	compiler := config.newCompiler()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		checkFile(ctx, compiler, file, filter.styleOnly(file), result)
	}

	report.SortIssues(result.Issues)
	return result, nil
}

// checkFile appends the findings for one stylesheet to result. Style-only
// sources declare no components, so only their build can fail.
func checkFile(ctx context.Context, compiler *precompile.Compiler, file string, styleOnly bool, result *CheckResult) {
	source, err := os.ReadFile(file)
	if err != nil {
		result.Issues = append(result.Issues, buildIssue(file, err))
		return
	}
	css, err := compiler.Compile(ctx, source, file)
	if err != nil {
		result.Issues = append(result.Issues, buildIssue(file, err))
		return
	}

	scan := extract.Scan(css)
	if styleOnly {
		result.Tokens += len(scan.Classes)
		return
	}
	lines := strings.Split(css, "\n")
	decl := rcc.Parse(scan.Classes)
	result.Tokens += len(decl.Tokens)

	for _, w := range decl.Warnings {
		result.Issues = append(result.Issues,
			tokenIssue(file, w.Token, w.Message, report.SeverityWarning, report.LinterParse, scan, lines))
	}

	model, err := rcc.Resolve(decl)
	var cycle *rcc.CycleError
	switch {
	case errors.As(err, &cycle):
		result.Issues = append(result.Issues,
			tokenIssue(file, cycle.Token(), cycle.Error(), report.SeverityError, report.LinterResolve, scan, lines))
	case err != nil:
		result.Issues = append(result.Issues, buildIssue(file, err))
	default:
		result.Components += len(model.ComponentNames())
	}
}

func tokenIssue(file, token, text, severity, linter string, scan *extract.Result, lines []string) Issue {
	issue := Issue{
		FromLinter: linter,
		Text:       text,
		Severity:   severity,
		Pos:        report.IssuePos{Filename: file},
	}
	pos, ok := scan.Positions[token]
	if !ok {
		return issue
	}
	issue.Pos.Line, issue.Pos.Column = pos.Line, pos.Column
	if pos.Line-1 < len(lines) {
		issue.SourceLines = []string{strings.TrimRight(lines[pos.Line-1], "\r")}
	}
	return issue
}

func buildIssue(file string, err error) Issue {
	return Issue{
		FromLinter: report.LinterBuild,
		Text:       err.Error(),
		Severity:   report.SeverityError,
		Pos:        report.IssuePos{Filename: file, Line: 1, Column: 1},
	}
}

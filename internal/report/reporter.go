package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Options configures a Reporter.
type Options struct {
	UseColors       bool // force colors on
	PrintLines      bool // print the source line and a caret under each issue
	PrintLinterName bool
}

// Reporter formats and outputs check results
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(opts.UseColors),
		printLines:      opts.PrintLines,
		printLinterName: opts.PrintLinterName,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}

	// FORCE_COLOR is set by GitHub Actions and most CI runners
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// SortIssues orders issues by file, line and column.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	SortIssues(issues)
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue: file:line:col: message (linter)
func (r *Reporter) printIssue(issue Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	text := issue.Text
	if issue.Severity == SeverityError {
		text = RenderStyle(StyleRed, text, r.useColors)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column,
// copying tabs from the source line so it lines up in any tab width
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefix := []rune(sourceLine)
	if column-1 < len(prefix) {
		prefix = prefix[:column-1]
	}

	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result Result) {
	total := len(result.Issues)
	errors, warnings := result.Errors(), result.Warnings()

	fmt.Fprintln(r.w, "")

	counts := pluralizeCount(total, "issue", "issues")
	var details []string
	if errors > 0 && warnings > 0 {
		details = append(details,
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	}
	if result.Truncated > 0 {
		details = append(details, pluralizeCount(result.Truncated, "issue", "issues")+" truncated")
	}
	if len(details) > 0 {
		fmt.Fprintf(r.w, "%s (%s):\n", counts, strings.Join(details, ", "))
	} else {
		fmt.Fprintf(r.w, "%s:\n", counts)
	}

	linterCounts := make(map[string]int)
	for _, issue := range result.Issues {
		linterCounts[issue.FromLinter]++
	}
	linters := make([]string, 0, len(linterCounts))
	for linter := range linterCounts {
		linters = append(linters, linter)
	}
	sort.Strings(linters)
	for _, linter := range linters {
		fmt.Fprintf(r.w, "* %s: %d\n", linter, linterCounts[linter])
	}
}

// PrintStatistics outputs file and component counts.
func (r *Reporter) PrintStatistics(result Result) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Stylesheet Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------")
	fmt.Fprintf(r.w, "Files Scanned: %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Class Tokens:  %d\n", result.Tokens)
	fmt.Fprintf(r.w, "Components:    %d\n", result.Components)
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

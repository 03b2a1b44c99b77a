// Package extract pulls the class-selector vocabulary out of compiled CSS.
//
// Only selector positions are scanned: comments, declaration blocks and at-rule
// preludes never contribute class names. Rules nested in grouping at-rules such
// as @media or @layer are scanned like top-level rules.
package extract

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Position is a 1-based location in the scanned CSS text.
type Position struct {
	Line   int
	Column int
}

// Result holds the extracted class names and where each was first seen.
type Result struct {
	Classes   []string            // sorted, unique
	Positions map[string]Position // first occurrence of each class
}

// groupingAtRules contain nested rulesets rather than declarations.
var groupingAtRules = map[string]bool{
	"@media":     true,
	"@supports":  true,
	"@layer":     true,
	"@container": true,
	"@document":  true,
	"@scope":     true,
}

type blockKind int

const (
	blockRules blockKind = iota // children are rules
	blockDecls                  // children are declarations, skipped
)

// scanner tracks lexer state while walking the token stream
type scanner struct {
	lexer *css.Lexer

	line int
	col  int

	stack     []blockKind
	declDepth int // nested braces inside the current declaration block

	atRule      string // at-keyword of the current prelude, if any
	inPrelude   bool
	expectClass bool // previous token was a '.' delimiter
	slash       bool // previous token was a '/' delimiter
	lineComment bool

	seen map[string]Position
}

// ClassNames returns the sorted, unique class names selected in css.
func ClassNames(content string) []string {
	return Scan(content).Classes
}

// Scan walks css and returns every class name used in a selector.
// Malformed input never fails, it just yields fewer names.
func Scan(content string) *Result {
	s := &scanner{
		lexer: css.NewLexer(parse.NewInputString(content)),
		line:  1,
		col:   1,
		seen:  make(map[string]Position),
	}
	s.run()

	classes := make([]string, 0, len(s.seen))
	for name := range s.seen {
		classes = append(classes, name)
	}
	sort.Strings(classes)

	return &Result{Classes: classes, Positions: s.seen}
}

func (s *scanner) run() {
	for {
		tt, data := s.lexer.Next()
		if tt == css.ErrorToken {
			return
		}
		pos := Position{Line: s.line, Column: s.col}
		s.advance(data)

		if s.lineComment {
			if tt == css.WhitespaceToken && strings.ContainsAny(string(data), "\n\r\f") {
				s.lineComment = false
			}
			continue
		}

		// "//" opens a line comment only between rules
		if s.inDeclarations() {
			s.slash = false
			s.skipDeclarationToken(tt)
			continue
		}

		if tt == css.DelimToken && string(data) == "/" {
			if s.slash {
				s.slash = false
				s.lineComment = true
				continue
			}
			s.slash = true
			continue
		}
		s.slash = false

		if tt == css.CommentToken {
			continue
		}

		s.selectorToken(tt, data, pos)
	}
}

// advance moves the line/column cursor past data
func (s *scanner) advance(data []byte) {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r == '\n' {
			s.line++
			s.col = 1
			continue
		}
		s.col++
	}
}

func (s *scanner) inDeclarations() bool {
	return len(s.stack) > 0 && s.stack[len(s.stack)-1] == blockDecls
}

func (s *scanner) skipDeclarationToken(tt css.TokenType) {
	switch tt {
	case css.LeftBraceToken:
		s.declDepth++
	case css.RightBraceToken:
		if s.declDepth > 0 {
			s.declDepth--
			return
		}
		s.stack = s.stack[:len(s.stack)-1]
		s.resetPrelude()
	}
}

func (s *scanner) selectorToken(tt css.TokenType, data []byte, pos Position) {
	if s.expectClass {
		s.expectClass = false
		if tt == css.IdentToken || tt == css.CustomPropertyNameToken {
			if s.atRule == "" {
				s.record(string(data), pos)
			}
			return
		}
	}

	switch tt {
	case css.WhitespaceToken:
		return
	case css.AtKeywordToken:
		if !s.inPrelude {
			s.atRule = strings.ToLower(string(data))
		}
		s.inPrelude = true
	case css.DelimToken:
		s.inPrelude = true
		if string(data) == "." {
			s.expectClass = true
		}
	case css.LeftBraceToken:
		if s.atRule != "" && groupingAtRules[s.atRule] {
			s.stack = append(s.stack, blockRules)
		} else {
			s.stack = append(s.stack, blockDecls)
			s.declDepth = 0
		}
		s.resetPrelude()
	case css.RightBraceToken:
		if len(s.stack) > 0 {
			s.stack = s.stack[:len(s.stack)-1]
		}
		s.resetPrelude()
	case css.SemicolonToken:
		s.resetPrelude()
	default:
		s.inPrelude = true
	}
}

func (s *scanner) resetPrelude() {
	s.atRule = ""
	s.inPrelude = false
	s.expectClass = false
}

func (s *scanner) record(name string, pos Position) {
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = pos
}

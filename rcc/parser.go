package rcc

import (
	"fmt"
	"sort"
	"strings"
)

// Grammar markers used in class tokens.
const (
	SegmentSeparator = "--"
	ExtensionMarker  = "_ext_"
	TernaryMarker    = "_as_"
	DefaultSegment   = "DEFAULT"

	// DefaultToken is the class applied to every component.
	DefaultToken = SegmentSeparator + DefaultSegment
)

// PropKind distinguishes boolean flags from enumerated (ternary) flags
type PropKind int

const (
	// Boolean properties activate a single class when truthy.
	Boolean PropKind = iota + 1
	// Ternary properties activate one class per declared string value.
	Ternary
)

func (k PropKind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Ternary:
		return "ternary"
	default:
		return "unknown"
	}
}

// Property is a flag declared by one component or by the global scope.
type Property struct {
	Name   string
	Kind   PropKind
	Class  string            // Boolean: token activated when truthy
	Values map[string]string // Ternary: value -> token
}

// ValueNames returns the declared ternary values in sorted order.
func (p *Property) ValueNames() []string {
	names := make([]string, 0, len(p.Values))
	for v := range p.Values {
		names = append(names, v)
	}
	sort.Strings(names)
	return names
}

// Warning is a recoverable problem found while parsing class tokens.
type Warning struct {
	Token   string // offending class token
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Token, w.Message)
}

// ComponentDecl is what the parser knows about one component before resolution.
type ComponentDecl struct {
	Name       string
	HasBase    bool     // the bare name is itself a token
	Extensions []string // direct parents in declaration order
	Props      map[string]*Property
}

// Declarations is the parser output: a plain adjacency structure plus the
// property declarations of every scope. Nothing in it is resolved yet.
type Declarations struct {
	Tokens       []string
	Components   map[string]*ComponentDecl
	Global       map[string]*Property
	DefaultClass string
	Warnings     []Warning
}

// parseState carries both parser passes
type parseState struct {
	decl     *Declarations
	rejected map[string]bool
	memo     map[string]map[string]bool // scope -> running keys already processed
}

// Parse reads class tokens under the naming convention. It never fails:
// malformed tokens and hyphenated component names are dropped with a warning.
//
// Identifiers and extension edges are collected in a first pass, property
// declarations in a second one, so token order never affects the result.
func Parse(tokens []string) *Declarations {
	s := &parseState{
		decl: &Declarations{
			Tokens:     uniqueSorted(tokens),
			Components: make(map[string]*ComponentDecl),
			Global:     make(map[string]*Property),
		},
		rejected: make(map[string]bool),
		memo:     make(map[string]map[string]bool),
	}

	for _, token := range s.decl.Tokens {
		s.collectIdentifiers(token)
	}
	s.dropRejected()

	for _, token := range s.decl.Tokens {
		s.collectProperties(token)
	}

	return s.decl
}

// splitToken separates the component part from the "--" segments
func splitToken(token string) (head string, segments []string) {
	parts := strings.Split(token, SegmentSeparator)
	return parts[0], parts[1:]
}

func (s *parseState) warn(token, format string, args ...any) {
	s.decl.Warnings = append(s.decl.Warnings, Warning{
		Token:   token,
		Message: fmt.Sprintf(format, args...),
	})
}

func (s *parseState) register(name string) *ComponentDecl {
	c, ok := s.decl.Components[name]
	if !ok {
		c = &ComponentDecl{Name: name, Props: make(map[string]*Property)}
		s.decl.Components[name] = c
	}
	return c
}

func (s *parseState) reject(token, name string) {
	if s.rejected[name] {
		return
	}
	s.rejected[name] = true
	s.warn(token, "component name cannot contain dashes: %s will be ignored", name)
}

func (s *parseState) collectIdentifiers(token string) {
	head, segments := splitToken(token)

	if strings.Contains(head, ExtensionMarker) {
		parts := strings.Split(head, ExtensionMarker)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			s.warn(token, "malformed extension, expected Child%sParent", ExtensionMarker)
			return
		}
		if len(segments) > 0 {
			s.warn(token, "properties cannot be declared on an extension token, segments ignored")
		}

		child, parent := parts[0], parts[1]
		if strings.Contains(child, "-") {
			s.reject(token, child)
		}
		if strings.Contains(parent, "-") {
			s.reject(token, parent)
		}
		if s.rejected[child] || s.rejected[parent] {
			return
		}

		c := s.register(child)
		s.register(parent)
		if !contains(c.Extensions, parent) {
			c.Extensions = append(c.Extensions, parent)
		}
		return
	}

	if head == "" {
		if token == DefaultToken {
			s.decl.DefaultClass = token
		}
		return
	}

	if strings.Contains(head, "-") {
		s.reject(token, head)
		return
	}

	c := s.register(head)
	if len(segments) == 0 {
		c.HasBase = true
	}
}

// dropRejected removes components, and edges to components, that were
// rejected after being registered by an earlier token
func (s *parseState) dropRejected() {
	for name := range s.rejected {
		delete(s.decl.Components, name)
	}
	for _, c := range s.decl.Components {
		kept := c.Extensions[:0]
		for _, parent := range c.Extensions {
			if !s.rejected[parent] {
				kept = append(kept, parent)
			}
		}
		c.Extensions = kept
	}
}

func (s *parseState) collectProperties(token string) {
	head, segments := splitToken(token)
	if len(segments) == 0 || strings.Contains(head, ExtensionMarker) || s.rejected[head] {
		return
	}

	props := s.decl.Global
	if head != "" {
		c, ok := s.decl.Components[head]
		if !ok {
			return
		}
		props = c.Props
	}

	memo, ok := s.memo[head]
	if !ok {
		memo = make(map[string]bool)
		s.memo[head] = memo
	}

	key := head
	for _, segment := range segments {
		key += SegmentSeparator + segment
		if memo[key] {
			continue
		}
		memo[key] = true

		switch {
		case segment == DefaultSegment || segment == "":
			// marks the prefix as seen, declares nothing
		case strings.Contains(segment, ExtensionMarker):
			s.warn(token, "segment %q cannot contain %s, ignored", segment, ExtensionMarker)
		case strings.Contains(segment, TernaryMarker):
			parts := strings.Split(segment, TernaryMarker)
			value, flag := parts[0], parts[1]
			if value == "" || flag == "" {
				s.warn(token, "malformed ternary segment %q, expected value%sflag", segment, TernaryMarker)
				continue
			}
			s.declareTernary(props, token, flag, value, key)
		default:
			s.declareBoolean(props, token, segment, key)
		}
	}
}

func (s *parseState) declareBoolean(props map[string]*Property, token, flag, class string) {
	p, ok := props[flag]
	if !ok {
		props[flag] = &Property{Name: flag, Kind: Boolean, Class: class}
		return
	}
	if p.Kind != Boolean {
		s.warn(token, "property %q is already declared as %s, boolean declaration ignored", flag, p.Kind)
		return
	}
	p.Class = class
}

func (s *parseState) declareTernary(props map[string]*Property, token, flag, value, class string) {
	p, ok := props[flag]
	if !ok {
		p = &Property{Name: flag, Kind: Ternary, Values: make(map[string]string)}
		props[flag] = p
	}
	if p.Kind != Ternary {
		s.warn(token, "property %q is already declared as %s, value %q ignored", flag, p.Kind, value)
		return
	}
	p.Values[value] = class
}

func uniqueSorted(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func contains(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

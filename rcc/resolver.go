package rcc

import (
	"slices"
	"sort"
	"strings"
)

// CycleError reports an extension chain that leads back to one of its members.
type CycleError struct {
	Path []string // traversal order, first repeated component last
}

func (e *CycleError) Error() string {
	return "recursive extensions: " + strings.Join(e.Path, " extends ")
}

// Token returns the extension token that closes the cycle.
func (e *CycleError) Token() string {
	if len(e.Path) < 2 {
		return ""
	}
	return e.Path[len(e.Path)-2] + ExtensionMarker + e.Path[len(e.Path)-1]
}

// Component is a resolved component. It is immutable once built.
type Component struct {
	Name       string
	BaseClass  string   // token equal to Name, empty when the stylesheet has none
	Extensions []string // direct parents in declaration order
	Ancestors  []string // transitive parents, depth-first pre-order
	Props      map[string]*Property
	Legacy     map[string][]string // flag -> ancestors declaring it, in ancestor order

	flags []string
}

// Flags returns every flag the component recognizes in composition order:
// global flags, then inherited ones, then its own, each group sorted.
func (c *Component) Flags() []string {
	return c.flags
}

// OwnPropNames returns the component's own flags, sorted.
func (c *Component) OwnPropNames() []string {
	return sortedKeys(c.Props)
}

// InheritedPropNames returns inherited flags not shadowed by an own
// declaration, sorted. This is the set a type description should add.
func (c *Component) InheritedPropNames() []string {
	names := make([]string, 0, len(c.Legacy))
	for name := range c.Legacy {
		if _, own := c.Props[name]; !own {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Model is the resolved component hierarchy of one stylesheet.
type Model struct {
	Tokens       []string
	Global       map[string]*Property
	DefaultClass string
	StyleKeys    []string
	Warnings     []Warning

	components map[string]*Component
	names      []string
	classes    map[string]string // token -> runtime class name
}

// Build parses and resolves class tokens in one step.
func Build(tokens []string) (*Model, error) {
	return Resolve(Parse(tokens))
}

// StyleModel returns a model with the style surface of tokens only. Component
// tokens are not parsed, so it never fails and has no components.
func StyleModel(tokens []string) *Model {
	tokens = uniqueSorted(tokens)
	m := &Model{
		Tokens:     tokens,
		StyleKeys:  styleKeys(tokens),
		components: make(map[string]*Component),
		classes:    make(map[string]string, len(tokens)),
	}
	for _, t := range tokens {
		m.classes[t] = t
		if t == DefaultToken {
			m.DefaultClass = t
		}
	}
	return m
}

// Resolve validates the extension graph and computes ancestor and legacy
// property sets. It fails with a *CycleError when a component extends itself,
// directly or through other components.
func Resolve(d *Declarations) (*Model, error) {
	names := make([]string, 0, len(d.Components))
	for name := range d.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := checkCycles(d.Components, names); err != nil {
		return nil, err
	}

	m := &Model{
		Tokens:       d.Tokens,
		Global:       d.Global,
		DefaultClass: d.DefaultClass,
		StyleKeys:    styleKeys(d.Tokens),
		Warnings:     d.Warnings,
		components:   make(map[string]*Component, len(names)),
		names:        names,
		classes:      make(map[string]string, len(d.Tokens)),
	}
	for _, t := range d.Tokens {
		m.classes[t] = t
	}

	globalFlags := sortedKeys(d.Global)
	for _, name := range names {
		decl := d.Components[name]
		c := &Component{
			Name:       name,
			Extensions: slices.Clone(decl.Extensions),
			Ancestors:  ancestors(d.Components, name),
			Props:      decl.Props,
			Legacy:     make(map[string][]string),
		}
		if decl.HasBase {
			c.BaseClass = name
		}
		for _, ancestor := range c.Ancestors {
			for _, flag := range sortedKeys(d.Components[ancestor].Props) {
				c.Legacy[flag] = append(c.Legacy[flag], ancestor)
			}
		}
		c.flags = flagOrder(globalFlags, sortedKeys(c.Legacy), sortedKeys(c.Props))
		m.components[name] = c
	}

	return m, nil
}

// checkCycles walks the parents of every component, not only roots, since a
// component may only be reachable through another component's extension token
func checkCycles(components map[string]*ComponentDecl, names []string) *CycleError {
	acyclic := make(map[string]bool, len(names))

	var visit func(name string, path []string) *CycleError
	visit = func(name string, path []string) *CycleError {
		if slices.Contains(path, name) {
			return &CycleError{Path: append(slices.Clone(path), name)}
		}
		if acyclic[name] {
			return nil
		}
		path = append(path, name)
		if decl, ok := components[name]; ok {
			for _, parent := range decl.Extensions {
				if err := visit(parent, path); err != nil {
					return err
				}
			}
		}
		acyclic[name] = true
		return nil
	}

	for _, name := range names {
		if err := visit(name, nil); err != nil {
			return err
		}
	}
	return nil
}

func ancestors(components map[string]*ComponentDecl, name string) []string {
	var out []string
	seen := map[string]bool{name: true}

	var walk func(string)
	walk = func(n string) {
		decl, ok := components[n]
		if !ok {
			return
		}
		for _, parent := range decl.Extensions {
			if seen[parent] {
				continue
			}
			seen[parent] = true
			out = append(out, parent)
			walk(parent)
		}
	}
	walk(name)

	return out
}

func flagOrder(groups ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range groups {
		for _, flag := range group {
			if !seen[flag] {
				seen[flag] = true
				out = append(out, flag)
			}
		}
	}
	return out
}

// styleKeys lists the tokens exported as plain style members: everything but
// the default marker, extension tokens and tokens of rejected components
func styleKeys(tokens []string) []string {
	keys := make([]string, 0, len(tokens))
	for _, t := range tokens {
		head, _ := splitToken(t)
		if t == DefaultToken || strings.Contains(t, ExtensionMarker) || strings.Contains(head, "-") {
			continue
		}
		keys = append(keys, t)
	}
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Component returns the resolved component with the given name.
func (m *Model) Component(name string) (*Component, bool) {
	c, ok := m.components[name]
	return c, ok
}

// ComponentNames returns all component names, sorted.
func (m *Model) ComponentNames() []string {
	return m.names
}

// ClassName maps a token to the class name emitted at runtime. Tokens that do
// not exist in the stylesheet map to "".
func (m *Model) ClassName(token string) string {
	return m.classes[token]
}

// HasGlobalProps reports whether the global scope declares any property.
func (m *Model) HasGlobalProps() bool {
	return len(m.Global) > 0
}

// WithClassMap returns a copy of the model whose tokens map to the given
// runtime class names, e.g. hashed CSS module names. Tokens missing from
// classes keep their own name.
func (m *Model) WithClassMap(classes map[string]string) *Model {
	cp := *m
	cp.classes = make(map[string]string, len(m.classes))
	for token, name := range m.classes {
		if mapped, ok := classes[token]; ok && mapped != "" {
			name = mapped
		}
		cp.classes[token] = name
	}
	return &cp
}

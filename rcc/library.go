package rcc

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownComponent is returned when a library has no component of that name.
var ErrUnknownComponent = errors.New("unknown component")

// ErrUnknownTag is returned for tags outside the renderable tag table.
var ErrUnknownTag = errors.New("unknown tag")

// DefaultDebugPrefix prefixes component display names.
const DefaultDebugPrefix = "S."

// DebugAttribute carries the display name on rendered elements in debug mode.
const DebugAttribute = "data-rcc-name"

// Library creates components from one resolved model. It is safe for
// concurrent use.
type Library struct {
	model    *Model
	prefix   string
	debug    bool
	renderer Renderer

	mu       sync.Mutex
	variants map[string]*Variant // "Component" or "Component.tag"
}

// Option configures a Library.
type Option func(*Library)

// WithDebugPrefix sets the display name prefix (default "S.").
func WithDebugPrefix(prefix string) Option {
	return func(l *Library) { l.prefix = prefix }
}

// WithDebug adds the display name to rendered elements.
func WithDebug(debug bool) Option {
	return func(l *Library) { l.debug = debug }
}

// WithRenderer replaces the element renderer.
func WithRenderer(r Renderer) Option {
	return func(l *Library) { l.renderer = r }
}

// NewLibrary returns a library over a resolved model.
func NewLibrary(model *Model, opts ...Option) *Library {
	l := &Library{
		model:    model,
		prefix:   DefaultDebugPrefix,
		renderer: NodeRenderer{},
		variants: make(map[string]*Variant),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// MustLoad builds a library from class tokens and panics when the extension
// graph is invalid. Generated code uses it with tokens already validated at
// generation time.
func MustLoad(tokens []string, opts ...Option) *Library {
	model, err := Build(tokens)
	if err != nil {
		panic(fmt.Sprintf("rcc: %v", err))
	}
	return NewLibrary(model, opts...)
}

// Model returns the library's model.
func (l *Library) Model() *Model {
	return l.model
}

// Component returns the component rendered as the default tag.
func (l *Library) Component(name string) (*Variant, error) {
	return l.variant(name, "")
}

// Tagged returns the component bound to a tag. The tag lookup is
// case-insensitive; variants are created on first access and reused.
func (l *Library) Tagged(name, tag string) (*Variant, error) {
	canonical, ok := LookupTag(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTag, tag)
	}
	return l.variant(name, canonical)
}

func (l *Library) variant(name, tag string) (*Variant, error) {
	key := name
	if tag != "" {
		key += "." + tag
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.variants[key]; ok {
		return v, nil
	}

	c, ok := l.model.Component(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}

	v := &Variant{lib: l, component: c, tag: tag, displayName: l.prefix + key}
	l.variants[key] = v
	return v, nil
}

// fragment computes the classes one flag contributes for v, layer by layer:
// global scope, then each inheriting ancestor in ancestor order, then the
// component's own declaration
func (l *Library) fragment(c *Component, flag string, v Value) string {
	var classes []string
	add := func(p *Property) {
		if token, ok := p.match(v); ok {
			if name := l.model.ClassName(token); name != "" {
				classes = append(classes, name)
			}
		}
	}

	add(l.model.Global[flag])
	for _, ancestor := range c.Legacy[flag] {
		if parent, ok := l.model.Component(ancestor); ok {
			add(parent.Props[flag])
		}
	}
	add(c.Props[flag])

	return strings.Join(classes, " ")
}

// Variant is a component bound to a rendering tag.
type Variant struct {
	lib         *Library
	component   *Component
	tag         string // empty for the default tag
	displayName string
}

// Component returns the resolved component.
func (v *Variant) Component() *Component {
	return v.component
}

// Tag returns the element the variant renders as.
func (v *Variant) Tag() string {
	if v.tag == "" {
		return DefaultTag
	}
	return v.tag
}

// DisplayName returns the debug name, e.g. "S.Btn" or "S.Btn.button".
func (v *Variant) DisplayName() string {
	return v.displayName
}

// New creates an instance with its own composition cache.
func (v *Variant) New() *Instance {
	return &Instance{variant: v, memo: make(map[string]memoEntry)}
}

type memoEntry struct {
	value   Value
	classes string
}

// Instance composes class strings for one component instance. The per-flag
// cache lives on the instance, so an Instance must not be shared between
// goroutines; independent instances may be used concurrently.
type Instance struct {
	variant *Variant
	memo    map[string]memoEntry
}

// Variant returns the variant the instance was created from.
func (in *Instance) Variant() *Variant {
	return in.variant
}

// ClassName composes the class string for values. extra is prepended to the
// inherited base classes, typically a class passed in by the caller.
// Unknown flags and unmapped ternary values contribute nothing.
func (in *Instance) ClassName(values Values, extra string) string {
	lib := in.variant.lib
	m := lib.model
	c := in.variant.component

	parts := make([]string, 0, 4+len(c.Ancestors)+len(c.flags))
	if c.BaseClass != "" {
		parts = append(parts, m.ClassName(c.BaseClass))
	}
	if m.DefaultClass != "" {
		parts = append(parts, m.ClassName(m.DefaultClass))
	}
	parts = append(parts, extra)
	for _, ancestor := range c.Ancestors {
		if parent, ok := m.Component(ancestor); ok && parent.BaseClass != "" {
			parts = append(parts, m.ClassName(parent.BaseClass))
		}
	}

	for _, flag := range c.flags {
		v := values[flag]
		if !v.Truthy() {
			continue
		}
		if cached, ok := in.memo[flag]; ok && cached.value == v {
			parts = append(parts, cached.classes)
			continue
		}
		classes := lib.fragment(c, flag, v)
		in.memo[flag] = memoEntry{value: v, classes: classes}
		parts = append(parts, classes)
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

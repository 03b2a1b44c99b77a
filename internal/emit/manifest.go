// Package emit writes the artifacts generated for a stylesheet: a JSON
// manifest describing the resolved components, and a Go source file exposing
// them as typed values.
package emit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/yacobolo/rccgen/rcc"
)

// ManifestVersion is the schema version of Manifest.
const ManifestVersion = "1.0"

// Options describes how a stylesheet is emitted.
type Options struct {
	Resource    string // source path, recorded in the artifacts
	PackageName string // Go package of the generated file
	Name        string // identifier prefix; derived from Resource when empty
	StyleOnly   bool   // emit the style surface only
	DebugPrefix string // component display name prefix
	Runtime     string // import path of the runtime package
}

// DefaultRuntime is the import path of the runtime package.
const DefaultRuntime = "github.com/yacobolo/rccgen/rcc"

func (o Options) name() string {
	if o.Name != "" {
		return o.Name
	}
	return StemName(o.Resource)
}

func (o Options) runtime() string {
	if o.Runtime != "" {
		return o.Runtime
	}
	return DefaultRuntime
}

// Manifest is the JSON description of one stylesheet.
type Manifest struct {
	Version      string              `json:"version"`
	Resource     string              `json:"resource"`
	Fingerprint  string              `json:"fingerprint"`
	StyleOnly    bool                `json:"style_only"`
	DebugPrefix  string              `json:"debug_prefix,omitempty"`
	StyleKeys    []string            `json:"style_keys"`
	DefaultClass string              `json:"default_class,omitempty"`
	GlobalProps  []ManifestProp      `json:"global_props,omitempty"`
	Components   []ManifestComponent `json:"components,omitempty"`
	Warnings     []string            `json:"warnings,omitempty"`
}

// ManifestProp is a declared flag.
type ManifestProp struct {
	Name   string            `json:"name"`
	Kind   string            `json:"kind"`
	Class  string            `json:"class,omitempty"`
	Values map[string]string `json:"values,omitempty"`
}

// ManifestLegacy is an inherited flag and the ancestors contributing it.
type ManifestLegacy struct {
	Name string   `json:"name"`
	From []string `json:"from"`
}

// ManifestComponent is one resolved component.
type ManifestComponent struct {
	Name        string           `json:"name"`
	BaseClass   string           `json:"base_class,omitempty"`
	Extensions  []string         `json:"extensions,omitempty"`
	Ancestors   []string         `json:"ancestors,omitempty"`
	Props       []ManifestProp   `json:"props,omitempty"`
	LegacyProps []ManifestLegacy `json:"legacy_props,omitempty"`
	Flags       []string         `json:"flags,omitempty"`
}

// Fingerprint identifies the generated output: it changes whenever the
// tokens or any setting affecting the artifact change.
func Fingerprint(tokens []string, opts Options) string {
	h := sha256.New()
	io.WriteString(h, strings.Join(tokens, " "))
	io.WriteString(h, "\x00"+strconv.FormatBool(opts.StyleOnly))
	io.WriteString(h, "\x00"+opts.DebugPrefix)
	io.WriteString(h, "\x00"+opts.PackageName)
	return hex.EncodeToString(h.Sum(nil))
}

// NewManifest describes a resolved model.
func NewManifest(m *rcc.Model, opts Options) *Manifest {
	out := &Manifest{
		Version:      ManifestVersion,
		Resource:     opts.Resource,
		Fingerprint:  Fingerprint(m.Tokens, opts),
		StyleOnly:    opts.StyleOnly,
		DebugPrefix:  opts.DebugPrefix,
		StyleKeys:    m.StyleKeys,
		DefaultClass: m.DefaultClass,
		GlobalProps:  manifestProps(m.Global),
	}
	if out.StyleKeys == nil {
		out.StyleKeys = []string{}
	}
	for _, w := range m.Warnings {
		out.Warnings = append(out.Warnings, w.String())
	}
	if opts.StyleOnly {
		return out
	}

	for _, name := range m.ComponentNames() {
		c, _ := m.Component(name)
		mc := ManifestComponent{
			Name:       c.Name,
			BaseClass:  c.BaseClass,
			Extensions: c.Extensions,
			Ancestors:  c.Ancestors,
			Props:      manifestProps(c.Props),
			Flags:      c.Flags(),
		}
		for _, flag := range sortedNames(c.Legacy) {
			mc.LegacyProps = append(mc.LegacyProps, ManifestLegacy{Name: flag, From: c.Legacy[flag]})
		}
		out.Components = append(out.Components, mc)
	}
	return out
}

func manifestProps(props map[string]*rcc.Property) []ManifestProp {
	var out []ManifestProp
	for _, name := range sortedNames(props) {
		p := props[name]
		out = append(out, ManifestProp{
			Name:   p.Name,
			Kind:   p.Kind.String(),
			Class:  p.Class,
			Values: p.Values,
		})
	}
	return out
}

// WriteManifest writes the manifest as indented JSON
func WriteManifest(w io.Writer, m *Manifest) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(m)
}

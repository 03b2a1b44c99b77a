package emit

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"sort"
	"strconv"

	"github.com/yacobolo/rccgen/rcc"
)

// propField is one field of a generated props struct
type propField struct {
	flag  string
	field string
	typ   string // "bool" or a generated string type
}

type goWriter struct {
	buf   bytes.Buffer
	model *rcc.Model
	opts  Options
	stem  string
	types *namer

	// ternary types per scope ("" is the global scope) and flag
	ternaries map[string]map[string]string
}

// GoFile renders the Go source for a resolved model. The output is gofmt'd.
func GoFile(m *rcc.Model, opts Options) ([]byte, error) {
	if opts.PackageName == "" {
		return nil, errors.New("package name is required")
	}
	stem := opts.name()
	w := &goWriter{
		model:     m,
		opts:      opts,
		stem:      stem,
		types:     newNamer(stem, stem+"Style", stem+"GlobalProps"),
		ternaries: make(map[string]map[string]string),
	}

	w.header()
	w.style()
	if !opts.StyleOnly {
		w.library()
		w.ternaryTypes()
		w.globalProps()
		for _, name := range m.ComponentNames() {
			c, _ := m.Component(name)
			w.componentProps(c)
		}
	}

	src, err := format.Source(w.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

func (w *goWriter) printf(format string, args ...any) {
	fmt.Fprintf(&w.buf, format, args...)
}

func (w *goWriter) header() {
	w.printf("// Code generated by rccgen from %s. DO NOT EDIT.\n\n", w.opts.Resource)
	w.printf("package %s\n\n", w.opts.PackageName)
	if !w.opts.StyleOnly {
		w.printf("import %q\n\n", w.opts.runtime())
	}
}

func (w *goWriter) style() {
	fields := newNamer()
	names := make([]string, len(w.model.StyleKeys))
	for i, key := range w.model.StyleKeys {
		names[i] = fields.name(key)
	}

	w.printf("// %sStyle holds the class names declared in %s.\n", w.stem, w.opts.Resource)
	w.printf("var %sStyle = struct {\n", w.stem)
	for _, name := range names {
		w.printf("\t%s string\n", name)
	}
	w.printf("}{\n")
	for i, key := range w.model.StyleKeys {
		w.printf("\t%s: %q,\n", names[i], w.model.ClassName(key))
	}
	w.printf("}\n\n")
}

func (w *goWriter) library() {
	w.printf("var %sClassNames = []string{\n", lowerFirst(w.stem))
	for _, token := range w.model.Tokens {
		w.printf("\t%q,\n", token)
	}
	w.printf("}\n\n")

	w.printf("// %s creates the components declared in %s.\n", w.stem, w.opts.Resource)
	w.printf("var %s = rcc.MustLoad(%sClassNames", w.stem, lowerFirst(w.stem))
	if w.opts.DebugPrefix != "" && w.opts.DebugPrefix != rcc.DefaultDebugPrefix {
		w.printf(", rcc.WithDebugPrefix(%q)", w.opts.DebugPrefix)
	}
	w.printf(")\n\n")
}

func (w *goWriter) ternaryTypes() {
	declare := func(scope string, props map[string]*rcc.Property) {
		for _, flag := range sortedNames(props) {
			p := props[flag]
			if p.Kind != rcc.Ternary {
				continue
			}
			owner := scope
			if owner == "" {
				owner = w.stem
			}
			typ := w.types.name(owner + "-" + flag)
			if w.ternaries[scope] == nil {
				w.ternaries[scope] = make(map[string]string)
			}
			w.ternaries[scope][flag] = typ

			w.printf("// %s selects the %q variant", typ, flag)
			if scope != "" {
				w.printf(" of %s", scope)
			}
			w.printf(".\ntype %s string\n\n", typ)

			values := newNamer()
			w.printf("const (\n")
			for _, value := range p.ValueNames() {
				w.printf("\t%s%s %s = %q\n", typ, values.name(value), typ, value)
			}
			w.printf(")\n\n")
		}
	}

	declare("", w.model.Global)
	for _, name := range w.model.ComponentNames() {
		c, _ := w.model.Component(name)
		declare(name, c.Props)
	}
}

func (w *goWriter) fieldType(scope string, p *rcc.Property) string {
	if p.Kind == rcc.Ternary {
		return w.ternaries[scope][p.Name]
	}
	return "bool"
}

func (w *goWriter) globalProps() {
	if !w.model.HasGlobalProps() {
		return
	}
	var fields []propField
	names := newNamer()
	for _, flag := range sortedNames(w.model.Global) {
		fields = append(fields, propField{
			flag:  flag,
			field: names.name(flag),
			typ:   w.fieldType("", w.model.Global[flag]),
		})
	}

	typ := w.stem + "GlobalProps"
	w.printf("// %s are the flags every component of %s accepts.\n", typ, w.opts.Resource)
	w.printf("type %s struct {\n", typ)
	for _, f := range fields {
		w.printf("\t%s %s\n", f.field, f.typ)
	}
	w.printf("}\n\n")
	w.values(typ, "", fields)
}

// componentProps declares the props of c: global props embedded, then
// inherited flags not shadowed by an own declaration, then its own flags.
func (w *goWriter) componentProps(c *rcc.Component) {
	if len(c.Flags()) == 0 {
		return
	}

	names := newNamer(w.stem + "GlobalProps")
	var fields []propField
	for _, flag := range c.InheritedPropNames() {
		ancestor, _ := w.model.Component(c.Legacy[flag][0])
		fields = append(fields, propField{
			flag:  flag,
			field: names.name(flag),
			typ:   w.fieldType(ancestor.Name, ancestor.Props[flag]),
		})
	}
	for _, flag := range c.OwnPropNames() {
		fields = append(fields, propField{
			flag:  flag,
			field: names.name(flag),
			typ:   w.fieldType(c.Name, c.Props[flag]),
		})
	}

	embedded := ""
	if w.model.HasGlobalProps() {
		embedded = w.stem + "GlobalProps"
	}

	typ := w.types.name(c.Name + "Props")
	w.printf("// %s are the flags of the %s component.\n", typ, c.Name)
	w.printf("type %s struct {\n", typ)
	if embedded != "" {
		w.printf("\t%s\n", embedded)
	}
	for _, f := range fields {
		w.printf("\t%s %s\n", f.field, f.typ)
	}
	w.printf("}\n\n")
	w.values(typ, embedded, fields)
}

func (w *goWriter) values(typ, embedded string, fields []propField) {
	w.printf("// Values converts the props for composition.\n")
	w.printf("func (p %s) Values() rcc.Values {\n", typ)
	if embedded != "" {
		w.printf("\tv := p.%s.Values()\n", embedded)
	} else {
		w.printf("\tv := make(rcc.Values, %d)\n", len(fields))
	}
	for _, f := range fields {
		if f.typ == "bool" {
			w.printf("\tif p.%s {\n\t\tv[%s] = rcc.Bool(true)\n\t}\n", f.field, strconv.Quote(f.flag))
			continue
		}
		w.printf("\tif p.%s != \"\" {\n\t\tv[%s] = rcc.Str(string(p.%s))\n\t}\n", f.field, strconv.Quote(f.flag), f.field)
	}
	w.printf("\treturn v\n}\n\n")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] += 'a' - 'A'
	}
	return string(r)
}

func sortedNames[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

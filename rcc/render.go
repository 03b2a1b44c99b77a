package rcc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Renderer turns a tag, a class string, pass-through attributes and children
// into an element.
type Renderer interface {
	Render(tag, className string, attrs []html.Attribute, children []*html.Node) *html.Node
}

// NodeRenderer renders elements as x/net/html nodes.
type NodeRenderer struct{}

// Render builds an element node. Children must not already have a parent.
func (NodeRenderer) Render(tag, className string, attrs []html.Attribute, children []*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if className != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: className})
	}
	n.Attr = append(n.Attr, attrs...)
	for _, child := range children {
		n.AppendChild(child)
	}
	return n
}

// Element renders the instance. A "class" attribute is treated as the extra
// class string; attributes named after a recognized flag are consumed and
// not passed through.
func (in *Instance) Element(values Values, attrs []html.Attribute, children ...*html.Node) *html.Node {
	v := in.variant
	flags := make(map[string]bool, len(v.component.flags))
	for _, f := range v.component.flags {
		flags[f] = true
	}

	var extra []string
	pass := make([]html.Attribute, 0, len(attrs)+1)
	if v.lib.debug {
		pass = append(pass, html.Attribute{Key: DebugAttribute, Val: v.displayName})
	}
	for _, a := range attrs {
		switch {
		case a.Namespace == "" && a.Key == "class":
			extra = append(extra, a.Val)
		case flags[a.Key]:
			// consumed by composition
		default:
			pass = append(pass, a)
		}
	}

	className := in.ClassName(values, strings.Join(extra, " "))
	return v.lib.renderer.Render(v.Tag(), className, pass, children)
}

// RenderHTML serializes a node.
func RenderHTML(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Text returns a text node, a convenience for element children.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

package rcc

import "strings"

// htmlTags and svgTags are the elements a component can be rendered as.
var htmlTags = []string{
	"a", "abbr", "address", "area", "article", "aside", "audio", "b", "base",
	"bdi", "bdo", "big", "blockquote", "body", "br", "button", "canvas",
	"caption", "cite", "code", "col", "colgroup", "data", "datalist", "dd",
	"del", "details", "dfn", "dialog", "div", "dl", "dt", "em", "embed",
	"fieldset", "figcaption", "figure", "footer", "form", "h1", "h2", "h3",
	"h4", "h5", "h6", "head", "header", "hgroup", "hr", "html", "i", "iframe",
	"img", "input", "ins", "kbd", "keygen", "label", "legend", "li", "link",
	"main", "map", "mark", "menu", "menuitem", "meta", "meter", "nav",
	"noscript", "object", "ol", "optgroup", "option", "output", "p", "param",
	"picture", "pre", "progress", "q", "rp", "rt", "ruby", "s", "samp", "slot",
	"script", "section", "select", "small", "source", "span", "strong",
	"style", "sub", "summary", "sup", "table", "template", "tbody", "td",
	"textarea", "tfoot", "th", "thead", "time", "title", "tr", "track", "u",
	"ul", "var", "video", "wbr", "webview",
}

var svgTags = []string{
	"animate", "circle", "clipPath", "defs", "desc", "ellipse", "feBlend",
	"feColorMatrix", "feComponentTransfer", "feComposite", "feConvolveMatrix",
	"feDiffuseLighting", "feDisplacementMap", "feDistantLight", "feDropShadow",
	"feFlood", "feFuncA", "feFuncB", "feFuncG", "feFuncR", "feGaussianBlur",
	"feImage", "feMerge", "feMergeNode", "feMorphology", "feOffset",
	"fePointLight", "feSpecularLighting", "feSpotLight", "feTile",
	"feTurbulence", "filter", "foreignObject", "g", "image", "line",
	"linearGradient", "marker", "mask", "metadata", "path", "pattern",
	"polygon", "polyline", "radialGradient", "rect", "stop", "svg", "switch",
	"symbol", "text", "textPath", "tspan", "use", "view",
}

// tagTable maps a lower-cased tag name to its canonical spelling.
var tagTable = func() map[string]string {
	table := make(map[string]string, len(htmlTags)+len(svgTags))
	for _, t := range htmlTags {
		table[t] = t
	}
	for _, t := range svgTags {
		table[strings.ToLower(t)] = t
	}
	return table
}()

// DefaultTag is the element a component renders as when no tag is chosen.
const DefaultTag = "div"

// LookupTag returns the canonical spelling of a renderable tag. The lookup is
// case-insensitive: "CLIPPATH" and "clippath" both return "clipPath".
func LookupTag(name string) (string, bool) {
	tag, ok := tagTable[strings.ToLower(name)]
	return tag, ok
}

// Tags returns every renderable tag, HTML tags first.
func Tags() []string {
	out := make([]string, 0, len(htmlTags)+len(svgTags))
	out = append(out, htmlTags...)
	return append(out, svgTags...)
}

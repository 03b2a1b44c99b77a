package emit

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// goName converts a class token or flag to PascalCase:
// "Btn--large-size" becomes "BtnLargeSize", "--fs-12px_as_font-size"
// becomes "Fs12pxAsFontSize".
func goName(token string) string {
	parts := strings.FieldsFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for i, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}

	name := strings.Join(parts, "")
	if name == "" {
		return "X"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "N" + name
	}
	return name
}

// StemName derives the identifier prefix for a stylesheet:
// "ui/button.module.css" becomes "Button".
func StemName(resource string) string {
	base := filepath.Base(resource)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return goName(base)
}

// namer hands out unique identifiers within one scope
type namer struct {
	used map[string]bool
}

func newNamer(reserved ...string) *namer {
	n := &namer{used: make(map[string]bool)}
	for _, r := range reserved {
		n.used[r] = true
	}
	return n
}

func (n *namer) name(token string) string {
	base := goName(token)
	id := base
	for i := 2; n.used[id]; i++ {
		id = fmt.Sprintf("%s%d", base, i)
	}
	n.used[id] = true
	return id
}

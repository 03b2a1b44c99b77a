package emit

import (
	"bytes"
	"encoding/json"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/rccgen/rcc"
)

var buttonStyles = []string{
	"--DEFAULT",
	"Wrapper",
	"Wrapper--dark-mode",
	"BaseBtn",
	"BaseBtn--size",
	"Btn_ext_BaseBtn",
	"Btn",
	"Btn--sm_as_size",
	"Btn--lg_as_size",
	"DeleteBtn",
	"DeleteBtn_ext_Btn",
	"DeleteBtn--border-radius-2px",
	"--fs-12px_as_font-size",
	"--fs-15px_as_font-size",
}

func buildModel(t *testing.T, tokens []string) *rcc.Model {
	t.Helper()
	m, err := rcc.Build(tokens)
	require.NoError(t, err)
	return m
}

func TestGoName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Btn", "Btn"},
		{"Btn--large-size", "BtnLargeSize"},
		{"--fs-12px_as_font-size", "Fs12pxAsFontSize"},
		{"border-radius-2px", "BorderRadius2px"},
		{"2px", "N2px"},
		{"---", "X"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, goName(tt.input))
		})
	}
}

func TestStemName(t *testing.T) {
	assert.Equal(t, "Button", StemName("web/ui/button.module.css"))
	assert.Equal(t, "DataTable", StemName("data-table.scss"))
}

func TestNamerDisambiguates(t *testing.T) {
	n := newNamer("Style")
	assert.Equal(t, "AB", n.name("a-b"))
	assert.Equal(t, "AB2", n.name("a_b"))
	assert.Equal(t, "Style2", n.name("style"))
}

func parseGo(t *testing.T, src []byte) {
	t.Helper()
	_, err := parser.ParseFile(token.NewFileSet(), "button.rcc.go", src, parser.AllErrors)
	require.NoError(t, err, string(src))
}

func TestGoFile(t *testing.T) {
	src, err := GoFile(buildModel(t, buttonStyles), Options{
		Resource:    "button.css",
		PackageName: "ui",
	})
	require.NoError(t, err)
	parseGo(t, src)

	out := string(src)
	assert.Contains(t, out, "// Code generated by rccgen from button.css. DO NOT EDIT.")
	assert.Contains(t, out, "package ui")
	assert.Contains(t, out, `import "github.com/yacobolo/rccgen/rcc"`)
	assert.Contains(t, out, "var ButtonStyle = struct {")
	assert.Regexp(t, `BtnLgAsSize:\s+"Btn--lg_as_size",`, out)
	assert.Regexp(t, `Fs12pxAsFontSize:\s+"--fs-12px_as_font-size",`, out)
	assert.NotContains(t, out, "DeleteBtnExtBtn", "extension tokens are not style keys")
	assert.NotContains(t, out, "DEFAULT:", "the default class is not a style key")
	assert.Contains(t, out, "var Button = rcc.MustLoad(buttonClassNames)")

	// ternary types
	assert.Contains(t, out, "type ButtonFontSize string")
	assert.Regexp(t, `ButtonFontSizeFs12px\s+ButtonFontSize = "fs-12px"`, out)
	assert.Contains(t, out, "type BtnSize string")
	assert.Regexp(t, `BtnSizeLg\s+BtnSize = "lg"`, out)

	// props
	assert.Contains(t, out, "type ButtonGlobalProps struct {")
	assert.Regexp(t, `type BaseBtnProps struct \{\s+ButtonGlobalProps\s+Size\s+bool\s+\}`, out)
	assert.Regexp(t, `type BtnProps struct \{\s+ButtonGlobalProps\s+Size\s+BtnSize\s+\}`, out)
	assert.Regexp(t, `type DeleteBtnProps struct \{\s+ButtonGlobalProps\s+Size\s+BtnSize\s+BorderRadius2px\s+bool\s+\}`, out)
	assert.Contains(t, out, "func (p DeleteBtnProps) Values() rcc.Values {")
	assert.Contains(t, out, `v["border-radius-2px"] = rcc.Bool(true)`)
	assert.Contains(t, out, `v["size"] = rcc.Str(string(p.Size))`)
}

func TestGoFileStyleOnly(t *testing.T) {
	src, err := GoFile(buildModel(t, buttonStyles), Options{
		Resource:    "ui/button.module.css",
		PackageName: "ui",
		StyleOnly:   true,
	})
	require.NoError(t, err)
	parseGo(t, src)

	out := string(src)
	assert.Contains(t, out, "var ButtonStyle = struct {")
	assert.NotContains(t, out, "import")
	assert.NotContains(t, out, "MustLoad")
	assert.NotContains(t, out, "Props")
}

func TestGoFileOptions(t *testing.T) {
	m := buildModel(t, []string{"Card", "Card--flat"})

	src, err := GoFile(m, Options{
		Resource:    "card.css",
		PackageName: "styles",
		Name:        "Cards",
		DebugPrefix: "UI.",
		Runtime:     "example.com/vendor/rcc",
	})
	require.NoError(t, err)
	parseGo(t, src)

	out := string(src)
	assert.Contains(t, out, `import "example.com/vendor/rcc"`)
	assert.Contains(t, out, `var Cards = rcc.MustLoad(cardsClassNames, rcc.WithDebugPrefix("UI."))`)
	assert.Contains(t, out, "v := make(rcc.Values, 1)")
	assert.NotContains(t, out, "GlobalProps")

	_, err = GoFile(m, Options{Resource: "card.css"})
	assert.Error(t, err)
}

func TestGoFileWithClassMap(t *testing.T) {
	m := buildModel(t, []string{"Card"}).WithClassMap(map[string]string{"Card": "Card_h4sh"})

	src, err := GoFile(m, Options{Resource: "card.module.css", PackageName: "ui", StyleOnly: true})
	require.NoError(t, err)
	assert.Regexp(t, `Card:\s+"Card_h4sh",`, string(src))
}

func TestManifest(t *testing.T) {
	m := buildModel(t, buttonStyles)
	opts := Options{Resource: "button.css", DebugPrefix: "S."}

	manifest := NewManifest(m, opts)
	assert.Equal(t, ManifestVersion, manifest.Version)
	assert.Equal(t, "button.css", manifest.Resource)
	assert.Equal(t, "--DEFAULT", manifest.DefaultClass)
	assert.Len(t, manifest.Fingerprint, 64)
	assert.Equal(t, m.StyleKeys, manifest.StyleKeys)
	require.Len(t, manifest.GlobalProps, 1)
	assert.Equal(t, "ternary", manifest.GlobalProps[0].Kind)

	require.Len(t, manifest.Components, 4)
	del := manifest.Components[2]
	assert.Equal(t, "DeleteBtn", del.Name)
	assert.Equal(t, []string{"Btn", "BaseBtn"}, del.Ancestors)
	assert.Equal(t, []ManifestLegacy{{Name: "size", From: []string{"Btn", "BaseBtn"}}}, del.LegacyProps)
	assert.Equal(t, []string{"font-size", "size", "border-radius-2px"}, del.Flags)

	var buf bytes.Buffer
	require.NoError(t, WriteManifest(&buf, manifest))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, manifest.Fingerprint, decoded["fingerprint"])
	assert.Len(t, decoded["components"], 4)

	styleOnly := NewManifest(m, Options{Resource: "button.css", DebugPrefix: "S.", StyleOnly: true})
	assert.Empty(t, styleOnly.Components)
	assert.NotEqual(t, manifest.Fingerprint, styleOnly.Fingerprint)
}

func TestFingerprint(t *testing.T) {
	tokens := []string{"Btn", "Btn--large"}
	base := Fingerprint(tokens, Options{})

	assert.Equal(t, base, Fingerprint([]string{"Btn", "Btn--large"}, Options{Resource: "moved.css"}),
		"the resource path does not affect the output")
	assert.NotEqual(t, base, Fingerprint([]string{"Btn"}, Options{}))
	assert.NotEqual(t, base, Fingerprint(tokens, Options{DebugPrefix: "UI."}))
	assert.NotEqual(t, base, Fingerprint(tokens, Options{PackageName: "ui"}))
}

package rcc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBooleanProps(t *testing.T) {
	d := Parse([]string{"Btn", "Btn--large-size", "Btn--small-size"})

	require.Contains(t, d.Components, "Btn")
	btn := d.Components["Btn"]
	assert.True(t, btn.HasBase)
	assert.Empty(t, btn.Extensions)
	require.Len(t, btn.Props, 2)

	for flag, token := range map[string]string{
		"large-size": "Btn--large-size",
		"small-size": "Btn--small-size",
	} {
		p := btn.Props[flag]
		require.NotNil(t, p, flag)
		assert.Equal(t, Boolean, p.Kind)
		assert.Equal(t, token, p.Class)
		assert.Empty(t, p.Values)
	}
	assert.Empty(t, d.Warnings)
}

func TestParseTernaryProps(t *testing.T) {
	d := Parse([]string{"Root--red_as_color", "Root--green_as_color", "Root--yellow_as_color"})

	root := d.Components["Root"]
	require.NotNil(t, root)
	assert.False(t, root.HasBase)
	require.Len(t, root.Props, 1)

	color := root.Props["color"]
	require.NotNil(t, color)
	assert.Equal(t, Ternary, color.Kind)
	assert.Equal(t, []string{"green", "red", "yellow"}, color.ValueNames())
	assert.Equal(t, "Root--red_as_color", color.Values["red"])
}

func TestParseChainedSegments(t *testing.T) {
	d := Parse([]string{
		"Root",
		"Root--yellow_as_color",
		"Root--yellow_as_color--dark-yellow",
		"Root--yellow_as_color--dark-yellow--sub-dark-yellow",
		"Card--DEFAULT--elevated",
	})

	root := d.Components["Root"]
	require.NotNil(t, root)
	require.Len(t, root.Props, 3)
	assert.Equal(t, map[string]string{"yellow": "Root--yellow_as_color"}, root.Props["color"].Values)
	assert.Equal(t, "Root--yellow_as_color--dark-yellow", root.Props["dark-yellow"].Class)
	assert.Equal(t, "Root--yellow_as_color--dark-yellow--sub-dark-yellow", root.Props["sub-dark-yellow"].Class)

	card := d.Components["Card"]
	require.NotNil(t, card)
	require.Len(t, card.Props, 1)
	assert.Equal(t, "Card--DEFAULT--elevated", card.Props["elevated"].Class)
}

func TestParseExtensions(t *testing.T) {
	d := Parse([]string{
		"Btn",
		"DeleteBtn_ext_Btn",
		"DeleteBtn_ext_Icon",
		"DeleteBtn--border-radius-2px",
	})

	require.Contains(t, d.Components, "Icon", "parent is registered without tokens of its own")
	assert.False(t, d.Components["Icon"].HasBase)

	del := d.Components["DeleteBtn"]
	require.NotNil(t, del)
	assert.False(t, del.HasBase)
	assert.Equal(t, []string{"Btn", "Icon"}, del.Extensions)
	assert.Contains(t, del.Props, "border-radius-2px")
}

func TestParseGlobalScope(t *testing.T) {
	d := Parse([]string{
		"--DEFAULT",
		"--fs-12px_as_font-size",
		"--fs-15px_as_font-size",
		"--rounded",
		"Wrapper",
	})

	assert.Equal(t, "--DEFAULT", d.DefaultClass)
	assert.NotContains(t, d.Global, "DEFAULT")
	require.Len(t, d.Global, 2)
	assert.Equal(t, []string{"fs-12px", "fs-15px"}, d.Global["font-size"].ValueNames())
	assert.Equal(t, "--rounded", d.Global["rounded"].Class)
	assert.NotContains(t, d.Components, "")
}

func TestParseRecoverableProblems(t *testing.T) {
	tests := []struct {
		name           string
		tokens         []string
		wantComponents []string
		wantWarnings   int
	}{
		{
			name:           "hyphenated component",
			tokens:         []string{"btn-wrapper", "btn-wrapper--dark", "Card"},
			wantComponents: []string{"Card"},
			wantWarnings:   1,
		},
		{
			name:           "hyphenated parent drops the edge",
			tokens:         []string{"Item", "Item_ext_bad-parent"},
			wantComponents: []string{"Item"},
			wantWarnings:   1,
		},
		{
			name:           "hyphenated child registered earlier is dropped",
			tokens:         []string{"my-btn_ext_Btn", "Btn"},
			wantComponents: []string{"Btn"},
			wantWarnings:   1,
		},
		{
			name:           "malformed extension",
			tokens:         []string{"A_ext_B_ext_C", "_ext_B"},
			wantComponents: []string{},
			wantWarnings:   2,
		},
		{
			name:           "segments after extension",
			tokens:         []string{"A_ext_B--big"},
			wantComponents: []string{"A", "B"},
			wantWarnings:   1,
		},
		{
			name:           "extension marker in a segment",
			tokens:         []string{"A--x_ext_y"},
			wantComponents: []string{"A"},
			wantWarnings:   1,
		},
		{
			name:           "malformed ternary",
			tokens:         []string{"A--_as_color", "A--red_as_"},
			wantComponents: []string{"A"},
			wantWarnings:   2,
		},
		{
			name:           "kind conflict keeps the first declaration",
			tokens:         []string{"Btn--size", "Btn--sm_as_size"},
			wantComponents: []string{"Btn"},
			wantWarnings:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Parse(tt.tokens)

			names := sortedKeys(d.Components)
			assert.Equal(t, tt.wantComponents, names)
			assert.Len(t, d.Warnings, tt.wantWarnings, "%v", d.Warnings)
		})
	}
}

func TestParseKindConflict(t *testing.T) {
	d := Parse([]string{"Btn--sm_as_size", "Btn--size"})

	size := d.Components["Btn"].Props["size"]
	require.NotNil(t, size)
	assert.Equal(t, Boolean, size.Kind)
	assert.Equal(t, "Btn--size", size.Class)
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, "Btn--sm_as_size", d.Warnings[0].Token)
}

func TestParseIsDeterministic(t *testing.T) {
	tokens := []string{
		"--DEFAULT", "--dark_as_theme", "Btn", "Btn--large-size", "Btn--small-size",
		"DeleteBtn_ext_Btn", "DeleteBtn--border-radius-2px", "Root--red_as_color",
		"Root--green_as_color", "bad-name", "Root--red_as_color--bright",
	}

	first, err := Build(tokens)
	require.NoError(t, err)

	shuffled := append([]string(nil), tokens...)
	rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	second, err := Build(append(shuffled, "Btn", "Btn--large-size"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

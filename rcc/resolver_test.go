package rcc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCycles(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		wantPath  []string
		wantToken string
	}{
		{
			name:      "self extension",
			tokens:    []string{"A", "A_ext_A"},
			wantPath:  []string{"A", "A"},
			wantToken: "A_ext_A",
		},
		{
			name:      "two components",
			tokens:    []string{"A_ext_B", "B_ext_A"},
			wantPath:  []string{"A", "B", "A"},
			wantToken: "B_ext_A",
		},
		{
			name:      "three components",
			tokens:    []string{"A_ext_B", "B_ext_C", "C_ext_A"},
			wantPath:  []string{"A", "B", "C", "A"},
			wantToken: "C_ext_A",
		},
		{
			name:      "cycle below an acyclic root",
			tokens:    []string{"Z_ext_B", "B_ext_C", "C_ext_B"},
			wantPath:  []string{"B", "C", "B"},
			wantToken: "C_ext_B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := Build(tt.tokens)
			require.Error(t, err)
			assert.Nil(t, model)

			var cycle *CycleError
			require.True(t, errors.As(err, &cycle))
			assert.Equal(t, tt.wantPath, cycle.Path)
			assert.Equal(t, tt.wantToken, cycle.Token())
		})
	}
}

func TestCycleErrorMessage(t *testing.T) {
	_, err := Build([]string{"A_ext_B", "B_ext_C", "C_ext_A"})
	require.Error(t, err)
	assert.Equal(t, "recursive extensions: A extends B extends C extends A", err.Error())
}

func TestResolveAncestors(t *testing.T) {
	model, err := Build([]string{
		"A", "A--x",
		"B_ext_A",
		"C_ext_A",
		"D_ext_B", "D_ext_C",
	})
	require.NoError(t, err)

	d, ok := model.Component("D")
	require.True(t, ok)
	assert.Equal(t, []string{"B", "C"}, d.Extensions)
	assert.Equal(t, []string{"B", "A", "C"}, d.Ancestors)
	assert.Equal(t, map[string][]string{"x": {"A"}}, d.Legacy)
	assert.Equal(t, "", d.BaseClass)

	a, ok := model.Component("A")
	require.True(t, ok)
	assert.Empty(t, a.Ancestors)
	assert.Equal(t, "A", a.BaseClass)

	assert.Equal(t, []string{"A", "B", "C", "D"}, model.ComponentNames())
}

func TestResolveLegacyProps(t *testing.T) {
	model, err := Build([]string{
		"Btn", "Btn--large-size", "Btn--small-size",
		"DeleteBtn_ext_Btn", "DeleteBtn--border-radius-2px",
	})
	require.NoError(t, err)

	del, ok := model.Component("DeleteBtn")
	require.True(t, ok)
	assert.Equal(t, []string{"Btn"}, del.Ancestors)
	assert.Equal(t, map[string][]string{
		"large-size": {"Btn"},
		"small-size": {"Btn"},
	}, del.Legacy)
	assert.Equal(t, []string{"border-radius-2px"}, del.OwnPropNames())
	assert.Equal(t, []string{"large-size", "small-size"}, del.InheritedPropNames())
	assert.Equal(t, []string{"large-size", "small-size", "border-radius-2px"}, del.Flags())
}

func TestResolveFlagOrder(t *testing.T) {
	model, err := Build([]string{
		"--zoom", "--big",
		"Base--size", "Base--alpha",
		"Btn_ext_Base", "Btn--sm_as_size", "Btn--beta",
	})
	require.NoError(t, err)

	btn, ok := model.Component("Btn")
	require.True(t, ok)
	assert.Equal(t, []string{"big", "zoom", "alpha", "size", "beta"}, btn.Flags())
	assert.Equal(t, []string{"alpha"}, btn.InheritedPropNames(), "size is shadowed by an own declaration")
	assert.True(t, model.HasGlobalProps())
}

func TestResolveStyleKeys(t *testing.T) {
	model, err := Build([]string{
		"--DEFAULT",
		"--fs-12px_as_font-size",
		"Btn",
		"Btn--lg",
		"DeleteBtn_ext_Btn",
		"btn-wrapper",
		"btn-wrapper--dark",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"--fs-12px_as_font-size", "Btn", "Btn--lg"}, model.StyleKeys)
}

func TestStyleModel(t *testing.T) {
	// a cycle does not matter when only the style surface is exported
	m := StyleModel([]string{"B_ext_A", "A_ext_B", "--DEFAULT", "Card", "Card--flat", "Card"})

	assert.Equal(t, []string{"--DEFAULT", "A_ext_B", "B_ext_A", "Card", "Card--flat"}, m.Tokens)
	assert.Equal(t, []string{"Card", "Card--flat"}, m.StyleKeys)
	assert.Equal(t, "--DEFAULT", m.DefaultClass)
	assert.Equal(t, "Card--flat", m.ClassName("Card--flat"))
	assert.Empty(t, m.ComponentNames())

	_, ok := m.Component("Card")
	assert.False(t, ok)
}

func TestModelClassName(t *testing.T) {
	model, err := Build([]string{"Root", "Root--red_as_color"})
	require.NoError(t, err)

	assert.Equal(t, "Root", model.ClassName("Root"))
	assert.Equal(t, "", model.ClassName("Missing"))

	hashed := model.WithClassMap(map[string]string{"Root": "Root_x1y2"})
	assert.Equal(t, "Root_x1y2", hashed.ClassName("Root"))
	assert.Equal(t, "Root--red_as_color", hashed.ClassName("Root--red_as_color"))
	assert.Equal(t, "Root", model.ClassName("Root"), "original model is unchanged")
}

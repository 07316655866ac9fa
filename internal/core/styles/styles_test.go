package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Contains(t, names, DefaultTheme)
	assert.IsIncreasing(t, names)
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)

	SetTheme(p)
	assert.Equal(t, p, CurrentPalette)
	assert.Equal(t, p.Primary, TabActiveStyle.GetBackground())
}

func TestGlamourStyle(t *testing.T) {
	cfg := GlamourStyle("dark")
	require.NotNil(t, cfg.H2.Color)
	assert.Equal(t, string(CurrentPalette.Primary), *cfg.H2.Color)
	assert.Nil(t, cfg.Document.Margin)
}

func TestCheckbox(t *testing.T) {
	tests := []struct {
		checked, disabled bool
		want              string
	}{
		{false, false, GlyphUnchecked},
		{true, false, GlyphChecked},
		{false, true, GlyphDisabled},
		{true, true, GlyphDisabledChecked},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Checkbox(tt.checked, tt.disabled))
	}
}

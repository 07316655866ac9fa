package tuitest

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m   \n\x1b[31mred\x1b[0m\n\n"
	assert.Equal(t, "bold\nred", StripANSI(in))
}

func TestKeyMessages_MatchBindings(t *testing.T) {
	tests := []struct {
		name    string
		binding key.Binding
		msg     interface{ String() string }
	}{
		{"rune", key.NewBinding(key.WithKeys("c")), KeyPress('c')},
		{"space", key.NewBinding(key.WithKeys(" ")), KeySpace()},
		{"down", key.NewBinding(key.WithKeys("down")), KeyDown()},
		{"up", key.NewBinding(key.WithKeys("up")), KeyUp()},
		{"enter", key.NewBinding(key.WithKeys("enter")), KeyEnter()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

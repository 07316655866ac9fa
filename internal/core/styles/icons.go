package styles

// Glyphs used when rendering selectable rows.
var (
	GlyphChecked         = "[x]"
	GlyphUnchecked       = "[ ]"
	GlyphDisabled        = "[-]"
	GlyphDisabledChecked = "[#]"
	GlyphCursor          = ">"
	GlyphAnchor          = "*"
)

// Checkbox returns the glyph for an item's state.
func Checkbox(checked, disabled bool) string {
	switch {
	case disabled && checked:
		return GlyphDisabledChecked
	case disabled:
		return GlyphDisabled
	case checked:
		return GlyphChecked
	default:
		return GlyphUnchecked
	}
}

// Notification icons.
var (
	IconNotifyInfo    = "i"
	IconNotifyWarning = "!"
	IconNotifyError   = "x"
)

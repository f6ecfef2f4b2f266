package marginbox

import (
	"fmt"

	"marginbox/css"
)

const (
	DefaultActiveColor  = "#fffacf"
	DefaultNeutralColor = "#f2f2f2"
)

// Highlighter produces rules colouring commented text, the active comment
// stands out from the rest.
type Highlighter struct {
	ActiveID     string
	ActiveColor  string
	NeutralColor string
}

func (h Highlighter) colors() (string, string) {
	active, neutral := h.ActiveColor, h.NeutralColor
	if active == "" {
		active = DefaultActiveColor
	}
	if neutral == "" {
		neutral = DefaultNeutralColor
	}
	return active, neutral
}

// AppendCommentRule appends rule for comment id to buf. Rule for the active
// comment also covers comments nested into it.
func (h Highlighter) AppendCommentRule(buf []byte, id string) []byte {
	active, neutral := h.colors()
	sel := fmt.Sprintf(`.comments-enabled .comment[data-id="%s"]`, css.EscapeDoubleQuoted(id))
	if id == h.ActiveID {
		return fmt.Appendf(buf, "%s, %s .comment {background-color: %s !important;}", sel, sel, active)
	}
	return fmt.Appendf(buf, "%s {background-color: %s;}", sel, neutral)
}

// AppendDraftRule appends rule for the comment being created.
func (h Highlighter) AppendDraftRule(buf []byte) []byte {
	active, _ := h.colors()
	return fmt.Appendf(buf, ".comments-enabled .active-comment, .comments-enabled .active-comment .comment {background-color: %s !important;}", active)
}

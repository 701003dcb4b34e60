package ui

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/thinkprompt/internal/keys"
)

// HistoryView is the fullscreen scrollback. It follows new content until
// the user scrolls up, and resumes once they scroll back to the bottom.
type HistoryView struct {
	viewport viewport.Model
	content  string
	pinned   bool
}

// NewHistoryView creates an empty view pinned to the bottom.
func NewHistoryView() *HistoryView {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return &HistoryView{viewport: vp, pinned: true}
}

// SetSize sets the visible area.
func (h *HistoryView) SetSize(width, height int) {
	h.viewport.SetWidth(max(1, width))
	h.viewport.SetHeight(max(1, height))
	if h.pinned {
		h.viewport.GotoBottom()
	}
}

// SetContent replaces the scrollback text.
func (h *HistoryView) SetContent(content string) {
	if content != h.content {
		h.content = content
		h.viewport.SetContent(content)
	}
	if h.pinned {
		h.viewport.GotoBottom()
	}
}

// Pin jumps to the bottom and follows new content again.
func (h *HistoryView) Pin() {
	h.pinned = true
	h.viewport.GotoBottom()
}

// Pinned reports whether the view follows new content.
func (h *HistoryView) Pinned() bool {
	return h.pinned
}

// Update routes scroll input to the viewport.
func (h *HistoryView) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok && keyMsg.String() == keys.End {
		h.Pin()
		return nil
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	switch {
	case scrollsUp(msg):
		h.pinned = false
	case h.viewport.AtBottom():
		h.pinned = true
	}
	return cmd
}

// View renders the visible part of the scrollback.
func (h *HistoryView) View() string {
	return h.viewport.View()
}

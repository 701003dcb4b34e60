package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/thinkprompt/internal/config"
	"github.com/zhubert/thinkprompt/internal/keys"
	"github.com/zhubert/thinkprompt/internal/thinking"
)

const (
	separatorRune = "─"
	separatorLead = 3
)

// ThinkingBox renders the thinking region: an animated separator line
// followed by the collapsed tail of the content or a scrollable viewport
// over all of it.
type ThinkingBox struct {
	label     string
	frames    []string
	position  config.AnimationPosition
	expandKey string
	maxHeight int
	policy    config.PinPolicy

	width    int
	viewport viewport.Model
	content  string
	pinned   bool
	active   bool
}

// NewThinkingBox creates a box configured from cfg.
func NewThinkingBox(cfg *config.Config) *ThinkingBox {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &ThinkingBox{
		label:     cfg.ThinkingText,
		frames:    append([]string(nil), cfg.AnimationFrames...),
		position:  cfg.AnimationPosition,
		expandKey: cfg.ExpandKey,
		maxHeight: cfg.MaxCollapsedHeight,
		policy:    cfg.PinPolicy,
		width:     DefaultWrapWidth,
		viewport:  vp,
		pinned:    true,
	}
}

// SetWidth sets the box width.
func (b *ThinkingBox) SetWidth(width int) {
	b.width = max(1, width)
	b.viewport.SetWidth(b.width)
}

// Pinned reports whether the expanded view follows new content.
func (b *ThinkingBox) Pinned() bool {
	return b.pinned
}

// Scroll routes scroll input to the expanded viewport. Any upward scroll
// unpins the view. With the auto pin policy reaching the bottom pins it
// again; with the explicit policy only End does.
func (b *ThinkingBox) Scroll(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok && keyMsg.String() == keys.End {
		b.viewport.GotoBottom()
		b.pinned = true
		return nil
	}

	var cmd tea.Cmd
	b.viewport, cmd = b.viewport.Update(msg)

	switch {
	case scrollsUp(msg):
		b.pinned = false
	case b.policy == config.PinAuto && b.viewport.AtBottom():
		b.pinned = true
	}
	return cmd
}

func scrollsUp(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case keys.Up, "k", keys.PgUp, "ctrl+u", "b", keys.Home:
			return true
		}
	case tea.MouseWheelMsg:
		return msg.Mouse().Button == tea.MouseWheelUp
	}
	return false
}

// View renders snap within maxRows terminal rows. An invisible snapshot
// renders as the empty string.
func (b *ThinkingBox) View(snap thinking.Snapshot, maxRows int) string {
	active := snap.Phase == thinking.PhaseActive
	if active && !b.active {
		// A new cycle starts at the bottom.
		b.pinned = true
	}
	b.active = active

	if !snap.Visible {
		return ""
	}

	sep := b.Separator(snap.Frame, active)
	bodyRows := max(1, maxRows-1)

	var body string
	if snap.Expanded {
		body = b.expanded(snap.Text, bodyRows)
	} else {
		body = b.collapsed(snap.Text, min(b.maxHeight, bodyRows))
	}
	if body == "" {
		return sep
	}
	return sep + "\n" + body
}

// Separator renders the rule above the box, e.g. "─── ⠋ Thinking ────".
// The frame is only drawn while the cycle is active.
func (b *ThinkingBox) Separator(frame int, active bool) string {
	var spin string
	if active && len(b.frames) > 0 {
		spin = ThinkingFrameStyle.Render(b.frames[frame%len(b.frames)])
	}
	label := ""
	if b.label != "" {
		label = ThinkingLabelStyle.Render(b.label)
	}

	var content string
	switch {
	case spin != "" && label != "":
		if b.position == config.AnimationAfter {
			content = label + " " + spin
		} else {
			content = spin + " " + label
		}
	case spin != "":
		content = spin
	default:
		content = label
	}
	if content != "" {
		content = " " + content + " "
	}

	remaining := max(0, b.width-ansi.StringWidth(content))
	lead := min(separatorLead, remaining)
	return ThinkingRuleStyle.Render(strings.Repeat(separatorRune, lead)) +
		content +
		ThinkingRuleStyle.Render(strings.Repeat(separatorRune, remaining-lead))
}

func (b *ThinkingBox) collapsed(text string, rows int) string {
	visible, hidden := thinking.Collapse(text, max(2, rows), b.width)

	lines := make([]string, 0, len(visible)+1)
	if hidden > 0 {
		hint := fmt.Sprintf("+%d lines... %s to expand", hidden, b.expandKey)
		lines = append(lines, ThinkingHintStyle.Render(ansi.Truncate(hint, b.width, "…")))
	}
	for _, line := range visible {
		lines = append(lines, ThinkingTextStyle.Render(line))
	}
	return strings.Join(lines, "\n")
}

func (b *ThinkingBox) expanded(text string, rows int) string {
	wrapped := ThinkingTextStyle.Width(b.width).Render(strings.TrimSuffix(text, "\n"))
	b.viewport.SetWidth(b.width)
	b.viewport.SetHeight(min(lipgloss.Height(wrapped), max(rows, 1)))

	if wrapped != b.content {
		b.content = wrapped
		b.viewport.SetContent(wrapped)
	}
	if b.pinned {
		b.viewport.GotoBottom()
	}
	return b.viewport.View()
}

// Full renders snap with its whole content and no height limit, for the
// fullscreen view.
func (b *ThinkingBox) Full(snap thinking.Snapshot) string {
	if !snap.Visible {
		return ""
	}
	sep := b.Separator(snap.Frame, snap.Phase == thinking.PhaseActive)
	text := strings.TrimSuffix(snap.Text, "\n")
	if text == "" {
		return sep
	}
	return sep + "\n" + ThinkingTextStyle.Width(b.width).Render(text)
}

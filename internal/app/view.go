package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/thinkprompt/internal/ui"
)

// View renders the session. In prompt mode the frame is the thinking box,
// the prompt, the completion menu and the status bar, drawn inline under
// the console output. Fullscreen switches to the alternate screen.
func (m *Model) View() tea.View {
	var v tea.View
	v.ReportFocus = true
	v.AltScreen = m.fullscreen
	if m.fullscreen || m.s.thinking.IsExpanded() {
		v.MouseMode = tea.MouseModeCellMotion
	}
	v.SetContent(m.render())
	return v
}

func (m *Model) render() string {
	m.updateStatusContext()

	var content string
	if m.fullscreen {
		m.full.SetContent(m.fullscreenContent())
		content = m.full.View()
		if m.cfg.ShowStatusBar {
			content = lipgloss.JoinVertical(lipgloss.Left, content, m.status.View())
		}
	} else {
		content = m.promptView()
	}

	if m.overlay.IsOpen() {
		base := lipgloss.PlaceVertical(m.height, lipgloss.Bottom, content)
		return m.overlay.View(base, m.width, m.height)
	}
	return content
}

func (m *Model) promptView() string {
	var parts []string

	menu := ""
	if len(m.menu) > 0 {
		menu = ui.RenderCompletionMenu(m.menu, m.menuIndex, m.cfg.CompletionMenuHeight, m.width)
	}

	if box := m.box.View(m.s.thinking.Snapshot(), m.boxRows(menu != "")); box != "" {
		parts = append(parts, box)
	}
	parts = append(parts, m.input.View())
	if menu != "" {
		parts = append(parts, menu)
	}
	if m.cfg.ShowStatusBar {
		parts = append(parts, m.status.View())
	}
	return strings.Join(parts, "\n")
}

// boxRows is the height left for the thinking box, separator included.
func (m *Model) boxRows(menu bool) int {
	rows := m.height - ui.PromptHeight
	if m.cfg.ShowStatusBar {
		rows -= ui.StatusBarHeight
	}
	if menu {
		rows -= m.cfg.CompletionMenuHeight
	}
	return max(ui.SeparatorHeight+1, rows)
}

func (m *Model) fullscreenContent() string {
	content := m.entries.RenderAll(m.s.history.Entries())
	if box := m.box.Full(m.s.thinking.Snapshot()); box != "" {
		if content != "" {
			content += "\n"
		}
		content += box
	}
	return content
}

func (m *Model) updateStatusContext() {
	m.status.SetContext(m.s.thinking.CanToggle(), m.s.thinking.IsExpanded(), m.fullscreen)
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	m.box.SetWidth(m.width)
	m.s.thinking.SetWidth(m.width)
	m.entries.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.input.SetWidth(max(1, m.width-lipgloss.Width(m.cfg.PromptMessage)-1))

	fullHeight := m.height
	if m.cfg.ShowStatusBar {
		fullHeight -= ui.StatusBarHeight
	}
	m.full.SetSize(m.width, fullHeight)
}

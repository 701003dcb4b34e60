package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// FlashType represents the type of flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashMessage is a transient message shown in place of the key hints
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns whether the flash message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg is sent to check whether a flash message has expired
type FlashTickMsg time.Time

// FlashTick returns a command that fires once the default flash duration
// has passed
func FlashTick() tea.Cmd {
	return tea.Tick(DefaultFlashDuration, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// StatusBar is the one-line bar under the prompt: key hints, or a flash
// message while one is showing.
type StatusBar struct {
	width        int
	keys         KeyMap
	help         help.Model
	flashMessage *FlashMessage
}

// NewStatusBar creates a status bar for km.
func NewStatusBar(km KeyMap) *StatusBar {
	h := help.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = StatusKeyStyle
	h.Styles.ShortDesc = StatusDescStyle
	h.Styles.ShortSeparator = StatusSepStyle
	h.Styles.Ellipsis = StatusSepStyle
	return &StatusBar{keys: km, help: h}
}

// SetWidth sets the bar width
func (s *StatusBar) SetWidth(width int) {
	s.width = width
	s.help.SetWidth(max(0, width-StatusBarStyle.GetHorizontalFrameSize()))
}

// SetContext enables the hints that apply to the current state
func (s *StatusBar) SetContext(canToggle, expanded, fullscreen bool) {
	s.keys.Expand.SetEnabled(canToggle && !fullscreen)
	s.keys.Scroll.SetEnabled(expanded || fullscreen)
	s.keys.Bottom.SetEnabled(expanded && !fullscreen)
}

// Keys returns the bar's bindings with their current enabled state
func (s *StatusBar) Keys() KeyMap {
	return s.keys
}

// SetFlash shows text for the default duration
func (s *StatusBar) SetFlash(text string, flashType FlashType) {
	s.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows text for d
func (s *StatusBar) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	s.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message
func (s *StatusBar) ClearFlash() {
	s.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (s *StatusBar) HasFlash() bool {
	return s.flashMessage != nil
}

// ClearIfExpired removes an expired flash message and reports whether it
// did
func (s *StatusBar) ClearIfExpired() bool {
	if s.flashMessage != nil && s.flashMessage.IsExpired() {
		s.flashMessage = nil
		return true
	}
	return false
}

// View renders the status bar. It is always exactly one row: content wider
// than the bar is cut.
func (s *StatusBar) View() string {
	var content string
	if s.flashMessage != nil {
		content = renderFlash(s.flashMessage)
	} else {
		content = s.help.ShortHelpView(s.keys.ShortHelp())
	}
	content = strings.ReplaceAll(content, "\n", " ")

	style := StatusBarStyle
	if s.width > 0 {
		inner := max(0, s.width-StatusBarStyle.GetHorizontalFrameSize())
		content = ansi.Truncate(content, inner, "…")
		style = style.Width(s.width).MaxWidth(s.width)
	}
	return style.MaxHeight(StatusBarHeight).Render(content)
}

func renderFlash(f *FlashMessage) string {
	var icon string
	var st lipgloss.Style
	switch f.Type {
	case FlashError:
		icon, st = "✕", FlashErrorStyle
	case FlashWarning:
		icon, st = "⚠", WarningStyle
	case FlashSuccess:
		icon, st = "✓", SuccessStyle
	default:
		icon, st = "ℹ", FlashInfoStyle
	}
	return st.Render(icon + " " + f.Text)
}

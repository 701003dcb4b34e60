package ui

import (
	"charm.land/bubbles/v2/key"

	"github.com/zhubert/thinkprompt/internal/config"
	"github.com/zhubert/thinkprompt/internal/keys"
)

// KeyMap holds the session-level key bindings. The configurable chords
// come from config; the rest are fixed.
type KeyMap struct {
	Submit     key.Binding
	Expand     key.Binding
	Fullscreen key.Binding
	Copy       key.Binding
	Scroll     key.Binding
	Bottom     key.Binding
	Quit       key.Binding
}

// NewKeyMap builds the bindings for cfg. Fullscreen is disabled unless
// cfg enables it, and Copy is disabled when no copy key is configured.
func NewKeyMap(cfg *config.Config) KeyMap {
	km := KeyMap{
		Submit: key.NewBinding(
			key.WithKeys(keys.Enter),
			key.WithHelp("enter", "submit"),
		),
		Expand: key.NewBinding(
			key.WithKeys(cfg.ExpandKey),
			key.WithHelp(cfg.ExpandKey, "expand"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys(cfg.FullscreenKey),
			key.WithHelp(cfg.FullscreenKey, "fullscreen"),
		),
		Copy: key.NewBinding(
			key.WithKeys(cfg.CopyKey),
			key.WithHelp(cfg.CopyKey, "copy"),
		),
		Scroll: key.NewBinding(
			key.WithKeys(keys.PgUp, keys.PgDown, keys.Up, keys.Down),
			key.WithHelp("pgup/dn", "scroll"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(keys.End),
			key.WithHelp("end", "follow"),
		),
		Quit: key.NewBinding(
			key.WithKeys(keys.CtrlC, keys.CtrlD),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
	km.Fullscreen.SetEnabled(cfg.EnableFullscreen && cfg.FullscreenKey != "")
	km.Copy.SetEnabled(cfg.CopyKey != "")
	km.Scroll.SetEnabled(false)
	km.Bottom.SetEnabled(false)
	return km
}

// ShortHelp returns the bindings shown in the status bar. Disabled
// bindings are skipped by the help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Expand, k.Scroll, k.Bottom, k.Fullscreen, k.Copy, k.Quit}
}

// Package ui provides the rendering components of a thinkprompt session.
//
// # Overview
//
// The components are plain structs driven by the session model in
// internal/app. None of them own a Bubble Tea program; they are updated and
// rendered from the event loop only, except Scheduler, which is safe to call
// from any goroutine.
//
// # Layout System
//
// In prompt mode the session draws inline, below the console output that
// has already been printed:
//
//	  ... printed history (scrollback) ...
//	─── ⠋ Thinking ────────────────────────────────
//	+12 lines... ctrl+t to expand
//	last line of the thinking text
//	> prompt input
//	  completion menu (optional)
//	 enter submit • ctrl+t expand • ctrl+c quit
//
// Fullscreen mode switches to the alternate screen and shows a scrollable
// HistoryView over every history entry followed by the whole thinking text.
//
// # Components
//
// ThinkingBox: The animated separator and the collapsed or expanded
// thinking text. Expanded text scrolls in a viewport that follows new
// content until the user scrolls up.
//
// EntryRenderer: Renders history entries for the console, with markdown
// through glamour and code through chroma.
//
// Overlay: Holds the zero-or-one open dialog from the modals package and
// composites it over the frame.
//
// StatusBar: Context-aware key hints, replaced by a flash message for a
// short while after copy.
//
// Completer: Prefix completion over a fixed word list, and the menu that
// shows its candidates.
//
// Scheduler: Coalesces redraw requests from producer goroutines into at
// most one pending RedrawMsg.
//
// # Constants
//
// Layout constants are defined in constants.go:
//   - StatusBarHeight, SeparatorHeight, PromptHeight: Fixed at 1 line each
//   - DefaultWrapWidth, DefaultHeight: Used before the first resize arrives
//
// # Styles
//
// All styles are defined in styles.go and rebuilt from the active theme by
// SetTheme. The modals package receives its copy through SetStyles.
package ui

package ui

import "time"

// Layout constants
const (
	// StatusBarHeight is the height of the status bar in lines
	StatusBarHeight = 1

	// SeparatorHeight is the height of the thinking box separator
	SeparatorHeight = 1

	// PromptHeight is the height of the input line
	PromptHeight = 1

	// DefaultWrapWidth is the wrap width used before the first resize arrives
	DefaultWrapWidth = 80

	// DefaultHeight is the terminal height assumed before the first resize arrives
	DefaultHeight = 24
)

// Dialog dimensions
const (
	// ModalWidth is the default width of dialogs
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for dialog text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of dialog text inputs
	ModalInputWidth = 40
)

// DefaultFlashDuration is how long a status bar flash message stays visible
const DefaultFlashDuration = 2 * time.Second

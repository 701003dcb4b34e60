package modals

import (
	"os"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/thinkprompt/internal/logger"
)

func TestMain(m *testing.M) {
	// Disable logging during tests to avoid polluting /tmp/thinkprompt-debug.log
	logger.Reset()
	logger.Init(os.DevNull)

	// Initialize dialog constants for tests
	ModalWidth = 60
	ModalInputWidth = 40
	ModalInputCharLimit = 256

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typed(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// send feeds key presses to a dialog in order.
func send(t *testing.T, s DialogState, msgs ...tea.KeyPressMsg) DialogState {
	t.Helper()
	for _, msg := range msgs {
		s, _ = s.Update(msg)
	}
	return s
}

// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/thinkprompt/internal/logger"
)

// Notifier sends a single desktop notification.
type Notifier func(title, message string, icon any) error

var (
	mu       sync.Mutex
	notifier Notifier = beeep.Notify
)

// SetNotifier replaces the function used to send notifications.
func SetNotifier(n Notifier) {
	mu.Lock()
	defer mu.Unlock()
	notifier = n
}

// ResetNotifier restores the beeep notifier.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	mu.Lock()
	n := notifier
	mu.Unlock()

	logger.Debug("Notification: Sending notification - title=%q, message=%q", title, message)
	// Use empty string for icon - beeep handles platform defaults
	err := n(title, message, "")
	if err != nil {
		logger.Warn("Notification: Failed to send notification: %v", err)
	}
	return err
}

// ThinkingFinished tells the user that a thinking cycle in app has ended.
func ThinkingFinished(app string) error {
	return Send(app, "Thinking finished")
}

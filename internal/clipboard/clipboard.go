// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/thinkprompt/internal/logger"
)

var (
	mu          sync.Mutex
	initialized bool

	// initFunc and writeFunc are swapped out in tests.
	initFunc  = clipboard.Init
	writeFunc = func(data []byte) { clipboard.Write(clipboard.FmtText, data) }
)

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	if err := initFunc(); err != nil {
		logger.Warn("Clipboard: Failed to initialize: %v", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	initialized = true
	logger.Debug("Clipboard: Initialized successfully")
	return nil
}

// WriteText places text on the clipboard, initializing it on first use.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return err
	}
	writeFunc([]byte(text))
	logger.Debug("Clipboard: Wrote %d bytes of text", len(text))
	return nil
}

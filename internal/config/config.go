package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/zhubert/thinkprompt/internal/errors"
)

// AnimationPosition places the spinner frame relative to the thinking label.
type AnimationPosition string

const (
	AnimationBefore AnimationPosition = "before"
	AnimationAfter  AnimationPosition = "after"
)

// PinPolicy decides when an expanded thinking box resumes following new
// content after the user scrolled away from the bottom.
type PinPolicy string

const (
	// PinAuto re-pins as soon as the viewport is scrolled back to the bottom.
	PinAuto PinPolicy = "auto"
	// PinExplicit re-pins only on the End key.
	PinExplicit PinPolicy = "explicit"
)

// DefaultAnimationFrames is the braille spinner used while thinking.
var DefaultAnimationFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Config holds the session configuration. It is applied when a session is
// constructed; the session keeps its own clone and never changes it.
type Config struct {
	PromptMessage        string            `json:"prompt_message"`
	MaxCollapsedHeight   int               `json:"max_collapsed_height"`
	ShowStatusBar        bool              `json:"show_status_bar"`
	EchoInput            bool              `json:"echo_input"`
	ExpandKey            string            `json:"expand_key"`
	FullscreenKey        string            `json:"fullscreen_key"`
	CopyKey              string            `json:"copy_key"`
	EnableFullscreen     bool              `json:"enable_fullscreen"`
	AnimationFrames      []string          `json:"animation_frames"`
	AnimationIntervalMS  int               `json:"animation_interval_ms"`
	ThinkingText         string            `json:"thinking_text"`
	AnimationPosition    AnimationPosition `json:"animation_position"`
	EchoThinking         bool              `json:"echo_thinking"`
	CompleteWhileTyping  bool              `json:"complete_while_typing"`
	CompletionMenuHeight int               `json:"completion_menu_height"`
	PinPolicy            PinPolicy         `json:"pin_policy"`
	NotifyOnFinish       bool              `json:"notify_on_finish"`
	Theme                string            `json:"theme"`
	App                  AppInfo           `json:"app"`

	mu       sync.RWMutex
	filePath string
}

// Default returns a config with every field at its default.
func Default() *Config {
	return &Config{
		PromptMessage:        "> ",
		MaxCollapsedHeight:   15,
		ShowStatusBar:        true,
		EchoInput:            true,
		ExpandKey:            "ctrl+t",
		FullscreenKey:        "ctrl+e",
		CopyKey:              "ctrl+y",
		AnimationFrames:      slices.Clone(DefaultAnimationFrames),
		AnimationIntervalMS:  100,
		ThinkingText:         "Thinking",
		AnimationPosition:    AnimationBefore,
		EchoThinking:         true,
		CompletionMenuHeight: 5,
		PinPolicy:            PinAuto,
		Theme:                "dark-purple",
		App:                  DefaultAppInfo(),
	}
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".thinkprompt"), nil
}

// DefaultPath returns ~/.thinkprompt/config.json.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadDefault loads the config from DefaultPath.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("~/.thinkprompt", err)
	}
	return Load(path)
}

// Load reads the config at path. A missing file yields the defaults. Fields
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the config can drive a session.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MaxCollapsedHeight < 2 {
		return errors.ConfigInvalid(fmt.Sprintf("max_collapsed_height must be at least 2, got %d", c.MaxCollapsedHeight))
	}
	if len(c.AnimationFrames) == 0 {
		return errors.ConfigInvalid("animation_frames must not be empty")
	}
	if c.AnimationIntervalMS <= 0 {
		return errors.ConfigInvalid("animation_interval_ms must be positive")
	}
	if c.AnimationPosition != AnimationBefore && c.AnimationPosition != AnimationAfter {
		return errors.ConfigInvalid(fmt.Sprintf("animation_position must be %q or %q", AnimationBefore, AnimationAfter))
	}
	if c.PinPolicy != PinAuto && c.PinPolicy != PinExplicit {
		return errors.ConfigInvalid(fmt.Sprintf("pin_policy must be %q or %q", PinAuto, PinExplicit))
	}
	if c.CompletionMenuHeight < 0 {
		return errors.ConfigInvalid("completion_menu_height must not be negative")
	}
	if c.ExpandKey == "" {
		return errors.ConfigInvalid("expand_key must not be empty")
	}
	if c.EnableFullscreen && c.FullscreenKey == "" {
		return errors.ConfigInvalid("fullscreen_key must not be empty when fullscreen is enabled")
	}
	if c.EnableFullscreen && c.FullscreenKey == c.ExpandKey {
		return errors.ConfigInvalid("fullscreen_key and expand_key must differ")
	}
	return nil
}

// Save writes the config to the path it was loaded from, or DefaultPath.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return errors.ConfigSaveFailed("~/.thinkprompt", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}

// Path returns the file this config is loaded from and saved to.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// Clone returns a deep copy that shares no state with c.
func (c *Config) Clone() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return &Config{
		PromptMessage:        c.PromptMessage,
		MaxCollapsedHeight:   c.MaxCollapsedHeight,
		ShowStatusBar:        c.ShowStatusBar,
		EchoInput:            c.EchoInput,
		ExpandKey:            c.ExpandKey,
		FullscreenKey:        c.FullscreenKey,
		CopyKey:              c.CopyKey,
		EnableFullscreen:     c.EnableFullscreen,
		AnimationFrames:      slices.Clone(c.AnimationFrames),
		AnimationIntervalMS:  c.AnimationIntervalMS,
		ThinkingText:         c.ThinkingText,
		AnimationPosition:    c.AnimationPosition,
		EchoThinking:         c.EchoThinking,
		CompleteWhileTyping:  c.CompleteWhileTyping,
		CompletionMenuHeight: c.CompletionMenuHeight,
		PinPolicy:            c.PinPolicy,
		NotifyOnFinish:       c.NotifyOnFinish,
		Theme:                c.Theme,
		App:                  c.App,
		filePath:             c.filePath,
	}
}

// AnimationInterval returns the spinner tick period.
func (c *Config) AnimationInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.AnimationIntervalMS) * time.Millisecond
}

// Apply merges values produced by a settings form, keyed by JSON field
// name. Strings are accepted for numeric fields. The result is validated;
// on error the config is left unchanged.
func (c *Config) Apply(values map[string]any) error {
	next := c.Clone()
	for key, v := range values {
		if err := next.set(key, v); err != nil {
			return err
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.PromptMessage = next.PromptMessage
	c.MaxCollapsedHeight = next.MaxCollapsedHeight
	c.ShowStatusBar = next.ShowStatusBar
	c.EchoInput = next.EchoInput
	c.ExpandKey = next.ExpandKey
	c.FullscreenKey = next.FullscreenKey
	c.CopyKey = next.CopyKey
	c.EnableFullscreen = next.EnableFullscreen
	c.AnimationIntervalMS = next.AnimationIntervalMS
	c.ThinkingText = next.ThinkingText
	c.AnimationPosition = next.AnimationPosition
	c.EchoThinking = next.EchoThinking
	c.CompleteWhileTyping = next.CompleteWhileTyping
	c.CompletionMenuHeight = next.CompletionMenuHeight
	c.PinPolicy = next.PinPolicy
	c.NotifyOnFinish = next.NotifyOnFinish
	c.Theme = next.Theme
	return nil
}

func (c *Config) set(key string, v any) error {
	str := func() (string, error) {
		s, ok := v.(string)
		if !ok {
			return "", errors.ConfigInvalid(fmt.Sprintf("%s: expected a string, got %T", key, v))
		}
		return s, nil
	}
	flag := func() (bool, error) {
		b, ok := v.(bool)
		if !ok {
			return false, errors.ConfigInvalid(fmt.Sprintf("%s: expected a bool, got %T", key, v))
		}
		return b, nil
	}
	num := func() (int, error) {
		switch n := v.(type) {
		case int:
			return n, nil
		case float64:
			return int(n), nil
		case string:
			i, err := strconv.Atoi(n)
			if err != nil {
				return 0, errors.ConfigInvalid(fmt.Sprintf("%s: %q is not a number", key, n))
			}
			return i, nil
		}
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s: expected a number, got %T", key, v))
	}

	var err error
	switch key {
	case "prompt_message":
		c.PromptMessage, err = str()
	case "thinking_text":
		c.ThinkingText, err = str()
	case "expand_key":
		c.ExpandKey, err = str()
	case "fullscreen_key":
		c.FullscreenKey, err = str()
	case "copy_key":
		c.CopyKey, err = str()
	case "theme":
		c.Theme, err = str()
	case "animation_position":
		var s string
		s, err = str()
		c.AnimationPosition = AnimationPosition(s)
	case "pin_policy":
		var s string
		s, err = str()
		c.PinPolicy = PinPolicy(s)
	case "max_collapsed_height":
		c.MaxCollapsedHeight, err = num()
	case "animation_interval_ms":
		c.AnimationIntervalMS, err = num()
	case "completion_menu_height":
		c.CompletionMenuHeight, err = num()
	case "show_status_bar":
		c.ShowStatusBar, err = flag()
	case "echo_input":
		c.EchoInput, err = flag()
	case "enable_fullscreen":
		c.EnableFullscreen, err = flag()
	case "echo_thinking":
		c.EchoThinking, err = flag()
	case "complete_while_typing":
		c.CompleteWhileTyping, err = flag()
	case "notify_on_finish":
		c.NotifyOnFinish, err = flag()
	default:
		err = errors.ConfigInvalid(fmt.Sprintf("unknown setting %q", key))
	}
	return err
}

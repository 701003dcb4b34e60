// Package settings defines the typed controls of a settings form and the
// runtime values they edit.
package settings

import (
	"fmt"
	"slices"

	"github.com/zhubert/thinkprompt/internal/errors"
)

// Control is the variant payload of an Item. It is a closed set: Dropdown,
// InlineSelect, Text and Checkbox.
type Control interface {
	control() // marker method to restrict implementations
}

// Dropdown picks one option from a list that opens under the row.
type Dropdown struct {
	Options []string
	Default string
}

// InlineSelect picks one option by stepping left and right in place.
type InlineSelect struct {
	Options []string
	Default string
}

// Text is a free text value, optionally masked.
type Text struct {
	Default  string
	Password bool
}

// Checkbox is a boolean toggle.
type Checkbox struct {
	Default bool
}

func (Dropdown) control()     {}
func (InlineSelect) control() {}
func (Text) control()         {}
func (Checkbox) control()     {}

// Item is one row of a settings form.
type Item struct {
	Key         string
	Label       string
	Description string
	Control     Control
}

// Option customizes an Item built by one of the constructors.
type Option func(*Item)

// WithDescription adds a help line under the row.
func WithDescription(desc string) Option {
	return func(it *Item) { it.Description = desc }
}

func newItem(key, label string, c Control, opts []Option) Item {
	it := Item{Key: key, Label: label, Control: c}
	for _, o := range opts {
		o(&it)
	}
	return it
}

// NewDropdown builds a dropdown row. An empty default selects the first
// option. It fails when options is empty or def is not one of them.
func NewDropdown(key, label string, options []string, def string, opts ...Option) (Item, error) {
	if def == "" && len(options) > 0 {
		def = options[0]
	}
	it := newItem(key, label, Dropdown{Options: options, Default: def}, opts)
	return it, it.Validate()
}

// NewInlineSelect builds an inline select row with the same rules as
// NewDropdown.
func NewInlineSelect(key, label string, options []string, def string, opts ...Option) (Item, error) {
	if def == "" && len(options) > 0 {
		def = options[0]
	}
	it := newItem(key, label, InlineSelect{Options: options, Default: def}, opts)
	return it, it.Validate()
}

// NewText builds a text row.
func NewText(key, label, def string, password bool, opts ...Option) Item {
	return newItem(key, label, Text{Default: def, Password: password}, opts)
}

// NewCheckbox builds a checkbox row.
func NewCheckbox(key, label string, def bool, opts ...Option) Item {
	return newItem(key, label, Checkbox{Default: def}, opts)
}

// Default returns the item's default value: a string for Dropdown,
// InlineSelect and Text, a bool for Checkbox.
func (it Item) Default() any {
	switch c := it.Control.(type) {
	case Dropdown:
		return c.Default
	case InlineSelect:
		return c.Default
	case Text:
		return c.Default
	case Checkbox:
		return c.Default
	}
	return nil
}

// Options returns the option list of a Dropdown or InlineSelect item, and
// nil for the other variants.
func (it Item) Options() []string {
	switch c := it.Control.(type) {
	case Dropdown:
		return c.Options
	case InlineSelect:
		return c.Options
	}
	return nil
}

// Validate checks a single item.
func (it Item) Validate() error {
	if it.Key == "" {
		return errors.InvalidControl(it.Key, "key is empty")
	}
	switch c := it.Control.(type) {
	case Dropdown:
		return validateOptions(it.Key, c.Options, c.Default)
	case InlineSelect:
		return validateOptions(it.Key, c.Options, c.Default)
	case Text, Checkbox:
		return nil
	case nil:
		return errors.InvalidControl(it.Key, "no control")
	default:
		return errors.InvalidControl(it.Key, fmt.Sprintf("unsupported control %T", c))
	}
}

func validateOptions(key string, options []string, def string) error {
	if len(options) == 0 {
		return errors.InvalidControl(key, "options are empty")
	}
	if !slices.Contains(options, def) {
		return errors.InvalidControl(key, fmt.Sprintf("default %q is not an option", def))
	}
	return nil
}

// Validate checks every item and that no key is used twice.
func Validate(items []Item) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if seen[it.Key] {
			return errors.DuplicateKey(it.Key)
		}
		seen[it.Key] = true
	}
	return nil
}

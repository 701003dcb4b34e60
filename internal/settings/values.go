package settings

import (
	"maps"
	"slices"
)

// Values holds the current value of every item in a form. It is seeded from
// the defaults and read back as the subset of keys that differ from them.
type Values struct {
	items    []Item
	byKey    map[string]int
	current  map[string]any
	defaults map[string]any
}

// NewValues validates items and seeds a Values from their defaults.
func NewValues(items []Item) (*Values, error) {
	if err := Validate(items); err != nil {
		return nil, err
	}
	v := &Values{
		items:    slices.Clone(items),
		byKey:    make(map[string]int, len(items)),
		current:  make(map[string]any, len(items)),
		defaults: make(map[string]any, len(items)),
	}
	for i, it := range items {
		v.byKey[it.Key] = i
		v.defaults[it.Key] = it.Default()
		v.current[it.Key] = it.Default()
	}
	return v, nil
}

// Items returns the form's items in order.
func (v *Values) Items() []Item {
	return v.items
}

// Item returns the item with the given key.
func (v *Values) Item(key string) (Item, bool) {
	i, ok := v.byKey[key]
	if !ok {
		return Item{}, false
	}
	return v.items[i], true
}

// Get returns the current value for key.
func (v *Values) Get(key string) any {
	return v.current[key]
}

// String returns the current value for a string-valued key.
func (v *Values) String(key string) string {
	s, _ := v.current[key].(string)
	return s
}

// Bool returns the current value for a Checkbox key.
func (v *Values) Bool(key string) bool {
	b, _ := v.current[key].(bool)
	return b
}

// Set stores value for key. Unknown keys and values of the wrong type for
// the item's control are ignored.
func (v *Values) Set(key string, value any) {
	it, ok := v.Item(key)
	if !ok {
		return
	}
	switch it.Control.(type) {
	case Checkbox:
		if _, ok := value.(bool); !ok {
			return
		}
	case Dropdown, InlineSelect:
		s, ok := value.(string)
		if !ok || !slices.Contains(it.Options(), s) {
			return
		}
	case Text:
		if _, ok := value.(string); !ok {
			return
		}
	}
	v.current[key] = value
}

// OptionIndex returns the index of the current option of a Dropdown or
// InlineSelect key, or -1.
func (v *Values) OptionIndex(key string) int {
	it, ok := v.Item(key)
	if !ok {
		return -1
	}
	return slices.Index(it.Options(), v.String(key))
}

// IsDirty reports whether key's current value differs from its default.
func (v *Values) IsDirty(key string) bool {
	return v.current[key] != v.defaults[key]
}

// Dirty returns the keys whose value differs from the default, mapped to
// their current values. An untouched form yields an empty, non-nil map.
func (v *Values) Dirty() map[string]any {
	out := make(map[string]any)
	for key := range v.current {
		if v.IsDirty(key) {
			out[key] = v.current[key]
		}
	}
	return out
}

// DirtyKeys returns the dirty keys in form order.
func (v *Values) DirtyKeys() []string {
	var keys []string
	for _, it := range v.items {
		if v.IsDirty(it.Key) {
			keys = append(keys, it.Key)
		}
	}
	return keys
}

// Reset restores every value to its default.
func (v *Values) Reset() {
	maps.Copy(v.current, v.defaults)
}

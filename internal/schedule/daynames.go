package schedule

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DayNames maps day keys to display names. The key order of the source
// JSON object is kept and defines the day index used for navigation.
type DayNames struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewDayNames returns an empty map. Use Set to append entries in order.
func NewDayNames() *DayNames {
	return &DayNames{m: orderedmap.New[string, string]()}
}

// Set appends key (or relabels it, keeping its position).
func (d *DayNames) Set(key, label string) {
	if d.m == nil {
		d.m = orderedmap.New[string, string]()
	}
	d.m.Set(key, label)
}

// Len returns the number of days. A nil map has none.
func (d *DayNames) Len() int {
	if d == nil || d.m == nil {
		return 0
	}
	return d.m.Len()
}

// Keys returns the day keys in insertion order.
func (d *DayNames) Keys() []string {
	if d.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, d.m.Len())
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// KeyAt returns the key at position i.
func (d *DayNames) KeyAt(i int) (string, bool) {
	if i < 0 || i >= d.Len() {
		return "", false
	}
	n := 0
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		if n == i {
			return pair.Key, true
		}
		n++
	}
	return "", false
}

// IndexOf returns the position of key, or -1.
func (d *DayNames) IndexOf(key string) int {
	for i, k := range d.Keys() {
		if k == key {
			return i
		}
	}
	return -1
}

// Label returns the display name for key.
func (d *DayNames) Label(key string) (string, bool) {
	if d.Len() == 0 {
		return "", false
	}
	return d.m.Get(key)
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (d *DayNames) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, string]()
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	d.m = m
	return nil
}

// MarshalJSON encodes the map as a JSON object in key order.
func (d *DayNames) MarshalJSON() ([]byte, error) {
	if d == nil || d.m == nil {
		return []byte("{}"), nil
	}
	return d.m.MarshalJSON()
}

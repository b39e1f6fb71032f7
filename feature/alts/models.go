package alts

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"stage-alts/core/hash40"
)

// Form is the variant of a stage record.
type Form uint8

const (
	FormNormal Form = iota
	FormBattle
)

var (
	markerNormal = hash40.New("normal")
	markerBattle = hash40.New("battle")
)

// Marker returns the folder name component of the form.
func (f Form) Marker() hash40.Hash40 {
	if f == FormBattle {
		return markerBattle
	}
	return markerNormal
}

func (f Form) String() string {
	if f == FormBattle {
		return "battle"
	}
	return "normal"
}

// ParseForm accepts "normal" or "battle".
func ParseForm(s string) (Form, error) {
	switch strings.ToLower(s) {
	case "normal":
		return FormNormal, nil
	case "battle":
		return FormBattle, nil
	default:
		return 0, fmt.Errorf("unknown form %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Form) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Form) UnmarshalText(text []byte) error {
	v, err := ParseForm(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// RecordKey identifies one form of one stage.
type RecordKey struct {
	Name hash40.Hash40 `json:"name"`
	Form Form          `json:"form"`
}

func (k RecordKey) String() string {
	return fmt.Sprintf("%s/%s", k.Name, k.Form)
}

func compareKeys(a, b RecordKey) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Form, b.Form)
}

// DerivedPaths are the UI texture paths shown for an alternate.
type DerivedPaths struct {
	Normal hash40.Hash40 `json:"normal"`
	Battle hash40.Hash40 `json:"battle"`
	End    hash40.Hash40 `json:"end"`
}

// AlternateEntry is one discovered alternate of a record.
type AlternateEntry struct {
	Slot     uint32       `json:"slot"`
	WifiSafe bool         `json:"wifi_safe"`
	Paths    DerivedPaths `json:"paths"`
}

// Catalog lists the alternates of every record, ascending by slot.
type Catalog map[RecordKey][]AlternateEntry

// Count returns the number of alternates of key.
func (c Catalog) Count(key RecordKey) int {
	return len(c[key])
}

// Nth returns the alternate at position i of key's list.
func (c Catalog) Nth(key RecordKey, i int) (AlternateEntry, bool) {
	list := c[key]
	if i < 0 || i >= len(list) {
		return AlternateEntry{}, false
	}
	return list[i], true
}

// Keys returns every record key in a stable order.
func (c Catalog) Keys() []RecordKey {
	keys := make([]RecordKey, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

// Total returns the number of alternates across all records.
func (c Catalog) Total() int {
	n := 0
	for _, list := range c {
		n += len(list)
	}
	return n
}

// Clone returns a deep copy.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = slices.Clone(v)
	}
	return out
}

// UIForm picks one of the derived UI paths.
type UIForm uint8

const (
	UINormal UIForm = iota
	UIBattle
	UIEnd
)

// ParseUIForm accepts "normal", "battle" or "end".
func ParseUIForm(s string) (UIForm, error) {
	switch strings.ToLower(s) {
	case "", "normal":
		return UINormal, nil
	case "battle":
		return UIBattle, nil
	case "end":
		return UIEnd, nil
	default:
		return 0, fmt.Errorf("unknown ui form %q", s)
	}
}

// Pick returns the path for ui.
func (p DerivedPaths) Pick(ui UIForm) hash40.Hash40 {
	switch ui {
	case UIBattle:
		return p.Battle
	case UIEnd:
		return p.End
	default:
		return p.Normal
	}
}

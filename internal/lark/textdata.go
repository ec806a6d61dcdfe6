package lark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TextData is an attributed text payload: a concatenated string plus a
// run-length attribute encoding over an interned attribute pool.
type TextData struct {
	Apool                  Apool           `json:"apool"`
	InitialAttributedTexts AttributedTexts `json:"initialAttributedTexts"`
}

// Apool is the per-payload attribute interning table
type Apool struct {
	NextNum     int               `json:"nextNum"`
	NumToAttrib map[string]Attrib `json:"numToAttrib"`
	AttribToNum map[string]int    `json:"attribToNum,omitempty"`
}

// AttributedTexts holds the text and its run encoding, both keyed by line
// group ("0" in everything this package produces).
type AttributedTexts struct {
	Attribs Attribs           `json:"attribs"`
	Text    map[string]string `json:"text"`
	Rows    *Object           `json:"rows,omitempty"`
	Cols    *Object           `json:"cols,omitempty"`
}

// Attrib is an interned [name, value] pair
type Attrib [2]string

// Name returns the attribute name
func (a Attrib) Name() string { return a[0] }

// Value returns the attribute value
func (a Attrib) Value() string { return a[1] }

// UnmarshalJSON accepts arrays of any length and non-string members.
func (a *Attrib) UnmarshalJSON(b []byte) error {
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("attrib: %w", err)
	}
	*a = Attrib{}
	for i := 0; i < len(raw) && i < 2; i++ {
		switch v := raw[i].(type) {
		case string:
			a[i] = v
		case nil:
		default:
			a[i] = fmt.Sprint(v)
		}
	}
	return nil
}

// Attribs is the run encoding keyed by line group. A nil value is the
// empty-text sentinel and encodes as "" rather than an object.
type Attribs map[string]string

// MarshalJSON encodes nil as "" and anything else as an object
func (a Attribs) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte(`""`), nil
	}
	return json.Marshal(map[string]string(a))
}

// UnmarshalJSON accepts either a bare run string or an object of them
func (a *Attribs) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("attribs: %w", err)
		}
		if s == "" {
			*a = nil
			return nil
		}
		*a = Attribs{"0": s}
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*a = nil
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("attribs: %w", err)
	}
	*a = m
	return nil
}

// First returns the run string of the lowest line group
func (a Attribs) First() string {
	keys := sortedKeys(a)
	if len(keys) == 0 {
		return ""
	}
	return a[keys[0]]
}

// FullText joins every text line group in numeric key order
func (t *TextData) FullText() string {
	if t == nil {
		return ""
	}
	texts := t.InitialAttributedTexts.Text
	var b strings.Builder
	for _, k := range sortedKeys(texts) {
		b.WriteString(texts[k])
	}
	return b.String()
}

// Runs returns the run encoding of t, or "" when absent
func (t *TextData) Runs() string {
	if t == nil {
		return ""
	}
	return t.InitialAttributedTexts.Attribs.First()
}

// sortedKeys orders numeric keys numerically and the rest lexically after them
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}

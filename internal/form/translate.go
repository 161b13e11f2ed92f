package form

import "fmt"

// Translator localizes UI strings. args are applied with fmt.Sprintf when present.
type Translator interface {
	T(msg string, args ...any) string
}

// Identity returns messages untranslated.
type Identity struct{}

func (Identity) T(msg string, args ...any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Catalog translates from a fixed source -> translation map, falling back to
// the source string.
type Catalog map[string]string

func (c Catalog) T(msg string, args ...any) string {
	if tr, ok := c[msg]; ok && tr != "" {
		msg = tr
	}
	return Identity{}.T(msg, args...)
}

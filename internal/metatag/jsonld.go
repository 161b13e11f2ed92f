package metatag

import (
	"encoding/json"
	"fmt"
)

const schemaContext = "https://schema.org"

// EmitJSONLD builds the JSON-LD object for one group. values is keyed by tag
// id; every value is checked against the registry and nothing is emitted if
// any of them is rejected. Tags of the group without a value are skipped.
func (r *Registry) EmitJSONLD(group string, values map[string]string) ([]byte, error) {
	descs := r.Group(group)
	if len(descs) == 0 {
		return nil, fmt.Errorf("group %q: %w", group, ErrUnknownTag)
	}

	inGroup := make(map[string]struct{}, len(descs))
	for _, d := range descs {
		inGroup[d.ID] = struct{}{}
	}
	for id := range values {
		if _, ok := inGroup[id]; !ok {
			return nil, &UnknownTagError{ID: id}
		}
	}

	obj := map[string]any{"@context": schemaContext}
	for _, d := range descs {
		v, ok := values[d.ID]
		if !ok || v == "" {
			continue
		}
		if err := r.Check(d.ID, v); err != nil {
			return nil, err
		}
		obj[d.Name] = v
	}
	return json.Marshal(obj)
}

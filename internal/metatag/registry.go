package metatag

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps tag ids to descriptors. Descriptors are read-only after
// registration.
type Registry struct {
	mu   sync.RWMutex
	tags map[string]registered
}

type registered struct {
	desc    Descriptor
	allowed []string
	index   map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{tags: map[string]registered{}}
}

// Register adds d. The value set is captured at registration time.
func (r *Registry) Register(d Descriptor) error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("tag id is required")
	}
	allowed := d.allowed()
	if len(allowed) == 0 {
		return fmt.Errorf("tag %q has no allowed values", d.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tags[d.ID]; ok {
		return &DuplicateIDError{ID: d.ID}
	}
	index := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		index[v] = struct{}{}
	}
	d.Values = StaticValues(allowed)
	r.tags[d.ID] = registered{desc: d, allowed: allowed, index: index}
	return nil
}

// MustRegister panics if d cannot be registered.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// AllowedValues returns a copy of the closed value set for id.
func (r *Registry) AllowedValues(id string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tags[id]
	if !ok {
		return nil, &UnknownTagError{ID: id}
	}
	out := make([]string, len(t.allowed))
	copy(out, t.allowed)
	return out, nil
}

// Validate reports whether value is allowed for id. Unknown ids are never valid.
func (r *Registry) Validate(id, value string) bool {
	return r.Check(id, value) == nil
}

// Check is Validate with the reason attached.
func (r *Registry) Check(id, value string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tags[id]
	if !ok {
		return &UnknownTagError{ID: id}
	}
	if _, ok := t.index[value]; !ok {
		allowed := make([]string, len(t.allowed))
		copy(allowed, t.allowed)
		return &InvalidValueError{ID: id, Value: value, Allowed: allowed}
	}
	return nil
}

func (r *Registry) Get(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tags[id]
	return t.desc, ok
}

// Descriptors returns all descriptors ordered by weight, then id.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	out := make([]Descriptor, 0, len(r.tags))
	for _, t := range r.tags {
		out = append(out, t.desc)
	}
	r.mu.RUnlock()
	sortDescriptors(out)
	return out
}

// Group returns the descriptors of one group, in display order.
func (r *Registry) Group(group string) []Descriptor {
	all := r.Descriptors()
	out := all[:0]
	for _, d := range all {
		if d.Group == group {
			out = append(out, d)
		}
	}
	return out
}

func sortDescriptors(ds []Descriptor) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].Weight != ds[j].Weight {
			return ds[i].Weight < ds[j].Weight
		}
		return ds[i].ID < ds[j].ID
	})
}

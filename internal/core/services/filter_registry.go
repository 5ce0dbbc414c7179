package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/tutorplug/internal/core/domain"
	"github.com/custodia-labs/tutorplug/internal/core/ports/driving"
	"github.com/custodia-labs/tutorplug/internal/logger"
)

// Ensure FilterRegistry implements the interface.
var _ driving.FilterRegistry = (*FilterRegistry)(nil)

// FilterRegistry holds the values of named extension points.
// It is safe for concurrent use.
type FilterRegistry struct {
	mu     sync.RWMutex
	points map[string]any
}

// NewFilterRegistry creates an empty filter registry.
func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{
		points: make(map[string]any),
	}
}

// Apply applies one callback to its extension point.
func (r *FilterRegistry) Apply(callback domain.FilterCallback) error {
	if err := callback.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return applyCallback(r.points, callback)
}

// ApplyDescriptor applies every callback of d in document order.
// Either all callbacks take effect or none do.
func (r *FilterRegistry) ApplyDescriptor(d *domain.Descriptor) error {
	if d == nil {
		return domain.ErrInvalidInput
	}
	if err := d.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	staged := copyPoints(r.points)
	for i, cb := range d.Filters {
		if !domain.IsKnownFilter(cb.Filter) {
			logger.Warn("plugin %s: filter %s is not a known extension point", d.Name, cb.Filter)
		}
		if err := applyCallback(staged, cb); err != nil {
			return fmt.Errorf("plugin %s: filters[%d]: %w", d.Name, i, err)
		}
	}
	r.points = staged
	logger.Debug("applied %d filter(s) from plugin %s", len(d.Filters), d.Name)
	return nil
}

// Get returns a copy of the current value of an extension point.
func (r *FilterRegistry) Get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.points[name]
	if !ok {
		return nil, false
	}
	return copyValue(v), true
}

// Names returns the touched extension points in sorted order.
func (r *FilterRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.points))
	for name := range r.points {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a deep copy of every extension point value.
func (r *FilterRegistry) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyPoints(r.points)
}

// applyCallback mutates points. Untouched points start as an empty list.
func applyCallback(points map[string]any, cb domain.FilterCallback) error {
	if cb.Op == domain.FilterOpReplace {
		points[cb.Filter] = copyValue(cb.Value)
		return nil
	}

	current, ok := points[cb.Filter]
	if !ok {
		current = []any{}
	}
	list, ok := current.([]any)
	if !ok {
		return fmt.Errorf("%w: cannot %s to %s; current value is not a list",
			domain.ErrFilterConflict, cb.Op, cb.Filter)
	}

	switch cb.Op {
	case domain.FilterOpAddItem:
		list = append(list, copyValue(cb.Value))
	case domain.FilterOpAddItems:
		items, ok := cb.Value.([]any)
		if !ok {
			return fmt.Errorf("%w: add_items value for %s is not a list", domain.ErrInvalidFilter, cb.Filter)
		}
		for _, item := range items {
			list = append(list, copyValue(item))
		}
	default:
		return fmt.Errorf("%w: unsupported op %q", domain.ErrInvalidFilter, cb.Op)
	}
	points[cb.Filter] = list
	return nil
}

func copyPoints(points map[string]any) map[string]any {
	out := make(map[string]any, len(points))
	for k, v := range points {
		out[k] = copyValue(v)
	}
	return out
}

// copyValue deep-copies the mappings and sequences produced by the loader.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return val
	}
}

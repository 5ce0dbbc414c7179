package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// FilterOp is the way a FilterCallback contributes to its extension point.
type FilterOp string

// Available filter operations.
const (
	// FilterOpAddItem appends a single value.
	FilterOpAddItem FilterOp = "add_item"

	// FilterOpAddItems appends every element of a list value.
	FilterOpAddItems FilterOp = "add_items"

	// FilterOpReplace overwrites the whole value of the extension point.
	FilterOpReplace FilterOp = "replace"
)

// AllFilterOps returns the legal operations in their canonical order.
func AllFilterOps() []FilterOp {
	return []FilterOp{FilterOpAddItem, FilterOpAddItems, FilterOpReplace}
}

// ParseFilterOp converts raw text into a FilterOp.
// It is the only place where text becomes an operation.
func ParseFilterOp(s string) (FilterOp, bool) {
	for _, op := range AllFilterOps() {
		if string(op) == s {
			return op, true
		}
	}
	return "", false
}

// IsValid returns true if the operation is recognised.
func (o FilterOp) IsValid() bool {
	_, ok := ParseFilterOp(string(o))
	return ok
}

// String returns the string representation.
func (o FilterOp) String() string {
	return string(o)
}

// FilterOpNames returns the legal operations joined for display.
func FilterOpNames() string {
	ops := AllFilterOps()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}
	return strings.Join(names, ", ")
}

// filterNamePattern matches extension point identifiers such as ENV_PATCHES.
var filterNamePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// IsValidFilterName reports whether name is a well-formed extension point identifier.
func IsValidFilterName(name string) bool {
	return filterNamePattern.MatchString(name)
}

// FilterCallback is one declared contribution to a named extension point.
type FilterCallback struct {
	// Filter is the extension point name (e.g. "CONFIG_DEFAULTS").
	Filter string `yaml:"name" json:"name"`

	// Op says how Value is combined with the current value.
	Op FilterOp `yaml:"op" json:"op"`

	// Value is taken verbatim from the document.
	// For FilterOpAddItems it is always a []any.
	Value any `yaml:"value" json:"value"`
}

// Validate checks the callback invariants.
func (c FilterCallback) Validate() error {
	if !IsValidFilterName(c.Filter) {
		return fmt.Errorf("%w: invalid filter name: '%s'", ErrInvalidFilter, c.Filter)
	}
	if !c.Op.IsValid() {
		return fmt.Errorf("%w: bad filter op %s; should be one of: %s", ErrInvalidFilter, c.Op, FilterOpNames())
	}
	if c.Op == FilterOpAddItems {
		if _, ok := c.Value.([]any); !ok {
			return fmt.Errorf("%w: 'add_items' value must be a list", ErrInvalidFilter)
		}
	}
	return nil
}

// Descriptor is a validated YAML v1 plugin descriptor.
// It is built once per load and treated as read-only afterwards.
type Descriptor struct {
	// Name identifies the plugin. Never empty.
	Name string `yaml:"name" json:"name"`

	// Version is nil when the descriptor is unversioned.
	Version *string `yaml:"version,omitempty" json:"version,omitempty"`

	// Filters are kept in document order.
	Filters []FilterCallback `yaml:"filters" json:"filters"`
}

// HasVersion returns true if the descriptor declares a version.
func (d *Descriptor) HasVersion() bool {
	return d.Version != nil
}

// VersionString returns the version, or "unversioned" when absent.
func (d *Descriptor) VersionString() string {
	if d.Version == nil {
		return "unversioned"
	}
	return *d.Version
}

// Validate checks the descriptor invariants.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: descriptor name is empty", ErrMissingField)
	}
	for i, f := range d.Filters {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("filters[%d]: %w", i, err)
		}
	}
	return nil
}

package yamlv1

import (
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/tutorplug/internal/core/domain"
	"github.com/custodia-labs/tutorplug/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DescriptorLoader = (*Loader)(nil)

// Top-level descriptor keys.
const (
	keyName    = "name"
	keyVersion = "version"
	keyFilters = "filters"
)

// Filter entry keys.
const (
	keyFilterName  = "name"
	keyFilterOp    = "op"
	keyFilterValue = "value"
)

var (
	topLevelKeys    = map[string]bool{keyName: true, keyVersion: true, keyFilters: true}
	filterEntryKeys = map[string]bool{keyFilterName: true, keyFilterOp: true, keyFilterValue: true}
)

const msgBadFilterEntry = "each entry in 'filters' must be a dictionary with keys 'name', 'op', and 'value'"

// Loader reads YAML v1 descriptor files.
// It holds no state and is safe for concurrent use.
type Loader struct{}

// NewLoader creates a new YAML v1 descriptor loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and validates the descriptor at path.
func (l *Loader) Load(path string) (*domain.Descriptor, error) {
	return LoadDescriptor(path)
}

// LoadDescriptor reads and validates the descriptor at path.
// Every failure is a *domain.LoadError.
func LoadDescriptor(path string) (*domain.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.LoadError{
			Path:    path,
			Kind:    domain.ErrUnreadableFile,
			Message: "file could not be opened: " + err.Error(),
			Err:     err,
		}
	}

	root, err := parseDocument(data)
	if err != nil {
		return nil, &domain.LoadError{
			Path:    path,
			Kind:    domain.ErrMalformedDocument,
			Message: "file is not valid YAML: " + err.Error(),
			Err:     err,
		}
	}

	return parseDescriptor(path, root)
}

// parseDescriptor validates the root node of a descriptor document.
func parseDescriptor(path string, root *yaml.Node) (*domain.Descriptor, error) {
	if classify(root) != kindMapping {
		return nil, domain.NewLoadError(path, domain.ErrInvalidShape,
			"top-level data structure must be a mapping")
	}

	var unknown []string
	for _, e := range entries(root) {
		if !topLevelKeys[e.key] {
			unknown = append(unknown, e.key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, domain.NewLoadError(path, domain.ErrUnknownField,
			"unrecognized top-level keys: %s", strings.Join(unknown, ", "))
	}

	name, err := parseName(path, root)
	if err != nil {
		return nil, err
	}

	version, err := parseVersion(path, root)
	if err != nil {
		return nil, err
	}

	filtersNode, ok := lookup(root, keyFilters)
	if !ok {
		return nil, domain.NewLoadError(path, domain.ErrMissingField, "missing top-level 'filters' key")
	}
	if k := classify(filtersNode); k != kindSequence {
		return nil, domain.NewLoadError(path, domain.ErrWrongType, "'filters' must be a list; is type %s", k)
	}

	items := resolve(filtersNode).Content
	filters := make([]domain.FilterCallback, 0, len(items))
	for _, item := range items {
		callback, err := ParseFilterCallback(path, item)
		if err != nil {
			return nil, err
		}
		filters = append(filters, callback)
	}

	return &domain.Descriptor{
		Name:    name,
		Version: version,
		Filters: filters,
	}, nil
}

func parseName(path string, root *yaml.Node) (string, error) {
	n, ok := lookup(root, keyName)
	if !ok {
		return "", domain.NewLoadError(path, domain.ErrMissingField, "missing top-level 'name' key")
	}
	switch k := classify(n); k {
	case kindNull:
		return "", domain.NewLoadError(path, domain.ErrMissingField, "missing top-level 'name' key")
	case kindString:
		name := resolve(n).Value
		if name == "" {
			return "", domain.NewLoadError(path, domain.ErrMissingField, "missing top-level 'name' key")
		}
		return name, nil
	default:
		return "", domain.NewLoadError(path, domain.ErrWrongType, "'name' must be a string; is type %s", k)
	}
}

func parseVersion(path string, root *yaml.Node) (*string, error) {
	n, ok := lookup(root, keyVersion)
	if !ok {
		return nil, nil
	}
	switch k := classify(n); k {
	case kindNull:
		return nil, nil
	case kindString:
		version := resolve(n).Value
		return &version, nil
	default:
		return nil, domain.NewLoadError(path, domain.ErrWrongType,
			"'version' must be either a string or omitted; is type %s", k)
	}
}

// ParseFilterCallback validates one entry of the 'filters' sequence.
// path is only used to attribute errors.
func ParseFilterCallback(path string, entry *yaml.Node) (domain.FilterCallback, error) {
	if classify(entry) != kindMapping {
		return domain.FilterCallback{}, domain.NewLoadError(path, domain.ErrInvalidFilter, msgBadFilterEntry)
	}
	fields := entries(entry)
	if len(fields) != len(filterEntryKeys) {
		return domain.FilterCallback{}, domain.NewLoadError(path, domain.ErrInvalidFilter, msgBadFilterEntry)
	}
	for _, f := range fields {
		if !filterEntryKeys[f.key] {
			return domain.FilterCallback{}, domain.NewLoadError(path, domain.ErrInvalidFilter, msgBadFilterEntry)
		}
	}

	nameNode, _ := lookup(entry, keyFilterName)
	name := resolve(nameNode).Value
	if classify(nameNode) != kindString || !domain.IsValidFilterName(name) {
		return domain.FilterCallback{}, domain.NewLoadError(path, domain.ErrInvalidFilter,
			"invalid filter name: '%s'", display(nameNode))
	}

	opNode, _ := lookup(entry, keyFilterOp)
	op, ok := domain.ParseFilterOp(resolve(opNode).Value)
	if classify(opNode) != kindString || !ok {
		return domain.FilterCallback{}, domain.NewLoadError(path, domain.ErrInvalidFilter,
			"bad filter op %s; should be one of: %s", display(opNode), domain.FilterOpNames())
	}

	valueNode, _ := lookup(entry, keyFilterValue)
	if op == domain.FilterOpAddItems {
		if k := classify(valueNode); k != kindSequence {
			return domain.FilterCallback{}, domain.NewLoadError(path, domain.ErrInvalidFilter,
				"when using 'op: add_items', 'value' must be a list, not a %s", k)
		}
	}

	value, err := valueOf(valueNode)
	if err != nil {
		return domain.FilterCallback{}, &domain.LoadError{
			Path:    path,
			Kind:    domain.ErrMalformedDocument,
			Message: "file is not valid YAML: " + err.Error(),
			Err:     err,
		}
	}

	return domain.FilterCallback{
		Filter: name,
		Op:     op,
		Value:  value,
	}, nil
}

// Package catalog holds the fixed, ordered set of body-system definitions
// that drive the examination form and the report renderer. The catalog is
// versioned with the software: it is loaded once per process and never
// mutated at runtime. Changing it affects reports rendered afterwards but
// never rewrites report text already stored.
package catalog

import "sort"

// FieldType is the closed set of input types a system field can have.
type FieldType string

const (
	FieldCheckbox    FieldType = "checkbox"
	FieldSelect      FieldType = "select"
	FieldMultiSelect FieldType = "multiselect"
	FieldNumeric     FieldType = "numeric"
	FieldText        FieldType = "text"
)

// Field defines one typed input within a body system.
type Field struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Type    FieldType `json:"type"`
	Options []string  `json:"options,omitempty"` // required for select/multiselect
	Unit    string    `json:"unit,omitempty"`    // verbatim display suffix for numeric values
	Default any       `json:"default,omitempty"`
}

// System defines one examination category.
type System struct {
	Name              string  `json:"name"`
	DisplayName       string  `json:"display_name"`
	DisplayOrder      int     `json:"display_order"`
	DefaultNormalText string  `json:"default_normal_text"`
	Fields            []Field `json:"fields"`
}

// Catalog is a read-only collection of body-system definitions.
type Catalog struct {
	byName  map[string]System
	ordered []System
}

// New builds a Catalog from the given systems, sorted by display order.
func New(systems []System) *Catalog {
	ordered := make([]System, len(systems))
	copy(ordered, systems)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	byName := make(map[string]System, len(ordered))
	for _, s := range ordered {
		byName[s.Name] = s
	}
	return &Catalog{byName: byName, ordered: ordered}
}

// Systems returns the definitions in ascending display order. The returned
// slice is a copy; callers cannot mutate catalog state through it.
func (c *Catalog) Systems() []System {
	out := make([]System, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// System returns the definition with the given name.
func (c *Catalog) System(name string) (System, bool) {
	s, ok := c.byName[name]
	return s, ok
}

// Len returns the number of systems in the catalog.
func (c *Catalog) Len() int { return len(c.ordered) }

package model

// Mapping is one row of the Name→Category store.
type Mapping struct {
	Name     string
	Category string
}

// MappingChange describes the effect of saving one mapping.
type MappingChange struct {
	Name     string
	Previous string // empty when the name was new
	Category string
}

// IsNew reports whether the name had no mapping before.
func (c MappingChange) IsNew() bool {
	return c.Previous == ""
}

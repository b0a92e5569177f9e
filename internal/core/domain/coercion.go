package domain

import "fmt"

// SemanticType is the meaning assigned to a column independently of how
// its values are encoded in the source file.
type SemanticType string

// Available semantic types.
const (
	// TypeText marks a column left exactly as loaded.
	TypeText SemanticType = "text"

	// TypeString marks an opaque identifier or code. Values are never
	// interpreted numerically so leading zeros survive.
	TypeString SemanticType = "string"

	// TypeInteger marks a nullable 64-bit integer column.
	TypeInteger SemanticType = "integer"

	// TypeFloat marks a nullable floating point column.
	TypeFloat SemanticType = "float"

	// TypeDate marks a nullable calendar date column.
	TypeDate SemanticType = "date"
)

// IsValid returns true if the semantic type is recognised.
func (t SemanticType) IsValid() bool {
	switch t {
	case TypeText, TypeString, TypeInteger, TypeFloat, TypeDate:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SemanticType) String() string {
	return string(t)
}

// DateLayout is the day/month/4-digit-year layout of DVF dates.
// Single-digit days and months are accepted.
const DateLayout = "2/1/2006"

// ColumnSpec assigns a semantic type to one named column.
type ColumnSpec struct {
	Name string
	Type SemanticType

	// DecimalComma normalises "1234,56" to "1234.56" before a float parse.
	DecimalComma bool
}

// CoercionTable is an ordered list of column type assignments.
type CoercionTable []ColumnSpec

// Lookup returns the entry for a column name.
func (t CoercionTable) Lookup(name string) (ColumnSpec, bool) {
	for _, spec := range t {
		if spec.Name == name {
			return spec, true
		}
	}
	return ColumnSpec{}, false
}

// Validate checks that every entry names a column once with a known,
// non-text type.
func (t CoercionTable) Validate() error {
	seen := make(map[string]struct{}, len(t))
	for _, spec := range t {
		if spec.Name == "" {
			return fmt.Errorf("%w: empty column name", ErrInvalidInput)
		}
		if !spec.Type.IsValid() || spec.Type == TypeText {
			return fmt.Errorf("%w: column %q has type %q", ErrUnsupportedType, spec.Name, spec.Type)
		}
		if spec.DecimalComma && spec.Type != TypeFloat {
			return fmt.Errorf("%w: decimal comma on non-float column %q", ErrInvalidInput, spec.Name)
		}
		if _, dup := seen[spec.Name]; dup {
			return fmt.Errorf("%w: column %q listed twice", ErrInvalidInput, spec.Name)
		}
		seen[spec.Name] = struct{}{}
	}
	return nil
}

// DefaultCoercionTable returns the fixed DVF column table.
func DefaultCoercionTable() CoercionTable {
	return CoercionTable{
		// Identifiers
		{Name: "No disposition", Type: TypeInteger},

		// Dates
		{Name: "Date mutation", Type: TypeDate},

		// Monetary
		{Name: "Valeur fonciere", Type: TypeFloat, DecimalComma: true},

		// Codes and identifiers
		{Name: "No voie", Type: TypeString},
		{Name: "Code postal", Type: TypeString},
		{Name: "Code voie", Type: TypeString},
		{Name: "Code commune", Type: TypeString},
		{Name: "Code departement", Type: TypeString},
		{Name: "Prefixe de section", Type: TypeString},
		{Name: "Section", Type: TypeString},
		{Name: "No plan", Type: TypeString},
		{Name: "Code type local", Type: TypeString},
		{Name: "Identifiant local", Type: TypeString},

		// Quantities
		{Name: "Nombre de lots", Type: TypeInteger},
		{Name: "Nombre pieces principales", Type: TypeInteger},

		// Surfaces
		{Name: "Surface reelle bati", Type: TypeFloat},
		{Name: "Surface terrain", Type: TypeFloat},
	}
}

package field

// Type is the value type a column is represented with in the generated
// persistent object. The zero value is TypeText.
type Type uint8

// List of value types.
const (
	TypeText Type = iota
	TypeInteger
	TypeLong
	TypeFloat
	TypeDouble
	TypeDecimal
	TypeNumber
	TypeBool
	TypeDate
	endTypes
)

var typeNames = [...]string{
	TypeText:    "text",
	TypeInteger: "integer",
	TypeLong:    "long",
	TypeFloat:   "float",
	TypeDouble:  "double",
	TypeDecimal: "decimal",
	TypeNumber:  "number",
	TypeBool:    "boolean",
	TypeDate:    "date",
}

// String returns the string representation of a type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeText]
}

// MarshalYAML implements the yaml.Marshaler interface.
func (t Type) MarshalYAML() (any, error) { return t.String(), nil }

// Valid reports if the given type is a known type.
func (t Type) Valid() bool { return t < endTypes }

// Numeric reports if the type gets the numeric zero as its synthesized default.
// Decimal and generic numbers are excluded on purpose: they are defaulted like text.
func (t Type) Numeric() bool {
	switch t {
	case TypeInteger, TypeLong, TypeFloat, TypeDouble:
		return true
	default:
		return false
	}
}

// GoType describes the Go type used for a value type. Pkg is empty for
// predeclared types.
type GoType struct {
	Pkg  string
	Name string
}

// String returns the qualified Go type, e.g. "time.Time".
func (g GoType) String() string {
	if g.Pkg == "" {
		return g.Name
	}
	return pkgName(g.Pkg) + "." + g.Name
}

// PkgName returns the package name of the Go type, or "" for predeclared types.
func (g GoType) PkgName() string {
	if g.Pkg == "" {
		return ""
	}
	return pkgName(g.Pkg)
}

func pkgName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

var goTypes = [...]GoType{
	TypeText:    {Name: "string"},
	TypeInteger: {Name: "int32"},
	TypeLong:    {Name: "int64"},
	TypeFloat:   {Name: "float32"},
	TypeDouble:  {Name: "float64"},
	TypeDecimal: {Pkg: "github.com/shopspring/decimal", Name: "Decimal"},
	TypeNumber:  {Pkg: "encoding/json", Name: "Number"},
	TypeBool:    {Name: "bool"},
	TypeDate:    {Pkg: "time", Name: "Time"},
}

// GoType returns the Go type the value type is generated as.
func (t Type) GoType() GoType {
	if t < endTypes {
		return goTypes[t]
	}
	return goTypes[TypeText]
}

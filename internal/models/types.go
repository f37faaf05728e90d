package models

// TypeKind classifies an inferred type.
type TypeKind int

const (
	// TypeUnknown is used when nothing can be said about a value.
	TypeUnknown TypeKind = iota
	// TypeNull marks a field whose sample value was null.
	TypeNull
	TypeString
	TypeInt
	TypeDouble
	TypeBool
	// TypeArray is a non-empty array; Elem holds the type of its first element.
	TypeArray
	// TypeEmptyArray is an array with no element to inspect.
	TypeEmptyArray
	// TypeObject is a nested object left for the user to name.
	TypeObject
	// TypeModel refers to a named model generated alongside the current one.
	TypeModel
)

// TypeInfo is the inferred type of one JSON value.
type TypeInfo struct {
	Kind TypeKind
	Elem *TypeInfo // set for TypeArray
	Name string    // set for TypeModel
}

// ArrayOf returns an array type over elem.
func ArrayOf(elem TypeInfo) TypeInfo {
	return TypeInfo{Kind: TypeArray, Elem: &elem}
}

// NamedModel returns a type referring to the model called name.
func NamedModel(name string) TypeInfo {
	return TypeInfo{Kind: TypeModel, Name: name}
}

// Equal reports whether two types are structurally identical.
func (t TypeInfo) Equal(other TypeInfo) bool {
	if t.Kind != other.Kind || t.Name != other.Name {
		return false
	}
	if t.Kind != TypeArray {
		return true
	}
	if t.Elem == nil || other.Elem == nil {
		return t.Elem == other.Elem
	}
	return t.Elem.Equal(*other.Elem)
}

// Field is one declaration of a generated model.
type Field struct {
	Name    string
	Type    TypeInfo
	Comment string
}

// Model is a named set of fields. An empty Name stands for the
// user-editable model placeholder.
type Model struct {
	Name   string
	Fields []Field
}

// DeclarationBlock is the rendered text of one or more models, one entry per line.
type DeclarationBlock []string

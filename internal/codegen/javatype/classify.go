package javatype

import "github.com/mhmt/navgen/internal/codegen/common"

// Category is the transport category of a field type.
type Category int

const (
	CategoryUnsupported Category = iota
	CategoryNumeric
	CategoryChar
	CategoryBoolean
	CategoryTransferableArray // array of Parcelable elements
	CategoryArray             // array with a typed Intent accessor (primitives, String, CharSequence)
	CategoryStringLike        // String, CharSequence, Bundle
	CategoryTransferable      // Parcelable
	CategorySerializable
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryNumeric:
		return "numeric"
	case CategoryChar:
		return "char"
	case CategoryBoolean:
		return "boolean"
	case CategoryTransferableArray:
		return "parcelable-array"
	case CategoryArray:
		return "array"
	case CategoryStringLike:
		return "string-like"
	case CategoryTransferable:
		return "parcelable"
	case CategorySerializable:
		return "serializable"
	default:
		return "unsupported"
	}
}

// Numeric describes the representation of a numeric primitive.
type Numeric struct {
	Width    int
	Signed   bool
	Floating bool
}

// Descriptor is the classification of one declared type.
type Descriptor struct {
	Type      Type
	Category  Category
	Primitive string      // unboxed keyword for numeric, char and boolean types
	Numeric   Numeric     // set for CategoryNumeric
	Boxed     bool        // declared through its java.lang wrapper
	Base      string      // matched string-like base type (String, CharSequence or Bundle)
	Elem      *Descriptor // element classification for array categories
}

var primitives = map[string]Numeric{
	"byte":    {Width: 8, Signed: true},
	"short":   {Width: 16, Signed: true},
	"int":     {Width: 32, Signed: true},
	"long":    {Width: 64, Signed: true},
	"float":   {Width: 32, Signed: true, Floating: true},
	"double":  {Width: 64, Signed: true, Floating: true},
	"char":    {Width: 16},
	"boolean": {},
}

var boxes = map[string]string{
	"java.lang.Byte":      "byte",
	"java.lang.Short":     "short",
	"java.lang.Integer":   "int",
	"java.lang.Long":      "long",
	"java.lang.Float":     "float",
	"java.lang.Double":    "double",
	"java.lang.Character": "char",
	"java.lang.Boolean":   "boolean",
}

// Unbox returns the primitive keyword for a primitive or wrapper type name.
func Unbox(name string) (primitive string, boxed bool, ok bool) {
	if _, isPrim := primitives[name]; isPrim {
		return name, false, true
	}
	if p, isBox := boxes[name]; isBox {
		return p, true, true
	}
	return "", false, false
}

// Classify maps t onto exactly one Category. Capability checks are answered
// by u, so the result only depends on t and the universe.
func Classify(t Type, u Universe) Descriptor {
	d := Descriptor{Type: t}

	if t.IsArray() {
		return classifyArray(d, u)
	}

	if prim, boxed, ok := Unbox(t.Name); ok {
		d.Primitive = prim
		d.Boxed = boxed
		switch prim {
		case "char":
			d.Category = CategoryChar
		case "boolean":
			d.Category = CategoryBoolean
		default:
			d.Category = CategoryNumeric
			d.Numeric = primitives[prim]
		}
		return d
	}

	switch {
	case t.Name == JavaString:
		d.Category, d.Base = CategoryStringLike, "String"
	case t.Name == CharSequence:
		d.Category, d.Base = CategoryStringLike, "CharSequence"
	case u.IsAssignableTo(t.Name, Bundle):
		d.Category, d.Base = CategoryStringLike, "Bundle"
	case u.IsAssignableTo(t.Name, Parcelable):
		d.Category = CategoryTransferable
	case u.IsAssignableTo(t.Name, Serializable):
		d.Category = CategorySerializable
	default:
		d.Category = CategoryUnsupported
	}
	return d
}

func classifyArray(d Descriptor, u Universe) Descriptor {
	elem := Classify(*d.Type.Elem, u)
	d.Elem = &elem

	switch {
	case elem.Category == CategoryTransferable || (elem.Category == CategoryStringLike && elem.Base == "Bundle"):
		d.Category = CategoryTransferableArray
	case elem.Primitive != "" && !elem.Boxed:
		d.Category = CategoryArray
	case elem.Category == CategoryStringLike:
		d.Category = CategoryArray
	case isSerializableArray(d.Type, u):
		d.Category = CategorySerializable
	default:
		d.Category = CategoryUnsupported
	}
	return d
}

// isSerializableArray reports whether every value of array type t is
// serializable: nested primitive arrays, or arrays of serializable types.
func isSerializableArray(t Type, u Universe) bool {
	inner := t.Innermost()
	if _, _, ok := Unbox(inner.Name); ok {
		return true
	}
	return u.IsAssignableTo(inner.Name, Serializable)
}

// ElementName is the simple name used in typed array accessor names:
// "int" for int[], "String" for String[].
func (d Descriptor) ElementName() string {
	if d.Elem == nil {
		return ""
	}
	if d.Elem.Primitive != "" {
		return d.Elem.Primitive
	}
	return d.Elem.Type.SimpleName()
}

// AccessorStem is the capitalized type name typed accessors are named after.
func (d Descriptor) AccessorStem() string {
	if d.Primitive != "" {
		return common.Capitalize(d.Primitive)
	}
	return common.Capitalize(d.Type.SimpleName())
}

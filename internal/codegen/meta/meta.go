package meta

import (
	"fmt"

	"github.com/mhmt/navgen/internal/codegen/javatype"
)

// Modifier is a Java field modifier keyword.
type Modifier string

const (
	ModPublic    Modifier = "public"
	ModProtected Modifier = "protected"
	ModPrivate   Modifier = "private"
	ModStatic    Modifier = "static"
	ModFinal     Modifier = "final"
)

// FieldDescriptor is one field carrying the navigation marker annotation.
type FieldDescriptor struct {
	Name      string
	Type      javatype.Type
	Modifiers []Modifier
	Bind      bool // read the extra back in the binder
}

// Public reports whether generated code in another package may assign the field.
func (f FieldDescriptor) Public() bool {
	return f.Has(ModPublic)
}

// Has reports whether the field was declared with modifier m.
func (f FieldDescriptor) Has(m Modifier) bool {
	for _, mod := range f.Modifiers {
		if mod == m {
			return true
		}
	}
	return false
}

// Position locates a declaration in its source.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return ""
	}
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Declaration is a single annotated field as reported by a scanner.
type Declaration struct {
	Class string // qualified name of the declaring class
	Field FieldDescriptor
	Pos   Position
}

// OwningClassGroup holds the annotated fields of one class in scan order.
type OwningClassGroup struct {
	Class  javatype.Type
	Fields []FieldDescriptor
}

// SimpleName is the class name used for the launcher method.
func (g OwningClassGroup) SimpleName() string {
	return g.Class.SimpleName()
}

// Metadata holds everything scanned for one generation run.
// Shared between the generator orchestrator and the emitter.
type Metadata struct {
	Declarations []Declaration
	Universe     *javatype.StaticUniverse
	Package      string // package override requested by a manifest, if any
}

// Groups aggregates the declarations by owning class.
func (m *Metadata) Groups() []OwningClassGroup {
	return Aggregate(m.Declarations)
}

// Aggregate groups declarations by owning class. Classes appear in the order
// they were first encountered and fields keep their scan order.
func Aggregate(decls []Declaration) []OwningClassGroup {
	index := make(map[string]int)
	var groups []OwningClassGroup
	for _, d := range decls {
		i, ok := index[d.Class]
		if !ok {
			i = len(groups)
			index[d.Class] = i
			groups = append(groups, OwningClassGroup{Class: javatype.Named(d.Class)})
		}
		groups[i].Fields = append(groups[i].Fields, d.Field)
	}
	return groups
}

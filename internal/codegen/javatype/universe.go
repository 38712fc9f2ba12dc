package javatype

import (
	"sort"
	"strings"
)

// Capability names queried by the classifier.
const (
	Parcelable   = "android.os.Parcelable"
	Serializable = "java.io.Serializable"
	Bundle       = "android.os.Bundle"
	CharSequence = "java.lang.CharSequence"
	JavaString   = "java.lang.String"
	Object       = "java.lang.Object"
)

// Universe answers capability queries against the set of known types.
type Universe interface {
	// IsAssignableTo reports whether a value of the qualified raw type
	// candidate can be assigned to capability.
	IsAssignableTo(candidate, capability string) bool
}

// StaticUniverse is a Universe backed by explicitly declared supertype edges.
// Assignability is the reflexive, transitive closure over those edges.
type StaticUniverse struct {
	supers map[string][]string
}

// NewUniverse returns a universe seeded with JDK and Android platform types.
func NewUniverse() *StaticUniverse {
	u := &StaticUniverse{supers: make(map[string][]string)}
	seedPlatform(u)
	return u
}

// Declare records name with the given direct supertypes. Repeated
// declarations accumulate.
func (u *StaticUniverse) Declare(name string, supertypes ...string) {
	existing := u.supers[name]
	for _, s := range supertypes {
		if s == "" || s == name || contains(existing, s) {
			continue
		}
		existing = append(existing, s)
	}
	u.supers[name] = existing
}

// Known reports whether name has been declared.
func (u *StaticUniverse) Known(name string) bool {
	_, ok := u.supers[name]
	return ok
}

// Supertypes returns the direct supertypes declared for name.
func (u *StaticUniverse) Supertypes(name string) []string {
	return append([]string(nil), u.supers[name]...)
}

// Names returns every declared type name, sorted.
func (u *StaticUniverse) Names() []string {
	names := make([]string, 0, len(u.supers))
	for n := range u.supers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// InPackage returns the declared type in pkg whose simple name is simple.
func (u *StaticUniverse) InPackage(pkg, simple string) (string, bool) {
	name := simple
	if pkg != "" {
		name = pkg + "." + simple
	}
	return name, u.Known(name)
}

func (u *StaticUniverse) IsAssignableTo(candidate, capability string) bool {
	if candidate == capability || capability == Object {
		return true
	}
	seen := map[string]bool{candidate: true}
	queue := []string{candidate}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, s := range u.supers[cur] {
			if s == capability {
				return true
			}
			if !seen[s] {
				seen[s] = true
				queue = append(queue, s)
			}
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// IsJavaLang reports whether simple names a java.lang type the universe knows.
func IsJavaLang(simple string) bool {
	if strings.Contains(simple, ".") {
		return false
	}
	_, ok := javaLang[simple]
	return ok
}

func seedPlatform(u *StaticUniverse) {
	u.Declare("java.lang.Object")
	u.Declare("java.io.Serializable")
	u.Declare("java.lang.Comparable")
	u.Declare("java.lang.Cloneable")
	u.Declare("java.lang.CharSequence")
	u.Declare("java.lang.Number", Serializable)
	u.Declare("java.lang.Enum", Serializable, "java.lang.Comparable")
	u.Declare("java.lang.String", Serializable, CharSequence, "java.lang.Comparable")
	u.Declare("java.lang.StringBuilder", Serializable, CharSequence)
	u.Declare("java.lang.Boolean", Serializable, "java.lang.Comparable")
	u.Declare("java.lang.Character", Serializable, "java.lang.Comparable")
	u.Declare("java.lang.Byte", "java.lang.Number", "java.lang.Comparable")
	u.Declare("java.lang.Short", "java.lang.Number", "java.lang.Comparable")
	u.Declare("java.lang.Integer", "java.lang.Number", "java.lang.Comparable")
	u.Declare("java.lang.Long", "java.lang.Number", "java.lang.Comparable")
	u.Declare("java.lang.Float", "java.lang.Number", "java.lang.Comparable")
	u.Declare("java.lang.Double", "java.lang.Number", "java.lang.Comparable")
	u.Declare("java.math.BigDecimal", "java.lang.Number")
	u.Declare("java.math.BigInteger", "java.lang.Number")

	u.Declare("java.util.Collection")
	u.Declare("java.util.List", "java.util.Collection")
	u.Declare("java.util.Set", "java.util.Collection")
	u.Declare("java.util.Map")
	u.Declare("java.util.ArrayList", "java.util.List", Serializable, "java.lang.Cloneable")
	u.Declare("java.util.LinkedList", "java.util.List", Serializable, "java.lang.Cloneable")
	u.Declare("java.util.HashSet", "java.util.Set", Serializable, "java.lang.Cloneable")
	u.Declare("java.util.LinkedHashSet", "java.util.HashSet")
	u.Declare("java.util.TreeSet", "java.util.Set", Serializable, "java.lang.Cloneable")
	u.Declare("java.util.HashMap", "java.util.Map", Serializable, "java.lang.Cloneable")
	u.Declare("java.util.LinkedHashMap", "java.util.HashMap")
	u.Declare("java.util.TreeMap", "java.util.Map", Serializable, "java.lang.Cloneable")
	u.Declare("java.util.Date", Serializable, "java.lang.Cloneable", "java.lang.Comparable")
	u.Declare("java.util.UUID", Serializable, "java.lang.Comparable")
	u.Declare("java.io.File", Serializable, "java.lang.Comparable")

	u.Declare("android.os.Parcelable")
	u.Declare("android.os.BaseBundle")
	u.Declare("android.os.Bundle", "android.os.BaseBundle", Parcelable, "java.lang.Cloneable")
	u.Declare("android.os.PersistableBundle", "android.os.BaseBundle", Parcelable, "java.lang.Cloneable")
	u.Declare("android.net.Uri", Parcelable, "java.lang.Comparable")
	u.Declare("android.content.Intent", Parcelable, "java.lang.Cloneable")
	u.Declare("android.content.Context")
	u.Declare("android.graphics.Bitmap", Parcelable)
	u.Declare("android.graphics.Point", Parcelable)
	u.Declare("android.graphics.Rect", Parcelable)
	u.Declare("android.location.Location", Parcelable)
	u.Declare("android.text.SpannableString", CharSequence)
}

// javaLang lists the java.lang names that resolve without an import.
var javaLang = map[string]struct{}{
	"Object": {}, "String": {}, "CharSequence": {}, "StringBuilder": {}, "Number": {},
	"Boolean": {}, "Character": {}, "Byte": {}, "Short": {}, "Integer": {}, "Long": {},
	"Float": {}, "Double": {}, "Enum": {}, "Comparable": {}, "Cloneable": {}, "Void": {},
	"Iterable": {}, "Class": {}, "Runnable": {}, "Exception": {}, "Throwable": {},
}

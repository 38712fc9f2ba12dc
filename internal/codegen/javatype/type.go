// Package javatype models Java type references and classifies them into the
// transport categories an Intent extra understands.
package javatype

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Type is a Java type reference as declared on a field.
type Type struct {
	Name  string // qualified raw name ("int", "java.lang.String", "com.example.User") or "?" for wildcards
	Args  []Type // generic type arguments
	Elem  *Type  // array element; nil for non-array types
	Bound *Type  // wildcard bound
	Super bool   // wildcard bound is "super" rather than "extends"
}

// Named returns a non-generic, non-array type reference.
func Named(name string) Type {
	return Type{Name: name}
}

// ArrayOf returns an array type with the given element.
func ArrayOf(elem Type) Type {
	return Type{Elem: &elem}
}

// IsArray reports whether t is an array type.
func (t Type) IsArray() bool {
	return t.Elem != nil
}

// IsWildcard reports whether t is a wildcard type argument.
func (t Type) IsWildcard() bool {
	return t.Name == "?"
}

// IsPrimitive reports whether t is one of Java's primitive keywords.
func (t Type) IsPrimitive() bool {
	_, ok := primitives[t.Name]
	return ok && !t.IsArray()
}

// Innermost returns the innermost element type of an array, or t itself.
func (t Type) Innermost() Type {
	for t.Elem != nil {
		t = *t.Elem
	}
	return t
}

// Raw returns t without type arguments (recursively through arrays).
func (t Type) Raw() Type {
	if t.Elem != nil {
		return ArrayOf(t.Elem.Raw())
	}
	return Type{Name: t.Name}
}

// SimpleName is the last segment of the qualified name, with "[]" per array level.
func (t Type) SimpleName() string {
	if t.Elem != nil {
		return t.Elem.SimpleName() + "[]"
	}
	if i := strings.LastIndexByte(t.Name, '.'); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// PackageName guesses the package portion of a qualified name: the leading
// segments that start with a lower-case letter.
func (t Type) PackageName() string {
	name := t.Innermost().Name
	var pkg []string
	for _, seg := range strings.Split(name, ".") {
		if r, _ := utf8.DecodeRuneInString(seg); !unicode.IsLower(r) {
			break
		}
		pkg = append(pkg, seg)
	}
	if len(pkg) == len(strings.Split(name, ".")) {
		return ""
	}
	return strings.Join(pkg, ".")
}

// TopLevel returns the qualified name of the outermost class enclosing t.
func (t Type) TopLevel() string {
	name := t.Innermost().Name
	pkg := t.PackageName()
	rest := strings.TrimPrefix(strings.TrimPrefix(name, pkg), ".")
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		rest = rest[:i]
	}
	if pkg == "" {
		return rest
	}
	return pkg + "." + rest
}

// String renders t in Java source form with qualified names.
func (t Type) String() string {
	return t.Format(func(name string) string { return name })
}

// Format renders t in Java source form, passing every class name through qualify.
func (t Type) Format(qualify func(name string) string) string {
	var b strings.Builder
	t.format(&b, qualify)
	return b.String()
}

func (t Type) format(b *strings.Builder, qualify func(string) string) {
	switch {
	case t.Elem != nil:
		t.Elem.format(b, qualify)
		b.WriteString("[]")
	case t.IsWildcard():
		b.WriteString("?")
		if t.Bound != nil {
			if t.Super {
				b.WriteString(" super ")
			} else {
				b.WriteString(" extends ")
			}
			t.Bound.format(b, qualify)
		}
	case t.IsPrimitive():
		b.WriteString(t.Name)
	default:
		b.WriteString(qualify(t.Name))
		if len(t.Args) > 0 {
			b.WriteByte('<')
			for i, a := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				a.format(b, qualify)
			}
			b.WriteByte('>')
		}
	}
}

// Walk calls fn for t and every type nested in it.
func (t Type) Walk(fn func(Type)) {
	fn(t)
	if t.Elem != nil {
		t.Elem.Walk(fn)
	}
	if t.Bound != nil {
		t.Bound.Walk(fn)
	}
	for _, a := range t.Args {
		a.Walk(fn)
	}
}

// MapNames returns a copy of t with every class name replaced by fn(name).
// Primitive keywords and wildcards are left untouched.
func (t Type) MapNames(fn func(string) string) Type {
	out := Type{Name: t.Name, Super: t.Super}
	if t.Elem != nil {
		e := t.Elem.MapNames(fn)
		out.Elem = &e
		return out
	}
	if t.Bound != nil {
		b := t.Bound.MapNames(fn)
		out.Bound = &b
	}
	if !t.IsWildcard() && !t.IsPrimitive() && t.Name != "" {
		out.Name = fn(t.Name)
	}
	for _, a := range t.Args {
		out.Args = append(out.Args, a.MapNames(fn))
	}
	return out
}

// Parse reads a Java type spelling such as "int[]", "java.util.List<String>"
// or "Map<String, ? extends Foo>[][]". Type annotations are ignored.
func Parse(s string) (Type, error) {
	p := &typeParser{src: s}
	t, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Type{}, fmt.Errorf("javatype: unexpected %q at offset %d in %q", p.src[p.pos:], p.pos, s)
	}
	return t, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.pos++
			continue
		}
		if c == '@' {
			p.pos++
			p.ident()
			continue
		}
		return
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos += size
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) parseType() (Type, error) {
	var t Type
	if p.peek() == '?' {
		p.pos++
		t.Name = "?"
		p.skipSpace()
		switch {
		case strings.HasPrefix(p.src[p.pos:], "extends"):
			p.pos += len("extends")
		case strings.HasPrefix(p.src[p.pos:], "super"):
			p.pos += len("super")
			t.Super = true
		default:
			return t, nil
		}
		b, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		t.Bound = &b
		return t, nil
	}

	var segs []string
	for {
		p.skipSpace()
		seg := p.ident()
		if seg == "" {
			return Type{}, fmt.Errorf("javatype: expected identifier at offset %d in %q", p.pos, p.src)
		}
		segs = append(segs, seg)
		if p.peek() != '.' {
			break
		}
		p.pos++
	}
	t.Name = strings.Join(segs, ".")

	if p.peek() == '<' {
		p.pos++
		for {
			arg, err := p.parseType()
			if err != nil {
				return Type{}, err
			}
			t.Args = append(t.Args, arg)
			c := p.peek()
			if c == ',' {
				p.pos++
				continue
			}
			if c == '>' {
				p.pos++
				break
			}
			return Type{}, fmt.Errorf("javatype: unterminated type arguments in %q", p.src)
		}
	}

	for p.peek() == '[' {
		p.pos++
		if p.peek() != ']' {
			return Type{}, fmt.Errorf("javatype: expected ']' at offset %d in %q", p.pos, p.src)
		}
		p.pos++
		t = ArrayOf(t)
	}
	return t, nil
}

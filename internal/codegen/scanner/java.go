package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/mhmt/navgen/internal/codegen/common"
	"github.com/mhmt/navgen/internal/codegen/javatype"
	"github.com/mhmt/navgen/internal/codegen/meta"
)

// DefaultAnnotation is the simple name of the marker annotation.
const DefaultAnnotation = "Required"

// SyntaxError reports a Java source file tree-sitter could not parse.
type SyntaxError struct {
	File   string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error", e.File, e.Line, e.Column)
}

// AnnotationError reports a marker annotation with arguments the scanner
// cannot evaluate.
type AnnotationError struct {
	Pos    meta.Position
	Detail string
}

func (e *AnnotationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Detail)
}

// JavaScanner finds fields carrying the marker annotation in Java sources.
// Files are parsed as they are added; names are resolved once every file is
// known, because a field may refer to a type declared in a later file.
type JavaScanner struct {
	parser      *sitter.Parser
	annotation  string
	bindDefault bool
	logger      *slog.Logger
	units       []*javaUnit
}

type javaUnit struct {
	path      string
	pkg       string
	imports   []string // single-type imports
	onDemand  []string // packages (or types) imported with .*
	typeDecls []*javaTypeDecl
}

type javaTypeDecl struct {
	qualified string
	kind      string
	supers    []string // supertype spellings as written
	fields    []javaField
	outer     *javaTypeDecl
}

type javaField struct {
	name      string
	typeSrc   string
	modifiers []meta.Modifier
	bind      bool
	pos       meta.Position
}

// NewJavaScanner returns a scanner for fields annotated with @annotation.
// bindDefault is used when the annotation does not set bind explicitly.
func NewJavaScanner(annotation string, bindDefault bool, logger *slog.Logger) (*JavaScanner, error) {
	p := sitter.NewParser()
	if err := p.SetLanguage(sitter.NewLanguage(tree_sitter_java.Language())); err != nil {
		p.Close()
		return nil, fmt.Errorf("scanner: %w", err)
	}
	if annotation == "" {
		annotation = DefaultAnnotation
	}
	return &JavaScanner{
		parser:      p,
		annotation:  common.SimpleName(strings.TrimPrefix(annotation, "@")),
		bindDefault: bindDefault,
		logger:      logger,
	}, nil
}

// Close releases parser resources.
func (s *JavaScanner) Close() {
	if s == nil || s.parser == nil {
		return
	}
	s.parser.Close()
}

// Files reports how many source files were parsed.
func (s *JavaScanner) Files() int {
	return len(s.units)
}

// AddDir parses every .java file below root.
func (s *JavaScanner) AddDir(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		return s.AddSource(path, src)
	})
}

// AddSource parses one compilation unit.
func (s *JavaScanner) AddSource(path string, src []byte) error {
	tree := s.parser.Parse(src, nil)
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return fmt.Errorf("%s: no syntax tree", path)
	}
	if root.HasError() {
		return syntaxError(path, root)
	}

	unit := &javaUnit{path: path}
	for i := uint(0); i < root.NamedChildCount(); i++ {
		node := root.NamedChild(i)
		switch node.Kind() {
		case "package_declaration":
			unit.pkg = packageName(node, src)
		case "import_declaration":
			unit.addImport(node.Utf8Text(src))
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration", "annotation_type_declaration":
			if err := s.collectType(unit, node, src, nil); err != nil {
				return err
			}
		}
	}

	s.logger.Debug("Parsed Java source", "path", path, "package", unit.pkg, "types", len(unit.typeDecls))
	s.units = append(s.units, unit)
	return nil
}

func packageName(node *sitter.Node, src []byte) string {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "scoped_identifier", "identifier":
			return stripSpace(child.Utf8Text(src))
		}
	}
	return ""
}

func (u *javaUnit) addImport(text string) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(strings.TrimPrefix(text, "import"), ";")
	fields := strings.Fields(text)
	if len(fields) == 0 || fields[0] == "static" {
		return
	}
	name := stripSpace(strings.Join(fields, ""))
	if pkg, ok := strings.CutSuffix(name, ".*"); ok {
		u.onDemand = append(u.onDemand, pkg)
		return
	}
	u.imports = append(u.imports, name)
}

func (s *JavaScanner) collectType(unit *javaUnit, node *sitter.Node, src []byte, outer *javaTypeDecl) error {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Utf8Text(src)

	decl := &javaTypeDecl{kind: node.Kind(), outer: outer}
	switch {
	case outer != nil:
		decl.qualified = outer.qualified + "." + name
	case unit.pkg != "":
		decl.qualified = unit.pkg + "." + name
	default:
		decl.qualified = name
	}
	if decl.kind == "enum_declaration" {
		decl.supers = append(decl.supers, "java.lang.Enum")
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "superclass":
			for j := uint(0); j < child.NamedChildCount(); j++ {
				decl.supers = append(decl.supers, child.NamedChild(j).Utf8Text(src))
			}
		case "super_interfaces", "extends_interfaces":
			decl.supers = append(decl.supers, typeList(child, src)...)
		}
	}
	unit.typeDecls = append(unit.typeDecls, decl)

	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	return s.collectMembers(unit, decl, body, src)
}

func typeList(node *sitter.Node, src []byte) []string {
	var out []string
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "type_list" {
			continue
		}
		for j := uint(0); j < child.NamedChildCount(); j++ {
			out = append(out, child.NamedChild(j).Utf8Text(src))
		}
	}
	return out
}

func (s *JavaScanner) collectMembers(unit *javaUnit, decl *javaTypeDecl, body *sitter.Node, src []byte) error {
	for i := uint(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(i)
		switch member.Kind() {
		case "field_declaration":
			if decl.kind == "interface_declaration" || decl.kind == "annotation_type_declaration" {
				continue
			}
			if err := s.collectField(unit, decl, member, src); err != nil {
				return err
			}
		case "enum_body_declarations":
			if err := s.collectMembers(unit, decl, member, src); err != nil {
				return err
			}
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration", "annotation_type_declaration":
			if err := s.collectType(unit, member, src, decl); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *JavaScanner) collectField(unit *javaUnit, decl *javaTypeDecl, node *sitter.Node, src []byte) error {
	var (
		modifiers []meta.Modifier
		marked    bool
		bind      = s.bindDefault
	)

	for i := uint(0); i < node.NamedChildCount(); i++ {
		mods := node.NamedChild(i)
		if mods.Kind() != "modifiers" {
			continue
		}
		for j := uint(0); j < mods.ChildCount(); j++ {
			mod := mods.Child(j)
			switch kind := mod.Kind(); kind {
			case "public", "protected", "private", "static", "final":
				modifiers = append(modifiers, meta.Modifier(kind))
			case "marker_annotation", "annotation":
				if !s.isMarker(mod, src) {
					continue
				}
				marked = true
				if kind == "annotation" {
					b, err := s.bindArgument(mod, src, unit.path)
					if err != nil {
						return err
					}
					bind = b
				}
			}
		}
	}
	if !marked {
		return nil
	}

	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return fmt.Errorf("%s: field without a type", position(unit.path, node))
	}
	typeSrc := typeNode.Utf8Text(src)

	for i := uint(0); i < node.NamedChildCount(); i++ {
		declarator := node.NamedChild(i)
		if declarator.Kind() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		fieldType := typeSrc
		if dims := declarator.ChildByFieldName("dimensions"); dims != nil {
			fieldType += strings.Repeat("[]", strings.Count(dims.Utf8Text(src), "["))
		}
		decl.fields = append(decl.fields, javaField{
			name:      nameNode.Utf8Text(src),
			typeSrc:   fieldType,
			modifiers: modifiers,
			bind:      bind,
			pos:       position(unit.path, nameNode),
		})
	}
	return nil
}

func (s *JavaScanner) isMarker(annotation *sitter.Node, src []byte) bool {
	name := annotation.ChildByFieldName("name")
	if name == nil {
		return false
	}
	return common.SimpleName(stripSpace(name.Utf8Text(src))) == s.annotation
}

// bindArgument evaluates the bind element of @Required(bind = ...) or the
// single-element form @Required(true).
func (s *JavaScanner) bindArgument(annotation *sitter.Node, src []byte, path string) (bool, error) {
	args := annotation.ChildByFieldName("arguments")
	if args == nil {
		return s.bindDefault, nil
	}
	for i := uint(0); i < args.NamedChildCount(); i++ {
		arg := args.NamedChild(i)
		value := arg
		if arg.Kind() == "element_value_pair" {
			key := arg.ChildByFieldName("key")
			if key == nil || key.Utf8Text(src) != "bind" {
				continue
			}
			value = arg.ChildByFieldName("value")
		}
		if value == nil {
			continue
		}
		switch value.Kind() {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "element_value_pair", "comment", "line_comment", "block_comment":
			continue
		default:
			return false, &AnnotationError{
				Pos:    position(path, value),
				Detail: fmt.Sprintf("bind must be a boolean literal, got %q", value.Utf8Text(src)),
			}
		}
	}
	return s.bindDefault, nil
}

// Declarations registers every scanned type in u and returns the annotated
// fields with their types resolved to qualified names.
func (s *JavaScanner) Declarations(u *javatype.StaticUniverse) ([]meta.Declaration, error) {
	for _, unit := range s.units {
		for _, decl := range unit.typeDecls {
			u.Declare(decl.qualified)
		}
	}

	var decls []meta.Declaration
	var errs []error
	for _, unit := range s.units {
		for _, decl := range unit.typeDecls {
			for _, sup := range decl.supers {
				t, err := javatype.Parse(sup)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: supertype of %s: %w", unit.path, decl.qualified, err))
					continue
				}
				u.Declare(decl.qualified, s.resolveName(unit, decl, t.Name, u))
			}
		}
	}

	for _, unit := range s.units {
		for _, decl := range unit.typeDecls {
			for _, f := range decl.fields {
				t, err := javatype.Parse(f.typeSrc)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", f.pos, err))
					continue
				}
				t = t.MapNames(func(name string) string { return s.resolveName(unit, decl, name, u) })
				decls = append(decls, meta.Declaration{
					Class: decl.qualified,
					Field: meta.FieldDescriptor{
						Name:      f.name,
						Type:      t,
						Modifiers: f.modifiers,
						Bind:      f.bind,
					},
					Pos: f.pos,
				})
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return decls, nil
}

// resolveName qualifies a type name as javac would see it from inside decl:
// member types, single-type imports, the unit's own package, on-demand
// imports, then java.lang.
func (s *JavaScanner) resolveName(unit *javaUnit, decl *javaTypeDecl, name string, u *javatype.StaticUniverse) string {
	if first, rest, dotted := strings.Cut(name, "."); dotted {
		if first != "" && first[0] >= 'a' && first[0] <= 'z' {
			return name
		}
		return s.resolveName(unit, decl, first, u) + "." + rest
	}

	for t := decl; t != nil; t = t.outer {
		if common.SimpleName(t.qualified) == name {
			return t.qualified
		}
		if member := t.qualified + "." + name; u.Known(member) {
			return member
		}
	}
	for _, imp := range unit.imports {
		if common.SimpleName(imp) == name {
			return imp
		}
	}
	if q, ok := u.InPackage(unit.pkg, name); ok {
		return q
	}
	for _, pkg := range unit.onDemand {
		if q, ok := u.InPackage(pkg, name); ok {
			return q
		}
	}
	if javatype.IsJavaLang(name) {
		return "java.lang." + name
	}

	s.logger.Debug("Unresolved type name, assuming same package", "name", name, "file", unit.path)
	if unit.pkg == "" {
		return name
	}
	return unit.pkg + "." + name
}

func syntaxError(path string, root *sitter.Node) *SyntaxError {
	node := firstError(root)
	if node == nil {
		node = root
	}
	pos := position(path, node)
	return &SyntaxError{File: path, Line: pos.Line, Column: pos.Column}
}

func firstError(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := firstError(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

func position(path string, node *sitter.Node) meta.Position {
	start := node.StartPosition()
	return meta.Position{File: path, Line: int(start.Row) + 1, Column: int(start.Column) + 1}
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

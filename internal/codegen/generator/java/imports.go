package java

import (
	"sort"
	"strings"

	"github.com/mhmt/navgen/internal/codegen/common"
	"github.com/mhmt/navgen/internal/codegen/emitter"
	"github.com/mhmt/navgen/internal/codegen/javatype"
)

// importSet decides, per top-level class, whether the generated file can use
// its simple name. The first class to claim a simple name wins; later ones
// are spelled fully qualified.
type importSet struct {
	pkg     string
	claimed map[string]string // simple name -> qualified top-level class
}

func newImportSet(file emitter.File) *importSet {
	s := &importSet{pkg: file.Package, claimed: map[string]string{}}
	self := file.Name
	if file.Package != "" {
		self = file.Package + "." + file.Name
	}
	s.claimed[file.Name] = self

	for _, m := range file.Methods {
		for _, p := range m.Params {
			s.claimType(p.Type)
		}
		for _, c := range m.Body {
			for _, a := range c.Args {
				if t, ok := a.(javatype.Type); ok {
					s.claimType(t)
				}
			}
		}
	}
	return s
}

func (s *importSet) claimType(t javatype.Type) {
	t.Walk(func(n javatype.Type) {
		if n.IsArray() || n.IsWildcard() || n.IsPrimitive() || n.Name == "" {
			return
		}
		top := n.TopLevel()
		simple := common.SimpleName(top)
		if _, taken := s.claimed[simple]; !taken {
			s.claimed[simple] = top
		}
	})
}

// name spells a qualified class name for use inside the generated file.
func (s *importSet) name(qualified string) string {
	t := javatype.Named(qualified)
	top := t.TopLevel()
	simple := common.SimpleName(top)
	if s.claimed[simple] != top {
		return qualified
	}
	return simple + strings.TrimPrefix(qualified, top)
}

// imports lists the import declarations the file needs, sorted.
func (s *importSet) imports() []string {
	var out []string
	for _, top := range s.claimed {
		pkg := javatype.Named(top).PackageName()
		if pkg == "" || pkg == "java.lang" || pkg == s.pkg {
			continue
		}
		out = append(out, top)
	}
	sort.Strings(out)
	return out
}

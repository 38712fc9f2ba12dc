// Package java renders an emitted Navigator as Java source.
package java

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf16"

	"github.com/mhmt/navgen/internal/codegen/emitter"
	"github.com/mhmt/navgen/internal/codegen/javatype"
)

const navigatorTemplate = `{{if .Package}}package {{.Package}};

{{end}}{{if .Imports}}{{range .Imports}}import {{.}};
{{end}}
{{end}}public final class {{.Name}} {
{{range $i, $m := .Methods}}{{if $i}}
{{end}}  {{$m.Signature}} {
{{range $m.Body}}    {{.}};
{{end}}  }
{{end}}}
`

var tmpl = template.Must(template.New("navigator").Parse(navigatorTemplate))

type methodView struct {
	Signature string
	Body      []string
}

type fileView struct {
	Package string
	Imports []string
	Name    string
	Methods []methodView
}

// Render returns the Java source of file, without the generated-code header.
func Render(file emitter.File) ([]byte, error) {
	imports := newImportSet(file)

	view := fileView{
		Package: file.Package,
		Imports: imports.imports(),
		Name:    file.Name,
	}
	for _, m := range file.Methods {
		mv, err := renderMethod(m, imports)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", m.Name, err)
		}
		view.Methods = append(view.Methods, mv)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func renderMethod(m emitter.Method, imports *importSet) (methodView, error) {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, "final "+p.Type.Format(imports.name)+" "+p.Name)
	}
	mv := methodView{
		Signature: fmt.Sprintf("public static void %s(%s)", m.Name, strings.Join(params, ", ")),
	}
	for _, c := range m.Body {
		line, err := renderCode(c, imports)
		if err != nil {
			return methodView{}, err
		}
		mv.Body = append(mv.Body, line)
	}
	return mv, nil
}

// renderCode expands the $T, $S and $L placeholders of c.
func renderCode(c emitter.Code, imports *importSet) (string, error) {
	var b strings.Builder
	next := 0
	for i := 0; i < len(c.Format); i++ {
		ch := c.Format[i]
		if ch != '$' || i+1 == len(c.Format) {
			b.WriteByte(ch)
			continue
		}
		verb := c.Format[i+1]
		if verb == '$' {
			b.WriteByte('$')
			i++
			continue
		}
		if next >= len(c.Args) {
			return "", fmt.Errorf("statement %q: missing argument for $%c", c.Format, verb)
		}
		arg := c.Args[next]
		next++
		i++

		switch verb {
		case 'T':
			t, ok := arg.(javatype.Type)
			if !ok {
				return "", fmt.Errorf("statement %q: $T expects a type, got %T", c.Format, arg)
			}
			b.WriteString(t.Format(imports.name))
		case 'S':
			b.WriteString(quote(fmt.Sprint(arg)))
		case 'L':
			b.WriteString(fmt.Sprint(arg))
		default:
			return "", fmt.Errorf("statement %q: unknown placeholder $%c", c.Format, verb)
		}
	}
	if next != len(c.Args) {
		return "", fmt.Errorf("statement %q: %d unused arguments", c.Format, len(c.Args)-next)
	}
	return b.String(), nil
}

// quote returns s as a Java string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r > 0x7e {
				if r1, r2 := utf16.EncodeRune(r); r1 != unicode.ReplacementChar {
					fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
					continue
				}
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Package emitter turns grouped navigation fields into the launcher and
// binder methods of the generated Navigator class.
package emitter

import (
	"errors"
	"log/slog"

	"github.com/mhmt/navgen/internal/codegen/javatype"
	"github.com/mhmt/navgen/internal/codegen/meta"
	"github.com/mhmt/navgen/internal/codegen/resolver"
	"github.com/mhmt/navgen/internal/log"
)

// ClassName is the name of the generated class.
const ClassName = "Navigator"

var (
	intentType  = javatype.Named("android.content.Intent")
	contextType = javatype.Named("android.content.Context")
)

// Code is one Java statement. Format uses $T for a javatype.Type argument,
// $S for a string literal and $L for verbatim text, so the renderer decides
// how type names are spelled.
type Code struct {
	Format string
	Args   []any
}

func code(format string, args ...any) Code {
	return Code{Format: format, Args: args}
}

// Param is a final method parameter.
type Param struct {
	Name string
	Type javatype.Type
}

// MethodKind distinguishes the two methods emitted per class.
type MethodKind int

const (
	Launcher MethodKind = iota
	Binder
)

// Method is a public static void method of the Navigator.
type Method struct {
	Kind   MethodKind
	Name   string
	Owner  javatype.Type
	Params []Param
	Body   []Code
}

// File is the complete generated compilation unit.
type File struct {
	Package string
	Name    string
	Methods []Method
}

// Warning is a non-fatal problem found while emitting.
type Warning struct {
	Class string
	Field string
	Err   error
}

// Result is the output of one emission run.
type Result struct {
	File     File
	Warnings []Warning
}

// Options controls emission.
type Options struct {
	Package string
	// AllowUnsupported downgrades fields with unsupported types to warnings;
	// their binder statement is left out.
	AllowUnsupported bool
}

// Emitter builds Navigator methods for owning class groups.
type Emitter struct {
	universe javatype.Universe
	opts     Options
	logger   *slog.Logger
	plans    log.PlanLogger
}

// New returns an Emitter answering capability queries with u. plans may be nil.
func New(u javatype.Universe, opts Options, logger *slog.Logger, plans log.PlanLogger) *Emitter {
	if plans == nil {
		plans = log.NewPlanLogger(nil)
	}
	return &Emitter{universe: u, opts: opts, logger: logger, plans: plans}
}

// Emit builds the Navigator for all groups. The first validation error
// aborts the run and no File is returned.
func (e *Emitter) Emit(groups []meta.OwningClassGroup) (*Result, error) {
	res := &Result{File: File{Package: e.opts.Package, Name: ClassName}}
	launchers := make(map[string]string, len(groups))

	for _, g := range groups {
		launcher, binder, warnings, err := e.EmitClass(g)
		if err != nil {
			return nil, err
		}
		if prev, ok := launchers[launcher.Name]; ok {
			return nil, &DuplicateLauncherError{Method: launcher.Name, Classes: []string{prev, g.Class.Name}}
		}
		launchers[launcher.Name] = g.Class.Name

		res.File.Methods = append(res.File.Methods, launcher, binder)
		res.Warnings = append(res.Warnings, warnings...)
	}

	e.logger.Info("Emitted navigator", "classes", len(groups), "methods", len(res.File.Methods), "warnings", len(res.Warnings))
	return res, nil
}

// EmitClass builds the launcher and binder for one class.
func (e *Emitter) EmitClass(g meta.OwningClassGroup) (launcher, binder Method, warnings []Warning, err error) {
	class := g.SimpleName()
	e.logger.Debug("Emitting navigation methods", "class", g.Class.Name, "fields", len(g.Fields))

	if err := checkNames(class, g.Fields); err != nil {
		return Method{}, Method{}, nil, err
	}

	var bindBody []Code
	for _, f := range g.Fields {
		stmts, err := e.bindStatements(class, f)
		var unsupported *UnsupportedTypeError
		if errors.As(err, &unsupported) && e.opts.AllowUnsupported {
			e.logger.Warn("Skipping binder statement for unsupported type", "class", class, "field", f.Name, "type", f.Type.String())
			warnings = append(warnings, Warning{Class: class, Field: f.Name, Err: err})
			continue
		}
		if err != nil {
			return Method{}, Method{}, nil, err
		}
		bindBody = append(bindBody, stmts...)
	}
	if len(bindBody) > 0 {
		bindBody = append([]Code{code("$T $L = $L.getIntent()", intentType, intentLocal, activityParam)}, bindBody...)
	}

	launcher = newMethod(Launcher, "start"+class, g.Class, launcherParams(g), launcherBody(g))
	binder = newMethod(Binder, "bind", g.Class, []Param{{Name: activityParam, Type: g.Class}}, bindBody)
	return launcher, binder, warnings, nil
}

func launcherParams(g meta.OwningClassGroup) []Param {
	params := make([]Param, 0, len(g.Fields)+1)
	params = append(params, Param{Name: contextParam, Type: contextType})
	for _, f := range g.Fields {
		params = append(params, Param{Name: f.Name, Type: f.Type})
	}
	return params
}

func launcherBody(g meta.OwningClassGroup) []Code {
	body := make([]Code, 0, len(g.Fields)+2)
	body = append(body, code("$T $L = new $T($L, $T.class)", intentType, intentLocal, intentType, contextParam, g.Class.Raw()))
	for _, f := range g.Fields {
		body = append(body, code("$L.putExtra($S, $L)", intentLocal, f.Name, f.Name))
	}
	return append(body, code("$L.startActivity($L)", contextParam, intentLocal))
}

// bindStatements returns the binder statements for f: none when the field is
// not bound, otherwise exactly one assignment.
func (e *Emitter) bindStatements(class string, f meta.FieldDescriptor) ([]Code, error) {
	if !f.Bind {
		return nil, nil
	}
	if err := Validate(class, f); err != nil {
		return nil, err
	}

	d := javatype.Classify(f.Type, e.universe)
	plan, err := resolver.Resolve(d)
	if err != nil {
		return nil, &UnsupportedTypeError{Class: class, Field: f.Name, Err: err}
	}

	stmt := assignment(f.Name, plan)
	e.plans.Log(class, f.Name, d.Category.String(), plan.Accessor())
	return []Code{stmt}, nil
}

func assignment(field string, plan resolver.Plan) Code {
	switch {
	case plan.NeedsCast:
		return code("$L.$L = ($T) $L.$L($S)", activityParam, field, plan.CastTo, intentLocal, plan.Accessor(), field)
	case plan.Default != "":
		return code("$L.$L = $L.$L($S, $L)", activityParam, field, intentLocal, plan.Accessor(), field, plan.Default)
	default:
		return code("$L.$L = $L.$L($S)", activityParam, field, intentLocal, plan.Accessor(), field)
	}
}

func newMethod(kind MethodKind, name string, owner javatype.Type, params []Param, body []Code) Method {
	return Method{
		Kind:   kind,
		Name:   name,
		Owner:  owner,
		Params: append([]Param(nil), params...),
		Body:   append([]Code(nil), body...),
	}
}

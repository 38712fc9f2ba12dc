package emitter

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhmt/navgen/internal/codegen/javatype"
	"github.com/mhmt/navgen/internal/codegen/meta"
	"github.com/mhmt/navgen/internal/log"
)

type recordedPlan struct {
	class, field, category, accessor string
}

type planRecorder struct {
	plans []recordedPlan
}

func (r *planRecorder) Log(class, field, category, accessor string) {
	r.plans = append(r.plans, recordedPlan{class, field, category, accessor})
}

var _ log.PlanLogger = (*planRecorder)(nil)

// flatten spells a statement with qualified type names.
func flatten(c Code) string {
	var b strings.Builder
	next := 0
	for i := 0; i < len(c.Format); i++ {
		if c.Format[i] != '$' || i+1 == len(c.Format) {
			b.WriteByte(c.Format[i])
			continue
		}
		i++
		arg := c.Args[next]
		next++
		switch c.Format[i] {
		case 'T':
			b.WriteString(arg.(javatype.Type).String())
		case 'S':
			b.WriteString(strconv.Quote(fmt.Sprint(arg)))
		default:
			b.WriteString(fmt.Sprint(arg))
		}
	}
	return b.String()
}

func body(m Method) []string {
	out := make([]string, 0, len(m.Body))
	for _, c := range m.Body {
		out = append(out, flatten(c))
	}
	return out
}

func field(name, typ string, bind bool, mods ...meta.Modifier) meta.FieldDescriptor {
	if len(mods) == 0 {
		mods = []meta.Modifier{meta.ModPublic}
	}
	return meta.FieldDescriptor{Name: name, Type: javatype.MustParse(typ), Modifiers: mods, Bind: bind}
}

func group(class string, fields ...meta.FieldDescriptor) meta.OwningClassGroup {
	return meta.OwningClassGroup{Class: javatype.Named(class), Fields: fields}
}

func newEmitter(u javatype.Universe, opts Options) (*Emitter, *planRecorder) {
	rec := &planRecorder{}
	if u == nil {
		u = javatype.NewUniverse()
	}
	return New(u, opts, log.Discard(), rec), rec
}

func TestEmitLauncherAndBinder(t *testing.T) {
	em, rec := newEmitter(nil, Options{Package: "com.example.nav"})
	g := group("com.example.ProfileActivity",
		field("age", "int", true),
		field("name", "java.lang.String", true),
	)

	res, err := em.Emit([]meta.OwningClassGroup{g})
	require.NoError(t, err)
	require.Len(t, res.File.Methods, 2, spew.Sdump(res.File.Methods))

	launcher, binder := res.File.Methods[0], res.File.Methods[1]

	assert.Equal(t, Launcher, launcher.Kind)
	assert.Equal(t, "startProfileActivity", launcher.Name)
	require.Len(t, launcher.Params, 3)
	assert.Equal(t, "context", launcher.Params[0].Name)
	assert.Equal(t, "android.content.Context", launcher.Params[0].Type.String())
	assert.Equal(t, "age", launcher.Params[1].Name)
	assert.Equal(t, "name", launcher.Params[2].Name)
	assert.Equal(t, []string{
		`android.content.Intent intent = new android.content.Intent(context, com.example.ProfileActivity.class)`,
		`intent.putExtra("age", age)`,
		`intent.putExtra("name", name)`,
		`context.startActivity(intent)`,
	}, body(launcher), spew.Sdump(launcher))

	assert.Equal(t, Binder, binder.Kind)
	assert.Equal(t, "bind", binder.Name)
	require.Len(t, binder.Params, 1)
	assert.Equal(t, "activity", binder.Params[0].Name)
	assert.Equal(t, "com.example.ProfileActivity", binder.Params[0].Type.String())
	assert.Equal(t, []string{
		`android.content.Intent intent = activity.getIntent()`,
		`activity.age = intent.getIntExtra("age", -1)`,
		`activity.name = intent.getStringExtra("name")`,
	}, body(binder), spew.Sdump(binder))

	assert.Equal(t, []recordedPlan{
		{"ProfileActivity", "age", "numeric", "getIntExtra"},
		{"ProfileActivity", "name", "string-like", "getStringExtra"},
	}, rec.plans)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "com.example.nav", res.File.Package)
	assert.Equal(t, ClassName, res.File.Name)
}

func TestEmitBinderStatements(t *testing.T) {
	type testCase struct {
		name string
		f    meta.FieldDescriptor
		want string
	}

	u := javatype.NewUniverse()
	u.Declare("com.example.User", javatype.Parcelable)
	u.Declare("com.example.Session", javatype.Serializable)

	cases := []testCase{
		{name: "byte", f: field("b", "byte", true), want: `activity.b = intent.getByteExtra("b", (byte) -1)`},
		{name: "boxed long", f: field("l", "java.lang.Long", true), want: `activity.l = intent.getLongExtra("l", -1)`},
		{name: "char", f: field("c", "char", true), want: `activity.c = intent.getCharExtra("c", 'm')`},
		{name: "boolean", f: field("ok", "boolean", true), want: `activity.ok = intent.getBooleanExtra("ok", false)`},
		{name: "parcelable", f: field("user", "com.example.User", true), want: `activity.user = intent.getParcelableExtra("user")`},
		{name: "parcelable array", f: field("users", "com.example.User[]", true), want: `activity.users = (com.example.User[]) intent.getParcelableArrayExtra("users")`},
		{name: "int array", f: field("ids", "int[]", true), want: `activity.ids = intent.getIntArrayExtra("ids")`},
		{name: "serializable", f: field("s", "com.example.Session", true), want: `activity.s = (com.example.Session) intent.getSerializableExtra("s")`},
		{name: "bundle", f: field("extras", "android.os.Bundle", true), want: `activity.extras = intent.getBundleExtra("extras")`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			em, _ := newEmitter(u, Options{})
			_, binder, _, err := em.EmitClass(group("com.example.A", tc.f))
			require.NoError(t, err)
			got := body(binder)
			require.Len(t, got, 2, spew.Sdump(binder))
			assert.Equal(t, tc.want, got[1])
		})
	}
}

func TestEmitUnboundFields(t *testing.T) {
	em, rec := newEmitter(nil, Options{})
	g := group("com.example.A",
		field("count", "int", false, meta.ModPrivate, meta.ModFinal),
		field("label", "java.lang.Object", false),
	)

	launcher, binder, warnings, err := em.EmitClass(g)
	require.NoError(t, err, "unbound fields are neither validated nor classified")
	assert.Len(t, launcher.Params, 3)
	assert.Empty(t, binder.Body, "no intent local without bind statements")
	assert.Empty(t, warnings)
	assert.Empty(t, rec.plans)
}

func TestEmitValidationErrors(t *testing.T) {
	type testCase struct {
		name  string
		field meta.FieldDescriptor
		check func(t *testing.T, err error)
	}

	cases := []testCase{
		{
			name:  "non-public bound field",
			field: field("name", "java.lang.String", true, meta.ModPrivate),
			check: func(t *testing.T, err error) {
				var modErr *IncompatibleModifierError
				require.ErrorAs(t, err, &modErr)
				assert.Equal(t, "X", modErr.Class)
				assert.Equal(t, "name", modErr.Field)
				assert.True(t, modErr.Missing)
				assert.Equal(t, meta.ModPublic, modErr.Modifier)
			},
		},
		{
			name:  "final bound field",
			field: field("name", "java.lang.String", true, meta.ModPublic, meta.ModFinal),
			check: func(t *testing.T, err error) {
				var modErr *IncompatibleModifierError
				require.ErrorAs(t, err, &modErr)
				assert.False(t, modErr.Missing)
				assert.Equal(t, meta.ModFinal, modErr.Modifier)
			},
		},
		{
			name:  "unsupported type",
			field: field("o", "java.lang.Object", true),
			check: func(t *testing.T, err error) {
				var typeErr *UnsupportedTypeError
				require.ErrorAs(t, err, &typeErr)
				assert.Equal(t, "o", typeErr.Field)
				assert.ErrorContains(t, err, "java.lang.Object")
			},
		},
		{
			name:  "reserved name",
			field: field("intent", "int", false),
			check: func(t *testing.T, err error) {
				var fieldErr *InvalidFieldError
				require.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, "intent", fieldErr.Field)
			},
		},
		{
			name:  "keyword name",
			field: field("class", "int", false),
			check: func(t *testing.T, err error) {
				var fieldErr *InvalidFieldError
				require.ErrorAs(t, err, &fieldErr)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			em, _ := newEmitter(nil, Options{})
			res, err := em.Emit([]meta.OwningClassGroup{
				group("com.example.Fine", field("ok", "int", true)),
				group("com.example.X", tc.field),
			})
			assert.Nil(t, res, "no partial output")
			tc.check(t, err)
		})
	}
}

func TestEmitAllowUnsupported(t *testing.T) {
	em, _ := newEmitter(nil, Options{AllowUnsupported: true})
	res, err := em.Emit([]meta.OwningClassGroup{
		group("com.example.A", field("o", "java.lang.Object", true), field("n", "int", true)),
	})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "o", res.Warnings[0].Field)

	binder := res.File.Methods[1]
	assert.Equal(t, []string{
		`android.content.Intent intent = activity.getIntent()`,
		`activity.n = intent.getIntExtra("n", -1)`,
	}, body(binder))
	assert.Len(t, res.File.Methods[0].Params, 3, "launcher still takes every field")
}

func TestEmitDuplicateField(t *testing.T) {
	em, _ := newEmitter(nil, Options{})
	_, _, _, err := em.EmitClass(group("com.example.A", field("n", "int", true), field("n", "long", true)))
	var fieldErr *InvalidFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Contains(t, fieldErr.Reason, "more than once")
}

func TestEmitDuplicateLauncher(t *testing.T) {
	em, _ := newEmitter(nil, Options{})
	_, err := em.Emit([]meta.OwningClassGroup{
		group("com.example.a.Main", field("n", "int", false)),
		group("com.example.b.Main", field("n", "int", false)),
	})
	var dupErr *DuplicateLauncherError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "startMain", dupErr.Method)
	assert.Equal(t, []string{"com.example.a.Main", "com.example.b.Main"}, dupErr.Classes)
}

func TestEmitPreservesOrder(t *testing.T) {
	em, _ := newEmitter(nil, Options{})
	groups := []meta.OwningClassGroup{
		group("com.example.Zeta", field("b", "int", true), field("a", "int", true)),
		group("com.example.Alpha", field("x", "boolean", true)),
	}

	res, err := em.Emit(groups)
	require.NoError(t, err)

	var names []string
	for _, m := range res.File.Methods {
		names = append(names, m.Name+"("+m.Owner.SimpleName()+")")
	}
	assert.Equal(t, []string{"startZeta(Zeta)", "bind(Zeta)", "startAlpha(Alpha)", "bind(Alpha)"}, names)

	zetaBinder := body(res.File.Methods[1])
	assert.Equal(t, `activity.b = intent.getIntExtra("b", -1)`, zetaBinder[1])
	assert.Equal(t, `activity.a = intent.getIntExtra("a", -1)`, zetaBinder[2])

	again, err := em.Emit(groups)
	require.NoError(t, err)
	assert.Equal(t, res, again, "emission is deterministic")
}

func TestEmitEmpty(t *testing.T) {
	em, _ := newEmitter(nil, Options{Package: "p"})
	res, err := em.Emit(nil)
	require.NoError(t, err)
	assert.Empty(t, res.File.Methods)
}

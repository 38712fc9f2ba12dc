package javatype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	type testCase struct {
		in   string
		want string
	}

	cases := []testCase{
		{in: "int", want: "int"},
		{in: "int[]", want: "int[]"},
		{in: "int [ ] [ ]", want: "int[][]"},
		{in: "java.lang.String", want: "java.lang.String"},
		{in: "List<String>", want: "List<String>"},
		{in: "Map<String, List<Integer>>", want: "Map<String, List<Integer>>"},
		{in: "List<? extends Foo>", want: "List<? extends Foo>"},
		{in: "Comparator<? super T>", want: "Comparator<? super T>"},
		{in: "Class<?>", want: "Class<?>"},
		{in: "@NonNull String", want: "String"},
		{in: "java.util.@Nullable List<String>[]", want: "java.util.List<String>[]"},
		{in: "com.example.Größe", want: "com.example.Größe"},
		{in: "List<Größe>[]", want: "List<Größe>[]"},
		{in: "Map<Ключ, Значение>", want: "Map<Ключ, Значение>"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "List<", "int[", "Map<String,>", "Foo Bar", "a..b"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.Error(t, err)
		})
	}
}

func TestTypeNames(t *testing.T) {
	type testCase struct {
		in       string
		simple   string
		pkg      string
		topLevel string
	}

	cases := []testCase{
		{in: "java.lang.String", simple: "String", pkg: "java.lang", topLevel: "java.lang.String"},
		{in: "com.example.Outer.Inner", simple: "Inner", pkg: "com.example", topLevel: "com.example.Outer"},
		{in: "com.example.User[][]", simple: "User[][]", pkg: "com.example", topLevel: "com.example.User"},
		{in: "Local", simple: "Local", pkg: "", topLevel: "Local"},
		{in: "com.example.Größe", simple: "Größe", pkg: "com.example", topLevel: "com.example.Größe"},
		{in: "com.éclair.Ville", simple: "Ville", pkg: "com.éclair", topLevel: "com.éclair.Ville"},
		{in: "int", simple: "int", pkg: "", topLevel: "int"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			typ := MustParse(tc.in)
			assert.Equal(t, tc.simple, typ.SimpleName())
			assert.Equal(t, tc.pkg, typ.PackageName())
			assert.Equal(t, tc.topLevel, typ.TopLevel())
		})
	}
}

func TestRawAndInnermost(t *testing.T) {
	typ := MustParse("java.util.List<java.lang.String>[][]")
	assert.Equal(t, "java.util.List[][]", typ.Raw().String())
	assert.Equal(t, "java.util.List<java.lang.String>", typ.Innermost().String())
	assert.True(t, typ.IsArray())
	assert.False(t, typ.Innermost().IsArray())
}

func TestMapNamesLeavesPrimitivesAndWildcards(t *testing.T) {
	typ := MustParse("Map<String, ? extends Foo>[]")
	mapped := typ.MapNames(func(name string) string { return "x." + name })
	assert.Equal(t, "x.Map<x.String, ? extends x.Foo>[]", mapped.String())

	prim := MustParse("long[]").MapNames(func(name string) string { return "x." + name })
	assert.Equal(t, "long[]", prim.String())
	assert.Equal(t, "Map<String, ? extends Foo>[]", typ.String(), "original is not modified")
}

func TestFormatQualifies(t *testing.T) {
	typ := MustParse("java.util.ArrayList<com.example.User>")
	short := typ.Format(func(name string) string {
		if name == "java.util.ArrayList" {
			return "ArrayList"
		}
		return name
	})
	assert.Equal(t, "ArrayList<com.example.User>", short)
}

func TestWalkVisitsNestedTypes(t *testing.T) {
	var names []string
	MustParse("Map<String, List<? super Foo>>[]").Walk(func(n Type) {
		if n.Name != "" {
			names = append(names, n.Name)
		}
	})
	assert.Equal(t, []string{"Map", "String", "List", "?", "Foo"}, names)
}

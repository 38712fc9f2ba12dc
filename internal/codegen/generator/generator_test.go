package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhmt/navgen/internal/codegen/common"
	"github.com/mhmt/navgen/internal/codegen/emitter"
	"github.com/mhmt/navgen/internal/log"
)

const profileManifest = `package: com.example.nav
types:
  - name: com.example.User
    supertypes: [android.os.Parcelable]
classes:
  - name: com.example.ProfileActivity
    fields:
      - {name: age, type: int, modifiers: [public], bind: true}
      - {name: name, type: java.lang.String, modifiers: [public], bind: true}
      - {name: user, type: com.example.User, modifiers: [public], bind: true}
`

const detailSource = `package com.example.ui;

import com.example.User;

public class DetailActivity extends android.app.Activity {
    @Required(bind = true)
    public User owner;

    @Required
    public long id;
}
`

type fixture struct {
	dir      string
	manifest string
	src      string
	out      string
}

func newFixture(t *testing.T, manifest string) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:      dir,
		manifest: filepath.Join(dir, "nav.yaml"),
		src:      filepath.Join(dir, "src"),
		out:      filepath.Join(dir, "out"),
	}
	require.NoError(t, os.WriteFile(f.manifest, []byte(manifest), 0o644))
	pkgDir := filepath.Join(f.src, "com", "example", "ui")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "DetailActivity.java"), []byte(detailSource), 0o644))
	return f
}

func (f fixture) generator(opts Options) *Generator {
	opts.OutputDir = f.out
	return New(opts, log.Discard(), nil)
}

func TestGenerateFromManifestAndSources(t *testing.T) {
	f := newFixture(t, profileManifest)
	gen := f.generator(Options{Manifests: []string{f.manifest}, Sources: []string{f.src}})

	path, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.out, "com", "example", "nav", "Navigator.java"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	src := string(content)

	intact, err := common.Intact(content)
	require.NoError(t, err)
	assert.True(t, intact)

	assert.Contains(t, src, "package com.example.nav;\n")
	assert.Contains(t, src, "activity.age = intent.getIntExtra(\"age\", -1);")
	assert.Contains(t, src, "activity.name = intent.getStringExtra(\"name\");")
	assert.Contains(t, src, "activity.user = intent.getParcelableExtra(\"user\");")
	assert.Contains(t, src, "public static void startDetailActivity(final Context context, final User owner, final long id)")
	assert.Contains(t, src, "activity.owner = intent.getParcelableExtra(\"owner\");")
	assert.NotContains(t, src, "getLongExtra", "id is not bound by default")

	assert.Less(t, strings.Index(src, "startDetailActivity"), strings.Index(src, "startProfileActivity"),
		"source declarations come before manifest declarations")
}

func TestGenerateIsIdempotent(t *testing.T) {
	f := newFixture(t, profileManifest)
	gen := f.generator(Options{Manifests: []string{f.manifest}})

	path, err := gen.Generate()
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)

	_, err = gen.Generate()
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	again, err := os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, info.ModTime(), again.ModTime(), "unchanged output is not rewritten")
}

func TestGenerateFailureWritesNothing(t *testing.T) {
	manifest := strings.Replace(profileManifest, "{name: name, type: java.lang.String, modifiers: [public]", "{name: name, type: java.lang.String, modifiers: [private]", 1)
	f := newFixture(t, manifest)
	gen := f.generator(Options{Manifests: []string{f.manifest}})

	_, err := gen.Generate()
	var modErr *emitter.IncompatibleModifierError
	require.ErrorAs(t, err, &modErr)
	assert.Equal(t, "ProfileActivity", modErr.Class)
	assert.Equal(t, "name", modErr.Field)

	_, statErr := os.Stat(f.out)
	assert.True(t, os.IsNotExist(statErr), "no output directory after a failed run")
}

func TestGenerateNothingToScan(t *testing.T) {
	gen := New(Options{OutputDir: t.TempDir()}, log.Discard(), nil)
	_, err := gen.Generate()
	assert.ErrorContains(t, err, "nothing to scan")
}

func TestPackageSelection(t *testing.T) {
	f := newFixture(t, profileManifest)

	md, err := f.generator(Options{Manifests: []string{f.manifest}}).ScanAll()
	require.NoError(t, err)

	assert.Equal(t, "com.example.nav", f.generator(Options{}).Package(md))
	assert.Equal(t, "org.override", f.generator(Options{Package: "org.override"}).Package(md))

	md.Package = ""
	assert.Equal(t, DefaultPackage, f.generator(Options{}).Package(md))
}

func TestCheck(t *testing.T) {
	f := newFixture(t, profileManifest)
	gen := f.generator(Options{Manifests: []string{f.manifest}})

	status, _, err := gen.Check()
	require.NoError(t, err)
	assert.Equal(t, StatusMissing, status)

	path, err := gen.Generate()
	require.NoError(t, err)

	status, checked, err := gen.Check()
	require.NoError(t, err)
	assert.Equal(t, StatusUpToDate, status)
	assert.Equal(t, path, checked)

	// inputs change: a new bound field
	grown := profileManifest + "      - {name: score, type: double, modifiers: [public], bind: true}\n"
	require.NoError(t, os.WriteFile(f.manifest, []byte(grown), 0o644))
	status, _, err = gen.Check()
	require.NoError(t, err)
	assert.Equal(t, StatusStale, status)

	// hand edit of the generated file
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := bytes.Replace(content, []byte("-1"), []byte("0"), 1)
	require.NoError(t, os.WriteFile(path, edited, 0o644))
	status, _, err = gen.Check()
	require.NoError(t, err)
	assert.Equal(t, StatusModified, status)
	assert.Equal(t, "modified", status.String())
}

func TestReport(t *testing.T) {
	f := newFixture(t, profileManifest)
	gen := f.generator(Options{Manifests: []string{f.manifest}})
	md, err := gen.ScanAll()
	require.NoError(t, err)

	r := gen.Report(md)
	require.Len(t, r.Classes, 1)
	assert.Equal(t, "startProfileActivity", r.Classes[0].Launcher)
	require.Len(t, r.Classes[0].Fields, 3)
	assert.Equal(t, FieldReport{
		Name:      "age",
		Type:      "int",
		Modifiers: []string{"public"},
		Bind:      true,
		Category:  "numeric",
		Accessor:  "getIntExtra",
		Position:  f.manifest,
	}, r.Classes[0].Fields[0])
	assert.Equal(t, "parcelable", r.Classes[0].Fields[2].Category)

	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteReport(&buf, r, format))
			assert.Contains(t, buf.String(), "getParcelableExtra")
			assert.Contains(t, buf.String(), "com.example.ProfileActivity")
		})
	}

	assert.Error(t, WriteReport(&bytes.Buffer{}, r, "xml"))
}

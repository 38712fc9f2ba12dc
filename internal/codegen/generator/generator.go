package generator

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mhmt/navgen/internal/codegen/common"
	"github.com/mhmt/navgen/internal/codegen/emitter"
	"github.com/mhmt/navgen/internal/codegen/generator/java"
	"github.com/mhmt/navgen/internal/codegen/javatype"
	"github.com/mhmt/navgen/internal/codegen/meta"
	"github.com/mhmt/navgen/internal/codegen/scanner"
	"github.com/mhmt/navgen/internal/log"
)

// DefaultPackage is the package of the generated Navigator when neither a
// flag nor a manifest chooses one.
const DefaultPackage = "com.mhmt.navigationprocessor.generated"

// Options configures one generation run.
type Options struct {
	Sources          []string // Java source roots
	Manifests        []string // declaration manifests
	OutputDir        string
	Package          string
	Annotation       string
	BindDefault      bool
	AllowUnsupported bool
}

type Generator struct {
	opts   Options
	logger *slog.Logger
	plans  log.PlanLogger
}

// Output is a rendered, stamped Navigator ready to be written.
type Output struct {
	Path     string
	Content  []byte
	Body     []byte
	Warnings []emitter.Warning
}

// Status describes the generated file on disk relative to fresh output.
type Status int

const (
	StatusUpToDate Status = iota
	StatusMissing
	StatusStale    // inputs changed since the file was generated
	StatusModified // the file was edited after generation
)

func (s Status) String() string {
	switch s {
	case StatusUpToDate:
		return "up to date"
	case StatusMissing:
		return "missing"
	case StatusStale:
		return "stale"
	case StatusModified:
		return "modified"
	default:
		return "unknown"
	}
}

func New(opts Options, logger *slog.Logger, plans log.PlanLogger) *Generator {
	if opts.Annotation == "" {
		opts.Annotation = scanner.DefaultAnnotation
	}
	return &Generator{
		opts:   opts,
		logger: logger,
		plans:  plans,
	}
}

// ScanAll collects declarations from every configured source root and manifest.
func (g *Generator) ScanAll() (*meta.Metadata, error) {
	if len(g.opts.Sources) == 0 && len(g.opts.Manifests) == 0 {
		return nil, errors.New("nothing to scan: pass --src and/or --manifest")
	}

	g.logger.Info("Scanning for navigation fields", "annotation", g.opts.Annotation)

	md := &meta.Metadata{Universe: javatype.NewUniverse()}

	if len(g.opts.Sources) > 0 {
		js, err := scanner.NewJavaScanner(g.opts.Annotation, g.opts.BindDefault, g.logger)
		if err != nil {
			return nil, err
		}
		defer js.Close()

		for _, root := range g.opts.Sources {
			g.logger.Debug("Scanning source root", "path", root)
			if err := js.AddDir(root); err != nil {
				return nil, fmt.Errorf("failed to scan %s: %w", root, err)
			}
		}
		decls, err := js.Declarations(md.Universe)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve declarations: %w", err)
		}
		md.Declarations = append(md.Declarations, decls...)
		g.logger.Info("Scanned Java sources", "roots", len(g.opts.Sources), "files", js.Files(), "fields", len(decls))
	}

	for _, path := range g.opts.Manifests {
		g.logger.Debug("Loading manifest", "path", path)
		m, err := scanner.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		decls, err := m.Apply(md.Universe, g.opts.BindDefault)
		if err != nil {
			return nil, fmt.Errorf("failed to apply manifest %s: %w", path, err)
		}
		if m.Package != "" && md.Package == "" {
			md.Package = m.Package
		}
		md.Declarations = append(md.Declarations, decls...)
		g.logger.Info("Loaded manifest", "path", path, "fields", len(decls))
	}

	return md, nil
}

// Package resolves the package of the generated class.
func (g *Generator) Package(md *meta.Metadata) string {
	switch {
	case g.opts.Package != "":
		return g.opts.Package
	case md != nil && md.Package != "":
		return md.Package
	default:
		return DefaultPackage
	}
}

// Build emits and renders the Navigator for md.
func (g *Generator) Build(md *meta.Metadata) (*Output, error) {
	pkg := g.Package(md)
	groups := md.Groups()
	g.logger.Info("Grouped navigation fields", "classes", len(groups), "fields", len(md.Declarations))

	em := emitter.New(md.Universe, emitter.Options{
		Package:          pkg,
		AllowUnsupported: g.opts.AllowUnsupported,
	}, g.logger, g.plans)

	res, err := em.Emit(groups)
	if err != nil {
		return nil, err
	}

	body, err := java.Render(res.File)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", res.File.Name, err)
	}
	content, err := common.Stamp(body)
	if err != nil {
		return nil, err
	}

	return &Output{
		Path:     g.OutputPath(pkg),
		Content:  content,
		Body:     body,
		Warnings: res.Warnings,
	}, nil
}

// OutputPath is where the Navigator for pkg is written.
func (g *Generator) OutputPath(pkg string) string {
	return filepath.Join(g.opts.OutputDir, filepath.FromSlash(common.PackagePath(pkg)), emitter.ClassName+".java")
}

// Generate scans, emits and writes the Navigator, returning the file path.
func (g *Generator) Generate() (string, error) {
	md, err := g.ScanAll()
	if err != nil {
		return "", err
	}
	out, err := g.Build(md)
	if err != nil {
		return "", err
	}

	written, err := WriteFile(out.Path, out.Content)
	if err != nil {
		g.logger.Error("Failed to write navigator", "path", out.Path, "error", err)
		return "", err
	}
	if written {
		g.logger.Info("Navigator generation complete", "output", out.Path, "bytes", len(out.Content))
	} else {
		g.logger.Info("Navigator unchanged", "output", out.Path)
	}
	return out.Path, nil
}

// Check regenerates the Navigator in memory and compares it with the file on disk.
func (g *Generator) Check() (Status, string, error) {
	md, err := g.ScanAll()
	if err != nil {
		return StatusMissing, "", err
	}
	out, err := g.Build(md)
	if err != nil {
		return StatusMissing, "", err
	}

	existing, err := os.ReadFile(out.Path)
	if errors.Is(err, os.ErrNotExist) {
		return StatusMissing, out.Path, nil
	}
	if err != nil {
		return StatusMissing, out.Path, fmt.Errorf("read %s: %w", out.Path, err)
	}

	intact, err := common.Intact(existing)
	if err != nil || !intact {
		return StatusModified, out.Path, nil
	}
	_, body, _ := common.SplitStamped(existing)
	if !bytes.Equal(body, out.Body) {
		return StatusStale, out.Path, nil
	}
	return StatusUpToDate, out.Path, nil
}

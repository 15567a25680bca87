package cli

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/seitarof/gen-deref/internal/generator"
	"github.com/seitarof/gen-deref/internal/parser"
	"github.com/seitarof/gen-deref/internal/selector"
)

// Runner orchestrates parser/selector/generator layers.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	parser    parser.Parser
	selector  selector.Selector
	generator generator.Generator
}

// NewRunner creates a default runner implementation.
func NewRunner(p parser.Parser, s selector.Selector, g generator.Generator) Runner {
	return &runnerImpl{
		parser:    p,
		selector:  s,
		generator: g,
	}
}

// Run executes a single generation cycle.
func (r *runnerImpl) Run(cfg *Config) error {
	pkg, err := r.parser.Parse(cfg.PkgPath)
	if err != nil {
		return fmt.Errorf("parse package: %w", err)
	}

	structs, err := pickStructs(pkg, cfg.Types)
	if err != nil {
		return err
	}
	if len(structs) == 0 {
		return fmt.Errorf("no structs to process in package %q (missing //gen-deref:derive or --type)", pkg.Path)
	}

	targets := make([]selector.Target, 0, len(structs))
	for _, st := range structs {
		target, err := r.selector.Select(st)
		if err != nil {
			return err
		}
		targets = append(targets, target)
	}

	return r.generator.Generate(outputPath(resolveOutput(cfg.Filename, pkg.Dir)), pkg, targets)
}

// pickStructs selects explicitly named structs, or falls back to every
// struct carrying the derive directive.
func pickStructs(pkg *parser.PackageInfo, names []string) ([]*parser.StructInfo, error) {
	if len(names) == 0 {
		derived := make([]*parser.StructInfo, 0, len(pkg.Structs))
		for _, st := range pkg.Structs {
			if st.HasDirective {
				derived = append(derived, st)
			}
		}
		return derived, nil
	}

	byName := make(map[string]*parser.StructInfo, len(pkg.Structs))
	for _, st := range pkg.Structs {
		byName[st.Name] = st
	}

	picked := make([]*parser.StructInfo, 0, len(names))
	for _, name := range names {
		st, ok := byName[name]
		if !ok {
			if slices.Contains(pkg.OtherTypes, name) {
				return nil, fmt.Errorf("type %q in package %q is not a struct type", name, pkg.Path)
			}
			return nil, fmt.Errorf("struct type %q not found in package %q", name, pkg.Path)
		}
		picked = append(picked, st)
	}
	return picked, nil
}

func resolveOutput(filename, pkgDir string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(pkgDir, filename)
}

type outputPath string

// OutputFilename returns destination file path for generator layer.
func (o outputPath) OutputFilename() string {
	return string(o)
}

package parser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// deriveDirective marks a struct type for generation.
const deriveDirective = "//gen-deref:derive"

// Parser extracts struct metadata from Go packages.
type Parser interface {
	Parse(pkgPattern string) (*PackageInfo, error)
}

type parserImpl struct{}

// New returns default parser.
func New() Parser {
	return &parserImpl{}
}

func (p *parserImpl) Parse(pkgPattern string) (*PackageInfo, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, pkgPattern)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pkgPattern, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("package %q has compilation errors", pkgPattern)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pkgPattern)
	}
	pkg := pkgs[0]

	if pkg.Types == nil || pkg.TypesInfo == nil {
		return nil, fmt.Errorf("type info unavailable for package %q", pkgPattern)
	}

	info := &PackageInfo{
		Name: pkg.Name,
		Path: pkg.Types.Path(),
		Dir:  packageDir(pkg),
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				st, err := p.collectStruct(pkg, genDecl, typeSpec)
				if err != nil {
					return nil, err
				}
				if st != nil {
					info.Structs = append(info.Structs, st)
				} else {
					info.OtherTypes = append(info.OtherTypes, typeSpec.Name.Name)
				}
			}
		}
	}

	return info, nil
}

func (p *parserImpl) collectStruct(
	pkg *packages.Package,
	genDecl *ast.GenDecl,
	typeSpec *ast.TypeSpec,
) (*StructInfo, error) {
	structType, ok := typeSpec.Type.(*ast.StructType)
	if !ok {
		return nil, nil
	}

	st := &StructInfo{
		Name:         typeSpec.Name.Name,
		Pos:          position(pkg.Fset, typeSpec.Pos()),
		TypeParams:   typeParamNames(typeSpec),
		HasDirective: hasDirective(genDecl.Doc) || hasDirective(typeSpec.Doc),
	}

	for _, field := range structType.Fields.List {
		tag := derefTag{}
		if field.Tag != nil {
			raw, err := strconv.Unquote(field.Tag.Value)
			if err != nil {
				return nil, fmt.Errorf(
					"%s: struct %q: %w: %s",
					position(pkg.Fset, field.Tag.Pos()), st.Name, ErrBadTag, field.Tag.Value,
				)
			}
			tag, err = parseDerefTag(raw)
			if err != nil {
				return nil, fmt.Errorf(
					"%s: struct %q: %w",
					position(pkg.Fset, field.Tag.Pos()), st.Name, err,
				)
			}
		}

		typeStr, imports, err := renderFieldType(pkg, field.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: struct %q: %w", position(pkg.Fset, field.Pos()), st.Name, err)
		}

		if len(field.Names) == 0 {
			// Embedded field; addressable under its type name.
			st.Fields = append(st.Fields, FieldInfo{
				Name:     embeddedFieldName(field.Type),
				TypeStr:  typeStr,
				Imports:  imports,
				Pos:      position(pkg.Fset, field.Pos()),
				Embedded: true,
				Marked:   tag.Marked,
				Mutable:  tag.Mutable,
			})
			continue
		}

		for _, name := range field.Names {
			if name.Name == "_" {
				continue
			}
			st.Fields = append(st.Fields, FieldInfo{
				Name:    name.Name,
				TypeStr: typeStr,
				Imports: imports,
				Pos:     position(pkg.Fset, name.Pos()),
				Marked:  tag.Marked,
				Mutable: tag.Mutable,
			})
		}
	}

	return st, nil
}

func renderFieldType(pkg *packages.Package, expr ast.Expr) (string, []string, error) {
	t := pkg.TypesInfo.TypeOf(expr)
	if t == nil {
		return "", nil, fmt.Errorf("type info unavailable for field type")
	}

	importsSet := map[string]struct{}{}
	qualifier := func(p *types.Package) string {
		if p == nil || p.Path() == pkg.Types.Path() {
			return ""
		}
		importsSet[p.Path()] = struct{}{}
		return p.Name()
	}
	typeStr := types.TypeString(t, qualifier)

	importsList := make([]string, 0, len(importsSet))
	for path := range importsSet {
		importsList = append(importsList, path)
	}
	sort.Strings(importsList)
	return typeStr, importsList, nil
}

func embeddedFieldName(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.Ident:
		return v.Name
	case *ast.StarExpr:
		return embeddedFieldName(v.X)
	case *ast.SelectorExpr:
		return v.Sel.Name
	case *ast.IndexExpr:
		return embeddedFieldName(v.X)
	case *ast.IndexListExpr:
		return embeddedFieldName(v.X)
	default:
		return ""
	}
}

func typeParamNames(typeSpec *ast.TypeSpec) []string {
	if typeSpec.TypeParams == nil {
		return nil
	}
	var names []string
	for _, param := range typeSpec.TypeParams.List {
		for _, name := range param.Names {
			names = append(names, name.Name)
		}
	}
	return names
}

// hasDirective scans the raw comment list; CommentGroup.Text strips
// directive-style comments, so the lines are checked directly.
func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if c.Text == deriveDirective {
			return true
		}
	}
	return false
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) == 0 {
		return "."
	}
	return filepath.Dir(pkg.GoFiles[0])
}

func position(fset *token.FileSet, pos token.Pos) string {
	if fset == nil || !pos.IsValid() {
		return "-"
	}
	p := fset.Position(pos)
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

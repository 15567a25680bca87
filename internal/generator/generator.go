package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"

	"github.com/seitarof/gen-deref/internal/parser"
	"github.com/seitarof/gen-deref/internal/selector"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

// Generator emits deref method code for selected targets.
type Generator interface {
	Generate(cfg Config, pkg *parser.PackageInfo, targets []selector.Target) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
	tmpl      *template.Template
}

type goimportsFormatter struct{}

type fileWriter struct{}

type templateData struct {
	Package string
	Imports []string
	Methods []methodTemplateData
}

type methodTemplateData struct {
	TypeName   string
	RecvType   string
	Recv       string
	FieldName  string
	TargetType string
	Mutable    bool
}

// New creates a code generator.
func New(f Formatter, w FileWriter) Generator {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.go.tmpl"))
	return &generatorImpl{formatter: f, writer: w, tmpl: tmpl}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (g *generatorImpl) Generate(cfg Config, pkg *parser.PackageInfo, targets []selector.Target) error {
	if len(targets) == 0 {
		return fmt.Errorf("no deref targets")
	}

	data := buildTemplateData(pkg, targets)
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "deref.go.tmpl", data); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	formatted, err := g.formatter.Format(cfg.OutputFilename(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if err := g.writer.Write(cfg.OutputFilename(), formatted); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

func buildTemplateData(pkg *parser.PackageInfo, targets []selector.Target) templateData {
	importsSet := map[string]struct{}{}
	methods := make([]methodTemplateData, 0, len(targets))

	for _, t := range targets {
		for _, path := range t.Field.Imports {
			importsSet[path] = struct{}{}
		}
		methods = append(methods, methodTemplateData{
			TypeName:   t.Struct.Name,
			RecvType:   receiverType(t.Struct),
			Recv:       receiverName(t.Struct.Name),
			FieldName:  t.Field.Name,
			TargetType: t.Field.TypeStr,
			Mutable:    t.Mutable,
		})
	}

	importsList := make([]string, 0, len(importsSet))
	for path := range importsSet {
		importsList = append(importsList, path)
	}
	sort.Strings(importsList)

	return templateData{
		Package: pkg.Name,
		Imports: importsList,
		Methods: methods,
	}
}

func receiverType(info *parser.StructInfo) string {
	if len(info.TypeParams) == 0 {
		return info.Name
	}
	return info.Name + "[" + strings.Join(info.TypeParams, ", ") + "]"
}

func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError {
		return "x"
	}
	return string(unicode.ToLower(r))
}

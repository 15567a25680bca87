package selector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seitarof/gen-deref/internal/parser"
)

// Sentinel diagnostics for target field selection.
var (
	ErrNoFields        = errors.New("struct has no fields to deref")
	ErrNoTarget        = errors.New("no field marked as deref target")
	ErrMultipleTargets = errors.New("more than one field marked as deref target")
)

// Target describes one generated method pair.
type Target struct {
	Struct  *parser.StructInfo
	Field   parser.FieldInfo
	Mutable bool
}

// Selector picks the deref target field of a struct.
type Selector interface {
	Select(info *parser.StructInfo) (Target, error)
}

type selectorImpl struct{}

// New returns default selector.
func New() Selector {
	return &selectorImpl{}
}

// Select applies the target selection rule: a single marked field wins;
// an unmarked single-field struct falls back to its sole field.
func (s *selectorImpl) Select(info *parser.StructInfo) (Target, error) {
	if len(info.Fields) == 0 {
		return Target{}, fmt.Errorf("%s: struct %q: %w", info.Pos, info.Name, ErrNoFields)
	}

	marked := make([]parser.FieldInfo, 0, 1)
	for _, f := range info.Fields {
		if f.Marked {
			marked = append(marked, f)
		}
	}

	switch len(marked) {
	case 1:
		return Target{Struct: info, Field: marked[0], Mutable: marked[0].Mutable}, nil
	case 0:
		if len(info.Fields) == 1 {
			return Target{Struct: info, Field: info.Fields[0]}, nil
		}
		return Target{}, fmt.Errorf("%s: struct %q: %w", info.Pos, info.Name, ErrNoTarget)
	default:
		return Target{}, fmt.Errorf(
			"%s: struct %q: %w: %s",
			info.Pos, info.Name, ErrMultipleTargets, strings.Join(fieldNames(marked), ", "),
		)
	}
}

func fieldNames(fields []parser.FieldInfo) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

package parser

// PackageInfo holds metadata for one loaded package.
type PackageInfo struct {
	Name    string
	Path    string
	Dir     string
	Structs []*StructInfo
	// OtherTypes lists declared type names that are not structs.
	OtherTypes []string
}

// StructInfo describes one struct type declaration.
type StructInfo struct {
	Name         string
	Pos          string
	TypeParams   []string
	HasDirective bool
	Fields       []FieldInfo
}

// FieldInfo describes one deref target candidate.
type FieldInfo struct {
	Name     string
	TypeStr  string
	Imports  []string
	Pos      string
	Embedded bool
	Marked   bool
	Mutable  bool
}

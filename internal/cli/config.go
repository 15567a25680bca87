package cli

// Config stores CLI options for a single generation run.
type Config struct {
	PkgPath     string
	Types       []string
	Filename    string
	ShowVersion bool
}

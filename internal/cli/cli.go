package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var typesRaw string

	fs := pflag.NewFlagSet("gen-deref", pflag.ContinueOnError)
	fs.StringVarP(&cfg.PkgPath, "pkg-path", "p", ".", "package pattern to load")
	fs.StringVarP(&typesRaw, "type", "t", "", "comma-separated struct type names (default: all //gen-deref:derive structs)")
	fs.StringVarP(&cfg.Filename, "filename", "o", "deref_gen.go", "output file name, relative to the package directory")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if strings.TrimSpace(cfg.PkgPath) == "" {
		return nil, fmt.Errorf("--pkg-path is required")
	}
	if strings.TrimSpace(cfg.Filename) == "" {
		return nil, fmt.Errorf("--filename is required")
	}

	cfg.Types = splitCommaList(typesRaw)
	return cfg, nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/seitarof/gen-deref/internal/cli"
	"github.com/seitarof/gen-deref/internal/generator"
	"github.com/seitarof/gen-deref/internal/parser"
	"github.com/seitarof/gen-deref/internal/selector"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	p := parser.New()
	s := selector.New()
	f := generator.NewGoimportsFormatter()
	w := generator.NewFileWriter()
	g := generator.New(f, w)

	runner := cli.NewRunner(p, s, g)
	if err := runner.Run(cfg); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"chesstactics/internal/level"
)

// gen_levels writes the built-in catalog to a file, as a starting point
// for a custom -levels catalog.
func main() {
	out := flag.String("out", "levels.yaml", "output path")
	format := flag.String("format", "yaml", "yaml | json")
	flag.Parse()

	c := level.DefaultCatalog()
	var err error
	switch *format {
	case "yaml":
		err = c.Save(*out)
	case "json":
		var b []byte
		if b, err = json.MarshalIndent(c, "", "  "); err == nil {
			err = os.WriteFile(*out, b, 0o644)
		}
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d levels and %d tutorials to %s\n", len(c.Levels), len(c.Tutorials), *out)
}

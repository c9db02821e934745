package main

import (
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-world/internal/config"
)

func runMaps(out io.Writer, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	data := openAssets(cfg)
	defer data.Close()

	maps := data.Maps()
	for _, name := range maps {
		fmt.Fprintln(out, name)
	}
	fmt.Fprintf(out, "%d maps\n", len(maps))
	return nil
}

// runConfig prints the effective configuration as YAML. With -save it is
// also written to the user config directory.
func runConfig(out io.Writer, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	save := fs.Bool("save", false, "Write the effective config to the user config directory")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return errUsage
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	out.Write(data)

	if *save {
		path, err := cfg.Save()
		if err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Saved to %s\n", path)
	}
	return nil
}

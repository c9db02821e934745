// worldtool inspects the GPU data of Ragnarok Online maps: the layouts of
// the ground and water shader records, the meshes built from GND files and
// the uniforms derived from RSW settings. It can also open a map in a
// window.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-world/internal/config"
	"github.com/Faultbox/midgard-world/internal/logger"
)

var errUsage = errors.New("usage")

type command struct {
	usage string
	run   func(out io.Writer, cfg *config.Config, args []string) error
}

var commands = map[string]command{
	"layout":   {"layout", runLayout},
	"glsl":     {"glsl", runGLSL},
	"msl":      {"msl", runMSL},
	"mesh":     {"mesh [-rsw file.rsw] [-o prefix] <file.gnd>", runMesh},
	"uniforms": {"uniforms <file.rsw>", runUniforms},
	"view":     {"view <map>", runView},
	"maps":     {"maps", runMaps},
	"config":   {"config [-save]", runConfig},
}

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	if args[0] == "help" {
		printUsage()
		return
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := cmd.run(os.Stdout, cfg, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Usage: worldtool %s\n", cmd.usage)
		} else {
			logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`worldtool - Ragnarok Online map GPU data utility

Usage:
  worldtool [flags] <command> [options]

Commands:
  layout                               Print record layouts under the selected rules
  glsl                                 Print GLSL vertex inputs and uniform blocks
  msl                                  Print Metal struct declarations
  mesh [-rsw f] [-o prefix] <file.gnd> Build ground and water meshes
  uniforms <file.rsw>                  Print the uniform records of a map
  view <map>                           Open a map from the configured data sources
  maps                                 List the maps found in the data sources
  config [-save]                       Print the effective config, optionally saving it

Flags:
  -config f     Config file (or $MIDGARD_WORLD_CONFIG)
  -debug        Debug logging
  -rules r      Layout rules: packed, std140 or simd
  -grf f        Extra GRF archive
  -data d       Extra data directory
  -width/-height/-fullscreen/-windowed

Examples:
  worldtool -rules simd layout
  worldtool mesh -rsw prontera.rsw -o out/prontera prontera.gnd
  worldtool -grf data.grf view prontera`)
}

package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/Faultbox/midgard-world/internal/config"
	"github.com/Faultbox/midgard-world/internal/engine/camera"
	"github.com/Faultbox/midgard-world/internal/engine/lighting"
	"github.com/Faultbox/midgard-world/internal/engine/scene"
	"github.com/Faultbox/midgard-world/pkg/formats"
	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

func runLayout(out io.Writer, cfg *config.Config, args []string) error {
	rules, err := cfg.LayoutRules()
	if err != nil {
		return err
	}
	for _, r := range shadertypes.Records() {
		fmt.Fprintln(out, shadertypes.LayoutOf(r, rules))
	}
	return nil
}

// isVertex reports whether r is fed through vertex attributes rather than a
// uniform block.
func isVertex(r shadertypes.Record) bool {
	switch r.(type) {
	case *shadertypes.GroundVertex, *shadertypes.WaterVertex:
		return true
	}
	return false
}

func runGLSL(out io.Writer, cfg *config.Config, args []string) error {
	for _, r := range shadertypes.Records() {
		fmt.Fprintf(out, "// %s\n", r.TypeName())
		if isVertex(r) {
			fmt.Fprintln(out, shadertypes.GLSLInputs(r, 0))
		} else {
			fmt.Fprintln(out, shadertypes.GLSLBlock(r))
		}
	}
	return nil
}

func runMSL(out io.Writer, cfg *config.Config, args []string) error {
	fmt.Fprintln(out, "#include <simd/simd.h>")
	fmt.Fprintln(out)
	for _, r := range shadertypes.Records() {
		fmt.Fprintln(out, shadertypes.MSLStruct(r))
	}
	return nil
}

// fogFromConfig converts the configured fog.
func fogFromConfig(cfg *config.Config) lighting.Fog {
	f := cfg.Render.Fog
	return lighting.Fog{Enabled: f.Enabled, Near: f.Near, Far: f.Far, Color: f.Color}
}

// cameraFromConfig returns an orbit camera with the configured lens.
func cameraFromConfig(cfg *config.Config) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.FOV = cfg.Render.Camera.FOV
	cam.Near = cfg.Render.Camera.Near
	cam.Far = cfg.Render.Camera.Far
	return cam
}

func runUniforms(out io.Writer, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	rules, err := cfg.LayoutRules()
	if err != nil {
		return err
	}
	rsw, err := formats.ParseRSWFile(args[0])
	if err != nil {
		return err
	}

	env := scene.NewEnvironment(rsw, fogFromConfig(cfg), cfg.Render.LightMap, cfg.Render.WaterOpacity)
	cam := cameraFromConfig(cfg)
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(float32(cfg.Window.Width) / float32(cfg.Window.Height))

	gv, gf := scene.GroundUniforms(view, proj, env)
	wv, wf := scene.WaterUniforms(view, proj, env, 0)

	fmt.Fprintf(out, "RSW %s, rules %s\n\n", rsw.Version, rules)
	for _, r := range []interface {
		shadertypes.Record
		Validate() error
	}{&gv, &gf, &wv, &wf} {
		data := shadertypes.Marshal(r, rules)
		fmt.Fprintf(out, "%s (%d bytes)\n", r.TypeName(), len(data))
		if err := r.Validate(); err != nil {
			fmt.Fprintf(out, "invalid: %v\n", err)
		}
		fmt.Fprint(out, hex.Dump(data))
		fmt.Fprintln(out)
	}
	return nil
}

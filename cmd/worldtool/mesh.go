package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-world/internal/config"
	"github.com/Faultbox/midgard-world/internal/engine/terrain"
	"github.com/Faultbox/midgard-world/internal/engine/water"
	"github.com/Faultbox/midgard-world/pkg/formats"
	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

func runMesh(out io.Writer, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mesh", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rswPath := fs.String("rsw", "", "RSW file with the water settings")
	prefix := fs.String("o", "", "Write vertex and index buffers to <prefix>.{ground,water}.{vtx,idx}")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	gnd, err := formats.ParseGNDFile(fs.Arg(0))
	if err != nil {
		return err
	}
	atlas := terrain.BuildLightmapAtlas(gnd)
	ground := terrain.BuildMesh(gnd, atlas)

	fmt.Fprintf(out, "GND %s: %dx%d tiles, zoom %g\n", gnd.Version, gnd.Width, gnd.Height, gnd.Zoom)
	fmt.Fprintf(out, "Ground: %d vertices, %d indices, %d texture groups\n",
		len(ground.Vertices), len(ground.Indices), len(ground.Groups))
	for _, g := range ground.Groups {
		name := "(none)"
		if g.TextureID >= 0 && g.TextureID < len(gnd.Textures) {
			name = gnd.Textures[g.TextureID]
		}
		fmt.Fprintf(out, "  %3d  %-40s %6d indices\n", g.TextureID, name, g.IndexCount)
	}
	low, high := gnd.GetAltitudeRange()
	fmt.Fprintf(out, "Altitude: %g .. %g\n", low, high)
	perTexture := gnd.CountSurfacesByTexture()
	for id := range gnd.Textures {
		if n := perTexture[id]; n > 0 {
			fmt.Fprintf(out, "  texture %d: %d surfaces\n", id, n)
		}
	}
	fmt.Fprintf(out, "Bounds: %v .. %v, center %v\n", ground.Bounds.Min, ground.Bounds.Max, ground.Bounds.Center())
	fmt.Fprintf(out, "Lightmap atlas: %dx%d\n", atlas.Size, atlas.Size)

	var invalid error
	for i := range ground.Vertices {
		invalid = multierr.Append(invalid, ground.Vertices[i].Validate())
	}
	if n := len(multierr.Errors(invalid)); n > 0 {
		fmt.Fprintf(out, "Warning: %d vertices with non-unit normals\n", n)
	}

	var waterMesh *water.Mesh
	if *rswPath != "" {
		rsw, err := formats.ParseRSWFile(*rswPath)
		if err != nil {
			return err
		}
		printObjects(out, rsw)
		if rsw.HasWater {
			settings := water.SettingsFromRSW(rsw.Water)
			waterMesh = water.BuildMesh(gnd, settings)
			fmt.Fprintf(out, "Water: level %g, type %d, %d vertices, %d indices\n",
				settings.Level, settings.Type, len(waterMesh.Vertices), len(waterMesh.Indices))
			var invalid error
			for i := range waterMesh.Vertices {
				invalid = multierr.Append(invalid, waterMesh.Vertices[i].Validate())
			}
			if n := len(multierr.Errors(invalid)); n > 0 {
				fmt.Fprintf(out, "Warning: %d non-finite water vertex values\n", n)
			}
		} else {
			fmt.Fprintf(out, "Water: none in RSW %s\n", rsw.Version)
		}
	}

	if *prefix == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(*prefix), 0755); err != nil {
		return err
	}
	err = writeBuffers(*prefix+".ground",
		shadertypes.MarshalSlice(ground.Vertices, shadertypes.Packed), ground.Indices)
	if err == nil && waterMesh != nil && !waterMesh.Empty() {
		err = writeBuffers(*prefix+".water",
			shadertypes.MarshalSlice(waterMesh.Vertices, shadertypes.Packed), waterMesh.Indices)
	}
	if err != nil {
		return fmt.Errorf("writing buffers: %w", err)
	}
	fmt.Fprintf(out, "Buffers written to %s.*\n", *prefix)
	return nil
}

// printObjects lists the placed objects of a world by type, then its point
// lights.
func printObjects(out io.Writer, rsw *formats.RSW) {
	counts := rsw.CountByType()
	fmt.Fprintf(out, "Objects: %d", len(rsw.Objects))
	for _, t := range []formats.RSWObjectType{
		formats.RSWObjectModel, formats.RSWObjectLight, formats.RSWObjectSound, formats.RSWObjectEffect,
	} {
		fmt.Fprintf(out, ", %d %s", counts[t], t)
	}
	fmt.Fprintln(out)
	for _, l := range rsw.GetLights() {
		fmt.Fprintf(out, "  light %-20s at %v range %g\n", l.Name, l.Position, l.Range)
	}
}

// writeBuffers writes packed vertices to base.vtx and little-endian uint32
// indices to base.idx.
func writeBuffers(base string, vertices []byte, indices []uint32) error {
	if err := os.WriteFile(base+".vtx", vertices, 0644); err != nil {
		return err
	}
	idx := make([]byte, 4*len(indices))
	for i, v := range indices {
		binary.LittleEndian.PutUint32(idx[4*i:], v)
	}
	return os.WriteFile(base+".idx", idx, 0644)
}

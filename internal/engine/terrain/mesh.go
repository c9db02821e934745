package terrain

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-world/pkg/formats"
	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

// wallEpsilon is the smallest altitude step that gets a wall quad.
const wallEpsilon = 0.001

// defaultU and defaultV are used for walls borrowing the top surface texture.
var (
	defaultU = [4]float32{0, 1, 0, 1}
	defaultV = [4]float32{0, 0, 1, 1}
)

// meshBuilder accumulates vertices and per-texture indices.
type meshBuilder struct {
	gnd      *formats.GND
	atlas    *LightmapAtlas
	vertices []shadertypes.GroundVertex
	indices  map[int][]uint32
	bounds   Bounds
}

// BuildMesh creates the ground mesh from GND data. World X runs east, Z runs
// south and Y is the negated altitude. atlas may be nil, in which case every
// vertex samples the center of the first lightmap.
func BuildMesh(gnd *formats.GND, atlas *LightmapAtlas) *Mesh {
	b := &meshBuilder{
		gnd:     gnd,
		atlas:   atlas,
		indices: make(map[int][]uint32),
		bounds: Bounds{
			Min: [3]float32{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
			Max: [3]float32{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
		},
	}

	for y := range int(gnd.Height) {
		for x := range int(gnd.Width) {
			b.addTile(x, y)
		}
	}

	mesh := &Mesh{Vertices: b.vertices, Bounds: b.bounds}
	if len(b.vertices) == 0 {
		mesh.Bounds = Bounds{}
	}

	textureIDs := make([]int, 0, len(b.indices))
	for id := range b.indices {
		textureIDs = append(textureIDs, id)
	}
	sort.Ints(textureIDs)
	for _, id := range textureIDs {
		idx := b.indices[id]
		mesh.Groups = append(mesh.Groups, TextureGroup{
			TextureID:  id,
			StartIndex: int32(len(mesh.Indices)),
			IndexCount: int32(len(idx)),
		})
		mesh.Indices = append(mesh.Indices, idx...)
	}

	SmoothNormals(mesh.Vertices)
	return mesh
}

func (b *meshBuilder) addTile(x, y int) {
	gnd := b.gnd
	tile := gnd.GetTile(x, y)
	size := gnd.Zoom
	baseX := float32(x) * size
	baseZ := float32(y) * size
	tileColor := TileColorCoordinate(gnd, x, y)

	// GND corner order: bottom-left, bottom-right, top-left, top-right.
	corners := [4]mgl32.Vec3{
		{baseX, -tile.Altitude[0], baseZ + size},
		{baseX + size, -tile.Altitude[1], baseZ + size},
		{baseX, -tile.Altitude[2], baseZ},
		{baseX + size, -tile.Altitude[3], baseZ},
	}
	for _, c := range corners {
		b.extend(c)
	}

	if s := gnd.Surface(tile.TopSurface); s != nil {
		normal := corners[1].Sub(corners[0]).Cross(corners[2].Sub(corners[0]))
		// top surfaces store their UVs top-row first
		uv := [4]mgl32.Vec2{
			{s.U[2], s.V[2]},
			{s.U[3], s.V[3]},
			{s.U[0], s.V[0]},
			{s.U[1], s.V[1]},
		}
		base := b.quad(corners, normalize(normal), uv, s.LightmapID, tileColor)
		b.indices[int(s.TextureID)] = append(b.indices[int(s.TextureID)],
			base, base+1, base+2,
			base+2, base+1, base+3,
		)
	}

	if next := gnd.GetTile(x, y+1); next != nil &&
		(math32.Abs(tile.Altitude[0]-next.Altitude[2]) > wallEpsilon ||
			math32.Abs(tile.Altitude[1]-next.Altitude[3]) > wallEpsilon) {
		wall := [4]mgl32.Vec3{
			corners[0],
			corners[1],
			{baseX, -next.Altitude[2], baseZ + size},
			{baseX + size, -next.Altitude[3], baseZ + size},
		}
		b.wall(tile, tile.FrontSurface, wall, mgl32.Vec3{0, 0, -1}, tileColor)
	}

	if next := gnd.GetTile(x+1, y); next != nil &&
		(math32.Abs(tile.Altitude[1]-next.Altitude[0]) > wallEpsilon ||
			math32.Abs(tile.Altitude[3]-next.Altitude[2]) > wallEpsilon) {
		wall := [4]mgl32.Vec3{
			corners[3],
			corners[1],
			{baseX + size, -next.Altitude[2], baseZ},
			{baseX + size, -next.Altitude[0], baseZ + size},
		}
		b.wall(tile, tile.RightSurface, wall, mgl32.Vec3{1, 0, 0}, tileColor)
	}
}

// wall adds a vertical quad textured by surfaceID, or by the tile's top
// surface texture when the tile has no wall surface of its own.
func (b *meshBuilder) wall(tile *formats.GNDTile, surfaceID int32, corners [4]mgl32.Vec3,
	normal mgl32.Vec3, tileColor mgl32.Vec2) {
	u, v := defaultU, defaultV
	s := b.gnd.Surface(surfaceID)
	if s != nil {
		u, v = s.U, s.V
	} else if s = b.gnd.Surface(tile.TopSurface); s == nil {
		return
	}

	uv := [4]mgl32.Vec2{{u[0], v[0]}, {u[1], v[1]}, {u[2], v[2]}, {u[3], v[3]}}
	base := b.quad(corners, normal, uv, s.LightmapID, tileColor)
	b.indices[int(s.TextureID)] = append(b.indices[int(s.TextureID)],
		base, base+2, base+1,
		base+1, base+2, base+3,
	)
}

// quad appends four vertices and returns the index of the first.
func (b *meshBuilder) quad(corners [4]mgl32.Vec3, normal mgl32.Vec3, uv [4]mgl32.Vec2,
	lightmapID uint16, tileColor mgl32.Vec2) uint32 {
	base := uint32(len(b.vertices))
	for i := range corners {
		b.vertices = append(b.vertices, shadertypes.GroundVertex{
			Position:            corners[i],
			Normal:              normal,
			TextureCoordinate:   uv[i],
			LightmapCoordinate:  LightmapUV(b.atlas, lightmapID, i),
			TileColorCoordinate: tileColor,
		})
	}
	return base
}

func (b *meshBuilder) extend(p mgl32.Vec3) {
	for i := range 3 {
		b.bounds.Min[i] = min(b.bounds.Min[i], p[i])
		b.bounds.Max[i] = max(b.bounds.Max[i], p[i])
	}
}

// SmoothNormals averages normals of vertices sharing a position, removing
// hard edges between neighbouring tiles.
func SmoothNormals(vertices []shadertypes.GroundVertex) {
	const epsilon float32 = 0.001

	shared := make(map[[3]int32][]int)
	for i := range vertices {
		p := vertices[i].Position
		key := [3]int32{
			int32(math32.Round(p[0] / epsilon)),
			int32(math32.Round(p[1] / epsilon)),
			int32(math32.Round(p[2] / epsilon)),
		}
		shared[key] = append(shared[key], i)
	}

	for _, group := range shared {
		if len(group) < 2 {
			continue
		}
		var sum mgl32.Vec3
		for _, i := range group {
			sum = sum.Add(vertices[i].Normal)
		}
		avg := normalize(sum)
		for _, i := range group {
			vertices[i].Normal = avg
		}
	}
}

// normalize returns v scaled to unit length, or straight up when v is
// degenerate.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 0.0001 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Mul(1 / l)
}

package shader

import (
	"strings"

	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

// Version is the GLSL version line every stage starts with.
const Version = "#version 410 core\n"

// VertexSource assembles a vertex stage: the version line, the inputs of
// vertex, one std140 block per uniform record, then body.
func VertexSource(body string, vertex shadertypes.Record, uniforms ...shadertypes.Record) string {
	var sb strings.Builder
	sb.WriteString(Version)
	sb.WriteString(shadertypes.GLSLInputs(vertex, 0))
	writeBlocks(&sb, uniforms)
	sb.WriteString(body)
	return sb.String()
}

// FragmentSource assembles a fragment stage from its uniform records and
// body.
func FragmentSource(body string, uniforms ...shadertypes.Record) string {
	var sb strings.Builder
	sb.WriteString(Version)
	writeBlocks(&sb, uniforms)
	sb.WriteString(body)
	return sb.String()
}

func writeBlocks(sb *strings.Builder, uniforms []shadertypes.Record) {
	for _, u := range uniforms {
		sb.WriteString(shadertypes.GLSLBlock(u))
	}
}

// Package shaders provides the embedded GLSL shader bodies. Declarations of
// vertex inputs and uniform blocks are generated and prepended at load time.
package shaders

import _ "embed"

// GroundVertexShader is the body of the ground vertex stage.
//
//go:embed ground.vert
var GroundVertexShader string

// GroundFragmentShader is the body of the ground fragment stage.
//
//go:embed ground.frag
var GroundFragmentShader string

// WaterVertexShader is the body of the water vertex stage.
//
//go:embed water.vert
var WaterVertexShader string

// WaterFragmentShader is the body of the water fragment stage.
//
//go:embed water.frag
var WaterFragmentShader string

// Package shaders provides the embedded GLSL sources of the terrain scene.
// Each program is a name.vert and name.frag pair.
package shaders

import "embed"

// FS holds every shader stage.
//
//go:embed *.vert *.frag
var FS embed.FS

// Program names.
const (
	Background  = "background"
	Heightfield = "heightfield"
	Simple      = "simple"
)

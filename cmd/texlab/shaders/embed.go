// Package shaders provides the embedded GLSL sources of the texture lab.
package shaders

import "embed"

// FS holds texlab.vert and texlab.frag.
//
//go:embed *.vert *.frag
var FS embed.FS

// Texlab is the program name.
const Texlab = "texlab"

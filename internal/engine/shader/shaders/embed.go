// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LitVertexShader transforms mesh vertices to clip space and passes world
// position, normal, tangent and UV on. The unlit program shares it.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader shades a surface with ambient light and the light list.
//
//go:embed lit.frag
var LitFragmentShader string

// UnlitFragmentShader outputs the tinted surface texture.
//
//go:embed unlit.frag
var UnlitFragmentShader string

// SkyVertexShader places the sky cube around the camera at the far plane.
//
//go:embed sky.vert
var SkyVertexShader string

// SkyFragmentShader samples the sky cubemap.
//
//go:embed sky.frag
var SkyFragmentShader string

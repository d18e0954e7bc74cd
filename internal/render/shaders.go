package render

import (
	"embed"
	"fmt"
)

//go:embed shaders/*.vs shaders/*.fs
var shaderFS embed.FS

// Shader program names, matching the file stems under shaders/.
const (
	ProgramStars          = "stars"
	ProgramDisc           = "disc"
	ProgramHole           = "hole"
	ProgramDistortionDisc = "distortion_disc"
	ProgramComposite      = "composite"
)

var programNames = []string{
	ProgramStars,
	ProgramDisc,
	ProgramHole,
	ProgramDistortionDisc,
	ProgramComposite,
}

// programUniforms lists the custom uniforms each program reads. Locations
// are resolved once after linking.
var programUniforms = map[string][]string{
	ProgramStars:          nil,
	ProgramDisc:           {"phase", "temperature", "accretionRate", "noiseIntensity"},
	ProgramHole:           {"lensing"},
	ProgramDistortionDisc: {"lensing", "schwarzschildRadius", "discRadius"},
	ProgramComposite: {
		"distortionTexture", "time", "convergence", "vignette",
		"chromaticShift", "lensing", "mass",
	},
}

// ShaderSource returns the vertex and fragment source of a program.
func ShaderSource(name string) (vs, fs string, err error) {
	v, err := shaderFS.ReadFile("shaders/" + name + ".vs")
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %v", ErrShaderLoad, name, err)
	}
	f, err := shaderFS.ReadFile("shaders/" + name + ".fs")
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %v", ErrShaderLoad, name, err)
	}
	return string(v), string(f), nil
}

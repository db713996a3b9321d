// Package shader holds the WGSL sources of the demo programs and turns them
// into SPIR-V words at startup.
package shader

import (
	"embed"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/spirv"
	"github.com/vkngwrapper/vulkan-demos/internal/vkutil"
)

//go:embed wgsl
var sources embed.FS

// Entry points every source defines.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

const (
	Triangle = "triangle"
	MVP      = "mvp"
	Scene    = "scene"
	GUI      = "gui"
)

// Names lists the embedded shaders.
var Names = []string{Triangle, MVP, Scene, GUI}

// Source returns the WGSL text of the named shader.
func Source(name string) (string, error) {
	data, err := sources.ReadFile("wgsl/" + name + ".wgsl")
	if err != nil {
		return "", errors.Newf("unknown shader %q", name)
	}

	return string(data), nil
}

// Compile compiles the named embedded shader.
func Compile(name string) ([]uint32, error) {
	src, err := Source(name)
	if err != nil {
		return nil, err
	}

	return CompileSource(name, src)
}

// CompileSource compiles WGSL text to SPIR-V words. The name only labels errors.
func CompileSource(name string, src string) ([]uint32, error) {
	code, err := naga.CompileWithOptions(src, naga.CompileOptions{
		SPIRVVersion: spirv.Version1_3,
		Validate:     true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile shader %s", name)
	}

	words, err := vkutil.BytesToBytecode(code)
	if err != nil {
		return nil, errors.Wrapf(err, "shader %s", name)
	}

	return words, nil
}

// Package naga compiles generated WGSL to SPIR-V with the pure Go naga compiler.
package naga

import (
	"encoding/binary"

	"github.com/gogpu/naga"
	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports"
	"go.trai.ch/zerr"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// Backend implements ports.ShaderBackend.
type Backend struct{}

// NewBackend creates a Backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Compile parses, validates and lowers source to SPIR-V.
func (b *Backend) Compile(source string) (*ports.ShaderModule, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrShaderCompile, err.Error())
	}
	if len(spirv) < 4 || len(spirv)%4 != 0 || binary.LittleEndian.Uint32(spirv) != spirvMagic {
		return nil, zerr.With(zerr.Wrap(domain.ErrShaderCompile, "backend produced malformed SPIR-V"),
			"bytes", len(spirv))
	}
	return &ports.ShaderModule{SPIRV: spirv}, nil
}

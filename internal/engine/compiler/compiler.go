// Package compiler turns transform graphs into shader modules and CPU
// processors.
package compiler

import (
	"errors"

	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports"
	"go.trai.ch/zerr"
)

// Compiler generates WGSL for a graph and hands it to a shader backend.
type Compiler struct {
	backend ports.ShaderBackend
}

// New creates a Compiler.
func New(backend ports.ShaderBackend) *Compiler {
	return &Compiler{backend: backend}
}

// Source renders the WGSL module for g without compiling it.
func Source(g *domain.TransformGraph) (string, error) {
	m, err := generate(g)
	if err != nil {
		return "", err
	}
	return m.source, nil
}

// Compile builds the shader artifact for g and stamps it with key. The result
// is immutable and may be shared between viewers.
func (c *Compiler) Compile(key string, g *domain.TransformGraph) (*domain.CompiledShader, error) {
	m, err := generate(g)
	if err != nil {
		return nil, err
	}

	out, err := c.backend.Compile(m.source)
	if err != nil {
		if !errors.Is(err, domain.ErrShaderCompile) {
			err = zerr.Wrap(domain.ErrShaderCompile, err.Error())
		}
		return nil, zerr.With(zerr.With(err, "viewer", g.Viewer.String()), "config", g.Config)
	}

	return &domain.CompiledShader{
		Key:          key,
		Viewer:       g.Viewer,
		Language:     Language,
		EntryPoint:   EntryPoint,
		FunctionName: FunctionName,
		Source:       m.source,
		SPIRV:        out.SPIRV,
		Textures:     m.textures,
		Handles:      m.handles,
	}, nil
}

package ports

// ShaderModule is what a shader backend produces from validated WGSL.
type ShaderModule struct {
	SPIRV []byte
}

// ShaderBackend validates generated WGSL and translates it for the GPU.
//
//go:generate mockgen -source=shader_backend.go -destination=mocks/mock_shader_backend.go -package=mocks
type ShaderBackend interface {
	// Compile validates source and translates it to SPIR-V.
	Compile(source string) (*ShaderModule, error)
}

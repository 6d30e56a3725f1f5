package domain

import (
	"slices"
	"sync"
)

// Uniform block layout, in float32 slots. The block is a WGSL struct of four
// vec4s: scalars (exposure, bypass, channel), grade offset, grade gain with
// saturation in w, and grade gamma.
const (
	UniformExposureSlot = 0
	UniformBypassSlot   = 1
	UniformChannelSlot  = 2
	UniformGradeSlot    = 4
	UniformGradeLen     = 12
	UniformBlockLen     = 16
)

// Texture is a baked lookup table resource bound alongside the shader.
type Texture struct {
	Name    string
	Binding uint32
	Dim     int
	Width   int
	Height  int
	Depth   int
	// Data holds RGB triplets in the texture's native order.
	Data []float32
}

// Handle is a named uniform slot that can change without recompiling.
type Handle struct {
	Name       string
	Offset     int
	Components int
}

// CompiledShader is the immutable output of the shader compiler. It is shared
// by every descriptor built from the same cache key and must not be modified.
type CompiledShader struct {
	Key          string
	Viewer       Viewer
	Language     string
	EntryPoint   string
	FunctionName string
	Source       string
	SPIRV        []byte
	Textures     []Texture
	Handles      []Handle
}

// Handle looks up a dynamic handle by name.
func (c *CompiledShader) Handle(name string) (Handle, bool) {
	for _, h := range c.Handles {
		if h.Name == name {
			return h, true
		}
	}
	return Handle{}, false
}

// ShaderDescriptor is one viewer's instance of a compiled shader: the shared
// artifact plus privately locked uniform values.
type ShaderDescriptor struct {
	shader *CompiledShader

	mu       sync.Mutex
	uniforms []float32
	updates  uint64
}

// NewShaderDescriptor creates a descriptor with neutral uniform values.
func NewShaderDescriptor(shader *CompiledShader) *ShaderDescriptor {
	d := &ShaderDescriptor{shader: shader}
	if len(shader.Handles) > 0 {
		d.uniforms = make([]float32, UniformBlockLen)
		grade := IdentityPrimary().Uniform()
		copy(d.uniforms[UniformGradeSlot:], grade[:])
	}
	return d
}

// Shader returns the shared compiled artifact.
func (d *ShaderDescriptor) Shader() *CompiledShader {
	return d.shader
}

// Update runs fn with exclusive access to the uniform block.
func (d *ShaderDescriptor) Update(fn func(uniforms []float32)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.uniforms)
	d.updates++
}

// Uniforms returns a copy of the current uniform block.
func (d *ShaderDescriptor) Uniforms() []float32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.uniforms)
}

// Updates returns how many times the uniforms were written.
func (d *ShaderDescriptor) Updates() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updates
}

// PipelineData is the caller-owned sink populated by shader setup. It is
// replaced as a whole, so readers never see a half-installed pipeline.
type PipelineData struct {
	mu       sync.RWMutex
	sourceID string
	hash     string
	main     *ShaderDescriptor
	popout   *ShaderDescriptor
}

// Install swaps in a complete pipeline.
func (p *PipelineData) Install(sourceID, hash string, main, popout *ShaderDescriptor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sourceID = sourceID
	p.hash = hash
	p.main = main
	p.popout = popout
}

// Descriptor returns the descriptor installed for a viewer, or nil.
func (p *PipelineData) Descriptor(v Viewer) *ShaderDescriptor {
	p.mu.RLock()
	defer p.mu.RUnlock()
	switch v {
	case ViewerMain:
		return p.main
	case ViewerPopout:
		return p.popout
	default:
		return nil
	}
}

// SourceID returns the source the installed pipeline was built for.
func (p *PipelineData) SourceID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sourceID
}

// Hash returns the params hash of the installed pipeline.
func (p *PipelineData) Hash() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.hash
}

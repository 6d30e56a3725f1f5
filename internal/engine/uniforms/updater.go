// Package uniforms writes runtime values into shader descriptors.
package uniforms

import (
	"go.trai.ch/hue/internal/core/domain"
)

// Values are the runtime-adjustable inputs of a dynamic shader.
type Values struct {
	// Exposure is in stops.
	Exposure float64
	Bypass   bool
	Channel  domain.Channel
	Primary  domain.GradingPrimary
}

// DefaultValues returns neutral values.
func DefaultValues() Values {
	return Values{Primary: domain.IdentityPrimary()}
}

// Updater writes Values into descriptors without recompiling anything.
type Updater struct{}

// New creates an Updater.
func New() *Updater {
	return &Updater{}
}

// Update writes every value the descriptor has a handle for. Missing handles
// are skipped. A nil descriptor is a no-op and reports false.
func (u *Updater) Update(d *domain.ShaderDescriptor, v Values) bool {
	if d == nil {
		return false
	}
	shader := d.Shader()
	if len(shader.Handles) == 0 {
		return false
	}

	d.Update(func(block []float32) {
		if h, ok := shader.Handle(domain.DynamicExposure); ok {
			block[h.Offset] = float32(v.Exposure)
		}
		if h, ok := shader.Handle(domain.DynamicBypass); ok {
			block[h.Offset] = 0
			if v.Bypass {
				block[h.Offset] = 1
			}
		}
		if h, ok := shader.Handle(domain.DynamicChannel); ok {
			block[h.Offset] = float32(v.Channel)
		}
		if h, ok := shader.Handle(domain.DynamicGradePrimary); ok {
			grade := v.Primary.Uniform()
			copy(block[h.Offset:h.Offset+h.Components], grade[:])
		}
	})
	return true
}

// Snapshot returns a copy of the descriptor's uniform block, or nil.
func (u *Updater) Snapshot(d *domain.ShaderDescriptor) []float32 {
	if d == nil {
		return nil
	}
	return d.Uniforms()
}

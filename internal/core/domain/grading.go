package domain

import (
	"encoding/json"
	"fmt"
	"math"

	"go.trai.ch/zerr"
)

// GradingPrimary is a primary grade: per-channel offset, gain and gamma plus
// a global saturation. The zero value is not the identity; use IdentityPrimary.
type GradingPrimary struct {
	Offset     RGB     `json:"offset"`
	Gain       RGB     `json:"gain"`
	Gamma      RGB     `json:"gamma"`
	Saturation float64 `json:"saturation"`
}

// IdentityPrimary returns a grade that leaves colours unchanged.
func IdentityPrimary() GradingPrimary {
	return GradingPrimary{
		Gain:       RGB{1, 1, 1},
		Gamma:      RGB{1, 1, 1},
		Saturation: 1,
	}
}

// IsIdentity reports whether the grade leaves colours unchanged.
func (g GradingPrimary) IsIdentity() bool {
	return g == IdentityPrimary()
}

// Validate rejects grades that cannot be evaluated.
func (g GradingPrimary) Validate() error {
	for i := range 3 {
		if !finite(g.Offset[i]) || !finite(g.Gain[i]) || !finite(g.Gamma[i]) {
			return malformed(fmt.Sprintf("channel %d holds a non-finite value", i))
		}
		if g.Gamma[i] <= 0 {
			return malformed(fmt.Sprintf("gamma[%d] must be positive, got %g", i, g.Gamma[i]))
		}
	}
	if !finite(g.Saturation) || g.Saturation < 0 {
		return malformed(fmt.Sprintf("saturation must be a non-negative number, got %g", g.Saturation))
	}
	return nil
}

func malformed(msg string) error {
	return zerr.With(zerr.Wrap(ErrMalformedGrade, msg), "grading_primary", msg)
}

// Apply evaluates the grade on a single colour.
func (g GradingPrimary) Apply(c RGB) RGB {
	var out RGB
	for i := range 3 {
		v := math.Max(c[i]*g.Gain[i]+g.Offset[i], 0)
		out[i] = math.Pow(v, 1/g.Gamma[i])
	}
	return saturate(out, g.Saturation)
}

// Uniform packs the grade into the shader's vec4 layout: offset, gain, gamma
// with saturation carried in the gain block's fourth lane.
func (g GradingPrimary) Uniform() [12]float32 {
	return [12]float32{
		float32(g.Offset[0]), float32(g.Offset[1]), float32(g.Offset[2]), 0,
		float32(g.Gain[0]), float32(g.Gain[1]), float32(g.Gain[2]), float32(g.Saturation),
		float32(g.Gamma[0]), float32(g.Gamma[1]), float32(g.Gamma[2]), 0,
	}
}

// UnmarshalJSON decodes a grade, starting from the identity so omitted fields
// keep their neutral value.
func (g *GradingPrimary) UnmarshalJSON(data []byte) error {
	type plain GradingPrimary
	p := plain(IdentityPrimary())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*g = GradingPrimary(p)
	return nil
}

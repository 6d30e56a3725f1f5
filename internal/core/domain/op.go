package domain

import (
	"fmt"
	"math"

	"go.trai.ch/zerr"
)

// OpKind identifies a colour operator.
type OpKind string

const (
	// OpMatrix is a 3x3 matrix followed by a per-channel offset.
	OpMatrix OpKind = "matrix"
	// OpExponent raises each channel to a fixed power.
	OpExponent OpKind = "exponent"
	// OpTransfer applies a named transfer curve.
	OpTransfer OpKind = "transfer"
	// OpCDL applies an ASC colour decision (slope, offset, power, saturation).
	OpCDL OpKind = "cdl"
	// OpLUT1D samples a per-channel one dimensional lookup table.
	OpLUT1D OpKind = "lut1d"
	// OpLUT3D samples a three dimensional lookup table.
	OpLUT3D OpKind = "lut3d"
	// OpRange clamps each channel to a fixed interval.
	OpRange OpKind = "range"
)

// TransferFunc names a built-in transfer curve. Forward decodes to linear light.
type TransferFunc string

const (
	TransferSRGB    TransferFunc = "srgb"
	TransferRec709  TransferFunc = "rec709"
	TransferGamma22 TransferFunc = "gamma2.2"
	TransferACEScct TransferFunc = "acescct"
	TransferLog2    TransferFunc = "log2"
)

// Rec.709 luma weights used by saturation adjustments.
var LumaWeights = [3]float64{0.2126, 0.7152, 0.0722}

// RGB is a linear triple of channel values.
type RGB = [3]float64

// CDL is an ASC colour decision.
type CDL struct {
	ID         string
	Slope      RGB
	Offset     RGB
	Power      RGB
	Saturation float64
}

// IdentityCDL returns a decision that leaves colours unchanged.
func IdentityCDL() CDL {
	return CDL{Slope: RGB{1, 1, 1}, Power: RGB{1, 1, 1}, Saturation: 1}
}

// Op is a single colour operator. Ops are values and never mutated after
// configuration load; Invert returns a new Op.
type Op struct {
	Kind    OpKind
	Inverse bool

	// matrix
	Matrix [9]float64
	Offset RGB

	// exponent
	Exponent RGB

	// transfer
	Transfer TransferFunc
	MinStops float64
	MaxStops float64
	MidGray  float64

	// cdl
	CDL CDL

	// lut1d, lut3d
	LUT *LUT

	// range
	Min RGB
	Max RGB
}

// Baked reports whether the op must be realised as a lookup texture.
func (o Op) Baked() bool {
	return o.Kind == OpLUT1D || o.Kind == OpLUT3D
}

// Validate checks the operator's parameters.
func (o Op) Validate() error {
	switch o.Kind {
	case OpMatrix, OpRange:
		return nil
	case OpExponent:
		for _, e := range o.Exponent {
			if e <= 0 || !finite(e) {
				return opError(o, "exponent values must be positive")
			}
		}
	case OpTransfer:
		switch o.Transfer {
		case TransferSRGB, TransferRec709, TransferGamma22, TransferACEScct:
		case TransferLog2:
			if o.MaxStops <= o.MinStops {
				return opError(o, "log2 max_stops must exceed min_stops")
			}
			if o.MidGray <= 0 {
				return opError(o, "log2 mid_gray must be positive")
			}
		default:
			return opError(o, fmt.Sprintf("unknown transfer %q", o.Transfer))
		}
	case OpCDL:
		for i := range 3 {
			if o.CDL.Power[i] <= 0 {
				return opError(o, "cdl power values must be positive")
			}
		}
		if o.CDL.Saturation < 0 {
			return opError(o, "cdl saturation must not be negative")
		}
	case OpLUT1D, OpLUT3D:
		if o.LUT == nil {
			return opError(o, "lookup table has no data")
		}
		return o.LUT.Validate()
	default:
		return opError(o, fmt.Sprintf("unknown operator %q", o.Kind))
	}
	return nil
}

func opError(o Op, msg string) error {
	return zerr.With(zerr.Wrap(ErrInvalidConfig, msg), "op", string(o.Kind))
}

// Invert returns the operator running in the opposite direction.
func (o Op) Invert() (Op, error) {
	switch o.Kind {
	case OpMatrix:
		inv, ok := invert3(o.Matrix)
		if !ok {
			return Op{}, notInvertible(o, "matrix is singular")
		}
		out := o
		out.Matrix = inv
		// M^-1 * (c - offset) = M^-1*c - M^-1*offset
		off := mul3(inv, o.Offset)
		out.Offset = RGB{-off[0], -off[1], -off[2]}
		return out, nil
	case OpExponent, OpTransfer, OpCDL:
		out := o
		out.Inverse = !o.Inverse
		return out, nil
	case OpRange:
		return o, nil
	default:
		return Op{}, notInvertible(o, "lookup tables cannot run backwards")
	}
}

func notInvertible(o Op, msg string) error {
	return zerr.With(zerr.Wrap(ErrNotInvertible, msg), "op", string(o.Kind))
}

// InvertOps returns the inverse of an op chain: reversed, each op inverted.
func InvertOps(ops []Op) ([]Op, error) {
	out := make([]Op, len(ops))
	for i, op := range ops {
		inv, err := op.Invert()
		if err != nil {
			return nil, err
		}
		out[len(ops)-1-i] = inv
	}
	return out, nil
}

// Apply evaluates the operator on a single colour.
func (o Op) Apply(c RGB) RGB {
	switch o.Kind {
	case OpMatrix:
		m := mul3(o.Matrix, c)
		return RGB{m[0] + o.Offset[0], m[1] + o.Offset[1], m[2] + o.Offset[2]}
	case OpExponent:
		var out RGB
		for i := range 3 {
			e := o.Exponent[i]
			if o.Inverse {
				e = 1 / e
			}
			out[i] = math.Pow(math.Max(c[i], 0), e)
		}
		return out
	case OpTransfer:
		var out RGB
		for i := range 3 {
			if o.Inverse {
				out[i] = o.encode(c[i])
			} else {
				out[i] = o.decode(c[i])
			}
		}
		return out
	case OpCDL:
		if o.Inverse {
			return o.CDL.applyInverse(c)
		}
		return o.CDL.apply(c)
	case OpLUT1D:
		return o.LUT.Sample1D(c)
	case OpLUT3D:
		return o.LUT.Sample3D(c)
	case OpRange:
		var out RGB
		for i := range 3 {
			out[i] = math.Min(math.Max(c[i], o.Min[i]), o.Max[i])
		}
		return out
	}
	return c
}

// ApplyOps evaluates a chain of operators in order.
func ApplyOps(ops []Op, c RGB) RGB {
	for _, op := range ops {
		c = op.Apply(c)
	}
	return c
}

func (o Op) decode(v float64) float64 {
	switch o.Transfer {
	case TransferSRGB:
		if v <= 0.04045 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	case TransferRec709:
		if v < 0.081 {
			return v / 4.5
		}
		return math.Pow((v+0.099)/1.099, 1/0.45)
	case TransferGamma22:
		return math.Pow(math.Max(v, 0), 2.2)
	case TransferACEScct:
		if v <= ACEScctBreak {
			return (v - ACEScctB) / ACEScctA
		}
		return math.Exp2(v*17.52 - 9.72)
	case TransferLog2:
		return o.MidGray * math.Exp2(v*(o.MaxStops-o.MinStops)+o.MinStops)
	}
	return v
}

func (o Op) encode(v float64) float64 {
	switch o.Transfer {
	case TransferSRGB:
		if v <= 0.0031308 {
			return v * 12.92
		}
		return 1.055*math.Pow(v, 1/2.4) - 0.055
	case TransferRec709:
		if v < 0.018 {
			return v * 4.5
		}
		return 1.099*math.Pow(v, 0.45) - 0.099
	case TransferGamma22:
		return math.Pow(math.Max(v, 0), 1/2.2)
	case TransferACEScct:
		if v <= 0.0078125 {
			return ACEScctA*v + ACEScctB
		}
		return (math.Log2(v) + 9.72) / 17.52
	case TransferLog2:
		v = math.Max(v, Log2Floor)
		return (math.Log2(v/o.MidGray) - o.MinStops) / (o.MaxStops - o.MinStops)
	}
	return v
}

// ACEScct toe constants.
const (
	ACEScctA     = 10.5402377416545
	ACEScctB     = 0.0729055341958355
	ACEScctBreak = 0.155251141552511

	// Log2Floor keeps the log2 shaper finite for non-positive input.
	Log2Floor = 1e-10
)

func (d CDL) apply(c RGB) RGB {
	var out RGB
	for i := range 3 {
		v := c[i]*d.Slope[i] + d.Offset[i]
		out[i] = math.Pow(math.Max(v, 0), d.Power[i])
	}
	return saturate(out, d.Saturation)
}

func (d CDL) applyInverse(c RGB) RGB {
	if d.Saturation != 0 {
		c = saturate(c, 1/d.Saturation)
	}
	var out RGB
	for i := range 3 {
		v := math.Pow(math.Max(c[i], 0), 1/d.Power[i])
		if d.Slope[i] != 0 {
			v = (v - d.Offset[i]) / d.Slope[i]
		}
		out[i] = v
	}
	return out
}

// IsIdentity reports whether the decision leaves colours unchanged.
func (d CDL) IsIdentity() bool {
	return d.Slope == RGB{1, 1, 1} && d.Offset == RGB{} && d.Power == RGB{1, 1, 1} && d.Saturation == 1
}

func saturate(c RGB, sat float64) RGB {
	luma := c[0]*LumaWeights[0] + c[1]*LumaWeights[1] + c[2]*LumaWeights[2]
	return RGB{
		luma + sat*(c[0]-luma),
		luma + sat*(c[1]-luma),
		luma + sat*(c[2]-luma),
	}
}

func mul3(m [9]float64, c RGB) RGB {
	return RGB{
		m[0]*c[0] + m[1]*c[1] + m[2]*c[2],
		m[3]*c[0] + m[4]*c[1] + m[5]*c[2],
		m[6]*c[0] + m[7]*c[1] + m[8]*c[2],
	}
}

func invert3(m [9]float64) ([9]float64, bool) {
	det := m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
	if math.Abs(det) < 1e-12 {
		return [9]float64{}, false
	}
	inv := 1 / det
	return [9]float64{
		(m[4]*m[8] - m[5]*m[7]) * inv,
		(m[2]*m[7] - m[1]*m[8]) * inv,
		(m[1]*m[5] - m[2]*m[4]) * inv,
		(m[5]*m[6] - m[3]*m[8]) * inv,
		(m[0]*m[8] - m[2]*m[6]) * inv,
		(m[2]*m[3] - m[0]*m[5]) * inv,
		(m[3]*m[7] - m[4]*m[6]) * inv,
		(m[1]*m[6] - m[0]*m[7]) * inv,
		(m[0]*m[4] - m[1]*m[3]) * inv,
	}, true
}

// IdentityMatrix is the 3x3 identity.
var IdentityMatrix = [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package compiler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.trai.ch/hue/internal/core/domain"
)

// Binding slots of the generated module. Every resource lives in group 0.
const (
	UniformBinding      = 0
	SamplerBinding      = 1
	FirstTextureBinding = 2
)

// Generated entry points.
const (
	Language     = "wgsl"
	EntryPoint   = "fs_main"
	FunctionName = "display_transform"
)

var handleLayout = map[string]domain.Handle{
	domain.DynamicExposure:     {Name: domain.DynamicExposure, Offset: domain.UniformExposureSlot, Components: 1},
	domain.DynamicBypass:       {Name: domain.DynamicBypass, Offset: domain.UniformBypassSlot, Components: 1},
	domain.DynamicGradePrimary: {Name: domain.DynamicGradePrimary, Offset: domain.UniformGradeSlot, Components: domain.UniformGradeLen},
	domain.DynamicChannel:      {Name: domain.DynamicChannel, Offset: domain.UniformChannelSlot, Components: 1},
}

// module is the output of one generation pass.
type module struct {
	source   string
	textures []domain.Texture
	handles  []domain.Handle
}

type generator struct {
	graph    *domain.TransformGraph
	textures []domain.Texture
	helpers  map[string]bool
	body     strings.Builder
}

// generate renders g as a WGSL fragment module.
func generate(g *domain.TransformGraph) (module, error) {
	gen := &generator{graph: g, helpers: make(map[string]bool)}

	for i, stage := range g.Stages {
		if err := gen.stage(i, stage); err != nil {
			return module{}, err
		}
	}
	gen.displayTransform()

	var handles []domain.Handle
	for _, d := range g.Dynamics {
		if h, ok := handleLayout[d.Name]; ok {
			handles = append(handles, h)
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "// %s viewer, config %s, working space %s\n\n", g.Viewer, g.Config, g.Working)
	if len(handles) > 0 {
		out.WriteString("struct DynamicParams {\n")
		out.WriteString("    scalars: vec4<f32>,\n")
		out.WriteString("    grade_offset: vec4<f32>,\n")
		out.WriteString("    grade_gain: vec4<f32>,\n")
		out.WriteString("    grade_gamma: vec4<f32>,\n")
		out.WriteString("};\n\n")
		fmt.Fprintf(&out, "@group(0) @binding(%d) var<uniform> params: DynamicParams;\n", UniformBinding)
	}
	if len(gen.textures) > 0 {
		fmt.Fprintf(&out, "@group(0) @binding(%d) var lut_sampler: sampler;\n", SamplerBinding)
		for _, t := range gen.textures {
			kind := "texture_2d<f32>"
			if t.Dim == 3 {
				kind = "texture_3d<f32>"
			}
			fmt.Fprintf(&out, "@group(0) @binding(%d) var %s: %s;\n", t.Binding, t.Name, kind)
		}
	}
	if len(handles) > 0 || len(gen.textures) > 0 {
		out.WriteString("\n")
	}

	for _, name := range helperOrder {
		if gen.helpers[name] {
			out.WriteString(helperSource[name])
			out.WriteString("\n")
		}
	}
	out.WriteString(gen.body.String())

	out.WriteString("@fragment\n")
	fmt.Fprintf(&out, "fn %s(@location(0) color: vec4<f32>) -> @location(0) vec4<f32> {\n", EntryPoint)
	fmt.Fprintf(&out, "    return %s(color);\n", FunctionName)
	out.WriteString("}\n")

	return module{source: out.String(), textures: gen.textures, handles: handles}, nil
}

func stageFunc(i int, kind domain.StageKind) string {
	return fmt.Sprintf("stage_%d_%s", i, kind)
}

func (gen *generator) stage(i int, stage domain.Stage) error {
	b := &gen.body
	fmt.Fprintf(b, "// %s\n", stage.Name)
	fmt.Fprintf(b, "fn %s(c_in: vec3<f32>) -> vec3<f32> {\n", stageFunc(i, stage.Kind))
	b.WriteString("    var c = c_in;\n")

	if stage.Grade != nil {
		g := stage.Grade
		if err := g.Validate(); err != nil {
			return err
		}
		gen.helpers["saturation"] = true
		fmt.Fprintf(b, "    c = pow(max(c * %s + %s, vec3<f32>(0.0)), %s);\n",
			vec3(g.Gain), vec3(g.Offset), vec3(reciprocal(g.Gamma)))
		fmt.Fprintf(b, "    c = apply_saturation(c, %s);\n", float(g.Saturation))
	}
	for _, op := range stage.Ops {
		if err := op.Validate(); err != nil {
			return err
		}
		if err := gen.op(op); err != nil {
			return err
		}
	}

	b.WriteString("    return c;\n}\n\n")
	return nil
}

func (gen *generator) op(op domain.Op) error {
	b := &gen.body
	switch op.Kind {
	case domain.OpMatrix:
		m := op.Matrix
		// mat3x3 takes its arguments column by column.
		cols := []float64{m[0], m[3], m[6], m[1], m[4], m[7], m[2], m[5], m[8]}
		args := make([]string, len(cols))
		for i, v := range cols {
			args[i] = float(v)
		}
		fmt.Fprintf(b, "    c = mat3x3<f32>(%s) * c", strings.Join(args, ", "))
		if op.Offset != (domain.RGB{}) {
			fmt.Fprintf(b, " + %s", vec3(op.Offset))
		}
		b.WriteString(";\n")

	case domain.OpExponent:
		e := op.Exponent
		if op.Inverse {
			e = reciprocal(e)
		}
		fmt.Fprintf(b, "    c = pow(max(c, vec3<f32>(0.0)), %s);\n", vec3(e))

	case domain.OpTransfer:
		gen.transfer(op)

	case domain.OpCDL:
		gen.helpers["saturation"] = true
		d := op.CDL
		if !op.Inverse {
			fmt.Fprintf(b, "    c = pow(max(c * %s + %s, vec3<f32>(0.0)), %s);\n", vec3(d.Slope), vec3(d.Offset), vec3(d.Power))
			fmt.Fprintf(b, "    c = apply_saturation(c, %s);\n", float(d.Saturation))
			break
		}
		if d.Saturation != 0 {
			fmt.Fprintf(b, "    c = apply_saturation(c, %s);\n", float(1/d.Saturation))
		}
		var sub, div domain.RGB
		for i := range 3 {
			div[i] = 1
			if d.Slope[i] != 0 {
				sub[i], div[i] = d.Offset[i], d.Slope[i]
			}
		}
		fmt.Fprintf(b, "    c = (pow(max(c, vec3<f32>(0.0)), %s) - %s) / %s;\n", vec3(reciprocal(d.Power)), vec3(sub), vec3(div))

	case domain.OpRange:
		fmt.Fprintf(b, "    c = clamp(c, %s, %s);\n", vec3(op.Min), vec3(op.Max))

	case domain.OpLUT1D, domain.OpLUT3D:
		gen.lut(op)

	default:
		return op.Validate()
	}
	return nil
}

func (gen *generator) transfer(op domain.Op) {
	b := &gen.body
	if op.Transfer == domain.TransferLog2 {
		span := op.MaxStops - op.MinStops
		if op.Inverse {
			fmt.Fprintf(b, "    c = (log2(max(c, vec3<f32>(%s)) / %s) - %s) / %s;\n",
				float(domain.Log2Floor), float(op.MidGray), float(op.MinStops), float(span))
		} else {
			fmt.Fprintf(b, "    c = %s * exp2(c * %s + %s);\n", float(op.MidGray), float(span), float(op.MinStops))
		}
		return
	}

	name := transferHelper(op.Transfer, op.Inverse)
	gen.helpers[name] = true
	fmt.Fprintf(b, "    c = %s(c);\n", name)
}

func transferHelper(t domain.TransferFunc, inverse bool) string {
	base := map[domain.TransferFunc]string{
		domain.TransferSRGB:    "srgb",
		domain.TransferRec709:  "rec709",
		domain.TransferGamma22: "gamma22",
		domain.TransferACEScct: "acescct",
	}[t]
	if inverse {
		return base + "_encode"
	}
	return base + "_decode"
}

func (gen *generator) lut(op domain.Op) {
	l := op.LUT
	t := domain.Texture{
		Name:    fmt.Sprintf("lut_%d", len(gen.textures)),
		Binding: uint32(FirstTextureBinding + len(gen.textures)),
		Dim:     l.Dim,
		Width:   l.Size,
		Height:  1,
		Depth:   1,
		Data:    l.Data,
	}
	if l.Dim == 3 {
		t.Height, t.Depth = l.Size, l.Size
	}
	gen.textures = append(gen.textures, t)

	// Normalise into the table domain, then onto texel centres.
	n := float64(l.Size)
	scale := (n - 1) / n
	bias := 0.5 / n
	var span domain.RGB
	for i := range 3 {
		span[i] = l.DomainMax[i] - l.DomainMin[i]
	}

	b := &gen.body
	b.WriteString("    {\n")
	fmt.Fprintf(b, "        let x = clamp((c - %s) / %s, vec3<f32>(0.0), vec3<f32>(1.0)) * %s + vec3<f32>(%s);\n",
		vec3(l.DomainMin), vec3(span), float(scale), float(bias))
	if l.Dim == 3 {
		fmt.Fprintf(b, "        c = textureSampleLevel(%s, lut_sampler, x, 0.0).rgb;\n", t.Name)
	} else {
		fmt.Fprintf(b, "        c = vec3<f32>(\n")
		fmt.Fprintf(b, "            textureSampleLevel(%s, lut_sampler, vec2<f32>(x.r, 0.5), 0.0).r,\n", t.Name)
		fmt.Fprintf(b, "            textureSampleLevel(%s, lut_sampler, vec2<f32>(x.g, 0.5), 0.0).g,\n", t.Name)
		fmt.Fprintf(b, "            textureSampleLevel(%s, lut_sampler, vec2<f32>(x.b, 0.5), 0.0).b,\n", t.Name)
		b.WriteString("        );\n")
	}
	b.WriteString("    }\n")
}

func (gen *generator) displayTransform() {
	g := gen.graph
	b := &gen.body
	fmt.Fprintf(b, "fn %s(color: vec4<f32>) -> vec4<f32> {\n", FunctionName)
	b.WriteString("    var c = color.rgb;\n")

	emitDynamics := func(after domain.StageKind) {
		for _, d := range g.DynamicsAfter(after) {
			switch d.Name {
			case domain.DynamicExposure:
				b.WriteString("    c = c * exp2(params.scalars.x);\n")
			case domain.DynamicGradePrimary:
				gen.helpers["saturation"] = true
				b.WriteString("    c = pow(max(c * params.grade_gain.xyz + params.grade_offset.xyz, vec3<f32>(0.0)), vec3<f32>(1.0) / params.grade_gamma.xyz);\n")
				b.WriteString("    c = apply_saturation(c, params.grade_gain.w);\n")
			}
		}
	}

	for i, stage := range g.Stages {
		fmt.Fprintf(b, "    c = %s(c);\n", stageFunc(i, stage.Kind))
		emitDynamics(stage.Kind)
	}

	if g.HasDynamic(domain.DynamicBypass) {
		b.WriteString("    let shown = vec4<f32>(select(c, color.rgb, params.scalars.y > 0.5), color.a);\n")
	} else {
		b.WriteString("    let shown = vec4<f32>(c, color.a);\n")
	}
	// Channel isolation applies to bypassed pixels too.
	if g.HasDynamic(domain.DynamicChannel) {
		gen.helpers["channel"] = true
		b.WriteString("    return isolate_channel(shown, params.scalars.z);\n")
	} else {
		b.WriteString("    return shown;\n")
	}
	b.WriteString("}\n\n")
}

var helperOrder = []string{
	"saturation",
	"channel",
	"srgb_decode", "srgb_encode",
	"rec709_decode", "rec709_encode",
	"gamma22_decode", "gamma22_encode",
	"acescct_decode", "acescct_encode",
}

var helperSource = map[string]string{
	"saturation": `fn apply_saturation(c: vec3<f32>, sat: f32) -> vec3<f32> {
    let luma = vec3<f32>(dot(c, ` + vec3(domain.LumaWeights) + `));
    return luma + sat * (c - luma);
}
`,
	"channel": `fn isolate_channel(c: vec4<f32>, channel: f32) -> vec4<f32> {
    let k = i32(channel + 0.5);
    var v = c.rgb;
    if k == ` + channelIndex(domain.ChannelRed) + ` {
        v = c.rrr;
    } else if k == ` + channelIndex(domain.ChannelGreen) + ` {
        v = c.ggg;
    } else if k == ` + channelIndex(domain.ChannelBlue) + ` {
        v = c.bbb;
    } else if k == ` + channelIndex(domain.ChannelAlpha) + ` {
        return vec4<f32>(c.aaa, 1.0);
    } else if k == ` + channelIndex(domain.ChannelLuminance) + ` {
        v = vec3<f32>(dot(c.rgb, ` + vec3(domain.LumaWeights) + `));
    }
    return vec4<f32>(v, c.a);
}
`,
	"srgb_decode": `fn srgb_decode(v: vec3<f32>) -> vec3<f32> {
    return select(pow((v + vec3<f32>(0.055)) / 1.055, vec3<f32>(2.4)), v / 12.92, v <= vec3<f32>(0.04045));
}
`,
	"srgb_encode": `fn srgb_encode(v: vec3<f32>) -> vec3<f32> {
    return select(1.055 * pow(max(v, vec3<f32>(0.0)), vec3<f32>(1.0 / 2.4)) - vec3<f32>(0.055), v * 12.92, v <= vec3<f32>(0.0031308));
}
`,
	"rec709_decode": `fn rec709_decode(v: vec3<f32>) -> vec3<f32> {
    return select(pow((v + vec3<f32>(0.099)) / 1.099, vec3<f32>(1.0 / 0.45)), v / 4.5, v < vec3<f32>(0.081));
}
`,
	"rec709_encode": `fn rec709_encode(v: vec3<f32>) -> vec3<f32> {
    return select(1.099 * pow(max(v, vec3<f32>(0.0)), vec3<f32>(0.45)) - vec3<f32>(0.099), v * 4.5, v < vec3<f32>(0.018));
}
`,
	"gamma22_decode": `fn gamma22_decode(v: vec3<f32>) -> vec3<f32> {
    return pow(max(v, vec3<f32>(0.0)), vec3<f32>(2.2));
}
`,
	"gamma22_encode": `fn gamma22_encode(v: vec3<f32>) -> vec3<f32> {
    return pow(max(v, vec3<f32>(0.0)), vec3<f32>(1.0 / 2.2));
}
`,
	"acescct_decode": `fn acescct_decode(v: vec3<f32>) -> vec3<f32> {
    return select(exp2(v * 17.52 - vec3<f32>(9.72)), (v - vec3<f32>(` + float(domain.ACEScctB) + `)) / ` + float(domain.ACEScctA) + `, v <= vec3<f32>(` + float(domain.ACEScctBreak) + `));
}
`,
	"acescct_encode": `fn acescct_encode(v: vec3<f32>) -> vec3<f32> {
    return select((log2(max(v, vec3<f32>(` + float(domain.Log2Floor) + `))) + vec3<f32>(9.72)) / 17.52, v * ` + float(domain.ACEScctA) + ` + vec3<f32>(` + float(domain.ACEScctB) + `), v <= vec3<f32>(0.0078125));
}
`,
}

// float formats v as a WGSL float literal.
func float(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func vec3(v domain.RGB) string {
	return fmt.Sprintf("vec3<f32>(%s, %s, %s)", float(v[0]), float(v[1]), float(v[2]))
}

func reciprocal(v domain.RGB) domain.RGB {
	var out domain.RGB
	for i := range 3 {
		out[i] = 1 / v[i]
		if math.IsInf(out[i], 0) {
			out[i] = 1
		}
	}
	return out
}

func channelIndex(c domain.Channel) string {
	return strconv.Itoa(int(c))
}

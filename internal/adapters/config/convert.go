package config

import (
	"fmt"
	"io/fs"
	"path"

	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/zerr"
)

// converter turns DTOs into domain values. LUT files resolve relative to dir
// inside fsys.
type converter struct {
	fsys fs.FS
	dir  string
}

func (c converter) definition(name, origin string, file *ConfigFile) (domain.ConfigDefinition, error) {
	def := domain.ConfigDefinition{
		Name:        name,
		Description: file.Description,
		Path:        origin,
		Roles: domain.Roles{
			Reference:   file.Roles.Reference,
			SceneLinear: file.Roles.SceneLinear,
			Default:     file.Roles.Default,
			Data:        file.Roles.Data,
		},
		ActiveDisplays: file.ActiveDisplays,
		ActiveViews:    file.ActiveViews,
	}

	for _, dto := range file.ColorSpaces {
		to, err := c.ops(dto.ToReference)
		if err != nil {
			return def, zerr.With(err, "colorspace", dto.Name)
		}
		from, err := c.ops(dto.FromReference)
		if err != nil {
			return def, zerr.With(err, "colorspace", dto.Name)
		}
		def.ColorSpaces = append(def.ColorSpaces, domain.ColorSpace{
			Name:          dto.Name,
			Family:        dto.Family,
			Description:   dto.Description,
			Aliases:       dto.Aliases,
			IsData:        dto.IsData,
			ToReference:   to,
			FromReference: from,
		})
	}

	for _, dto := range file.Looks {
		ops, err := c.ops(dto.Ops)
		if err != nil {
			return def, zerr.With(err, "look", dto.Name)
		}
		def.Looks = append(def.Looks, domain.Look{Name: dto.Name, Description: dto.Description, Ops: ops})
	}

	for _, dto := range file.Displays {
		d := domain.Display{Name: dto.Name, Monitors: dto.Monitors}
		for _, v := range dto.Views {
			d.Views = append(d.Views, domain.View{Name: v.Name, ColorSpace: v.ColorSpace, Look: v.Look})
		}
		def.Displays = append(def.Displays, d)
	}

	return def, nil
}

func (c converter) ops(dtos []OpDTO) ([]domain.Op, error) {
	out := make([]domain.Op, 0, len(dtos))
	for i, dto := range dtos {
		op, err := c.op(dto)
		if err != nil {
			return nil, zerr.With(err, "op_index", i)
		}
		out = append(out, op)
	}
	return out, nil
}

//nolint:cyclop // One branch per operator kind.
func (c converter) op(dto OpDTO) (domain.Op, error) {
	set := 0
	for _, present := range []bool{
		dto.Matrix != nil, dto.Exponent != nil, dto.Transfer != "",
		dto.CDL != nil, dto.LUT1D != nil, dto.LUT3D != nil, dto.Range != nil,
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		return domain.Op{}, invalid(fmt.Sprintf("an operator needs exactly one kind, got %d", set))
	}

	op := domain.Op{Inverse: dto.Inverse}
	var err error
	switch {
	case dto.Matrix != nil:
		op.Kind = domain.OpMatrix
		if len(dto.Matrix) != 9 {
			return op, invalid(fmt.Sprintf("matrix needs 9 values, got %d", len(dto.Matrix)))
		}
		copy(op.Matrix[:], dto.Matrix)
		if dto.Offset != nil {
			op.Offset, err = triple("offset", dto.Offset, 0)
		}
		if dto.Inverse {
			op.Inverse = false
			op, err = op.Invert()
		}
	case dto.Exponent != nil:
		op.Kind = domain.OpExponent
		op.Exponent, err = triple("exponent", dto.Exponent, 1)
	case dto.Transfer != "":
		op.Kind = domain.OpTransfer
		op.Transfer = domain.TransferFunc(dto.Transfer)
		if op.Transfer == domain.TransferLog2 {
			op.MinStops, op.MaxStops, op.MidGray = -6.5, 6.5, 0.18
			if dto.MinStops != nil {
				op.MinStops = *dto.MinStops
			}
			if dto.MaxStops != nil {
				op.MaxStops = *dto.MaxStops
			}
			if dto.MidGray != nil {
				op.MidGray = *dto.MidGray
			}
		}
	case dto.CDL != nil:
		op.Kind = domain.OpCDL
		op.CDL, err = cdl(dto.CDL)
	case dto.LUT1D != nil:
		op.Kind = domain.OpLUT1D
		op.LUT, err = c.lut(dto.LUT1D, 1)
	case dto.LUT3D != nil:
		op.Kind = domain.OpLUT3D
		op.LUT, err = c.lut(dto.LUT3D, 3)
	case dto.Range != nil:
		op.Kind = domain.OpRange
		op.Min, err = triple("range min", dto.Range.Min, 0)
		if err == nil {
			op.Max, err = triple("range max", dto.Range.Max, 1)
		}
	}
	if err != nil {
		return domain.Op{}, err
	}
	if op.Baked() && dto.Inverse {
		return domain.Op{}, zerr.Wrap(domain.ErrInvalidConfig, "lookup tables cannot be declared inverse")
	}
	return op, nil
}

func cdl(dto *CDLDTO) (domain.CDL, error) {
	out := domain.IdentityCDL()
	var err error
	if dto.Slope != nil {
		if out.Slope, err = triple("slope", dto.Slope, 1); err != nil {
			return out, err
		}
	}
	if dto.Offset != nil {
		if out.Offset, err = triple("offset", dto.Offset, 0); err != nil {
			return out, err
		}
	}
	if dto.Power != nil {
		if out.Power, err = triple("power", dto.Power, 1); err != nil {
			return out, err
		}
	}
	if dto.Saturation != nil {
		out.Saturation = *dto.Saturation
	}
	return out, nil
}

func (c converter) lut(dto *LUTDTO, dim int) (*domain.LUT, error) {
	if dto.File != "" {
		p := path.Join(c.dir, dto.File)
		data, err := fs.ReadFile(c.fsys, p)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrLUTParse, err.Error()), "lut", dto.File)
		}
		lut, err := ParseCube(dto.File, data)
		if err != nil {
			return nil, err
		}
		if lut.Dim != dim {
			return nil, zerr.With(zerr.Wrap(domain.ErrLUTParse,
				fmt.Sprintf("expected a %d-D table, file holds %d-D", dim, lut.Dim)), "lut", dto.File)
		}
		return lut, nil
	}

	lut := &domain.LUT{Name: "inline", Dim: dim, DomainMin: domain.RGB{0, 0, 0}, DomainMax: domain.RGB{1, 1, 1}}
	var err error
	if dto.DomainMin != nil {
		if lut.DomainMin, err = triple("domain_min", dto.DomainMin, 0); err != nil {
			return nil, err
		}
	}
	if dto.DomainMax != nil {
		if lut.DomainMax, err = triple("domain_max", dto.DomainMax, 1); err != nil {
			return nil, err
		}
	}
	for _, v := range dto.Values {
		rgb, err := triple("lut entry", v, 0)
		if err != nil {
			return nil, err
		}
		lut.Data = append(lut.Data, float32(rgb[0]), float32(rgb[1]), float32(rgb[2]))
	}
	lut.Size = len(dto.Values)
	if dim == 3 {
		lut.Size = cubeRoot(len(dto.Values))
	}
	if err := lut.Validate(); err != nil {
		return nil, err
	}
	return lut, nil
}

func cubeRoot(n int) int {
	for s := 0; s*s*s <= n; s++ {
		if s*s*s == n {
			return s
		}
	}
	return 0
}

// triple expands one value to three channels, accepts three, or uses def when empty.
func triple(field string, v []float64, def float64) (domain.RGB, error) {
	switch len(v) {
	case 0:
		return domain.RGB{def, def, def}, nil
	case 1:
		return domain.RGB{v[0], v[0], v[0]}, nil
	case 3:
		return domain.RGB{v[0], v[1], v[2]}, nil
	default:
		return domain.RGB{}, invalid(fmt.Sprintf("%s needs 1 or 3 values, got %d", field, len(v)))
	}
}

func invalid(msg string) error {
	return zerr.Wrap(domain.ErrInvalidConfig, msg)
}

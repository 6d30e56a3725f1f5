package config

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/zerr"
)

// ParseCube parses an Adobe/Resolve .cube lookup table.
func ParseCube(name string, data []byte) (*domain.LUT, error) {
	lut := &domain.LUT{
		Name:      name,
		DomainMin: domain.RGB{0, 0, 0},
		DomainMax: domain.RGB{1, 1, 1},
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		var err error
		switch fields[0] {
		case "TITLE":
		case "LUT_1D_INPUT_RANGE", "LUT_3D_INPUT_RANGE":
			err = parseInputRange(lut, fields[1:])
		case "LUT_1D_SIZE", "LUT_3D_SIZE":
			lut.Dim = 1
			if fields[0] == "LUT_3D_SIZE" {
				lut.Dim = 3
			}
			if len(fields) != 2 {
				err = fmt.Errorf("%s expects one value", fields[0])
				break
			}
			lut.Size, err = strconv.Atoi(fields[1])
		case "DOMAIN_MIN":
			lut.DomainMin, err = parseTriple(fields[1:])
		case "DOMAIN_MAX":
			lut.DomainMax, err = parseTriple(fields[1:])
		default:
			var rgb domain.RGB
			rgb, err = parseTriple(fields)
			if err == nil {
				lut.Data = append(lut.Data, float32(rgb[0]), float32(rgb[1]), float32(rgb[2]))
			}
		}
		if err != nil {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrLUTParse, err.Error()), "lut", name), "line", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLUTParse, err.Error()), "lut", name)
	}

	if lut.Dim == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrLUTParse, "missing LUT_1D_SIZE or LUT_3D_SIZE"), "lut", name)
	}
	if err := lut.Validate(); err != nil {
		return nil, err
	}
	return lut, nil
}

func parseInputRange(lut *domain.LUT, fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("input range expects two values")
	}
	lo, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return err
	}
	hi, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return err
	}
	lut.DomainMin = domain.RGB{lo, lo, lo}
	lut.DomainMax = domain.RGB{hi, hi, hi}
	return nil
}

func parseTriple(fields []string) (domain.RGB, error) {
	var out domain.RGB
	if len(fields) != 3 {
		return out, fmt.Errorf("expected 3 values, got %d", len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

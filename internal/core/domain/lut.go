package domain

import (
	"fmt"
	"math"

	"go.trai.ch/zerr"
)

// LUT is a baked lookup table. Data holds RGB triplets; for 3-D tables the red
// index varies fastest, matching the .cube layout.
type LUT struct {
	Name      string
	Dim       int
	Size      int
	DomainMin RGB
	DomainMax RGB
	Data      []float32
}

// Entries returns the number of RGB triplets the table should hold.
func (l *LUT) Entries() int {
	if l.Dim == 3 {
		return l.Size * l.Size * l.Size
	}
	return l.Size
}

// Validate checks the table's geometry against its data.
func (l *LUT) Validate() error {
	if l.Dim != 1 && l.Dim != 3 {
		return l.fail(fmt.Sprintf("unsupported dimension %d", l.Dim))
	}
	if l.Size < 2 {
		return l.fail("size must be at least 2")
	}
	if len(l.Data) != l.Entries()*3 {
		return l.fail(fmt.Sprintf("expected %d values, got %d", l.Entries()*3, len(l.Data)))
	}
	for i := range 3 {
		if l.DomainMax[i] <= l.DomainMin[i] {
			return l.fail("domain max must exceed domain min")
		}
	}
	return nil
}

func (l *LUT) fail(msg string) error {
	return zerr.With(zerr.Wrap(ErrLUTParse, msg), "lut", l.Name)
}

// normalize maps a channel value into continuous table coordinates.
func (l *LUT) normalize(v float64, ch int) float64 {
	x := (v - l.DomainMin[ch]) / (l.DomainMax[ch] - l.DomainMin[ch])
	x = math.Min(math.Max(x, 0), 1)
	return x * float64(l.Size-1)
}

// Sample1D looks up each channel independently with linear interpolation.
func (l *LUT) Sample1D(c RGB) RGB {
	var out RGB
	for ch := range 3 {
		pos := l.normalize(c[ch], ch)
		i0 := int(math.Floor(pos))
		i1 := min(i0+1, l.Size-1)
		f := pos - float64(i0)
		a := float64(l.Data[i0*3+ch])
		b := float64(l.Data[i1*3+ch])
		out[ch] = a + (b-a)*f
	}
	return out
}

// Sample3D looks up a colour with trilinear interpolation.
func (l *LUT) Sample3D(c RGB) RGB {
	var (
		lo, hi [3]int
		frac   [3]float64
	)
	for ch := range 3 {
		pos := l.normalize(c[ch], ch)
		lo[ch] = int(math.Floor(pos))
		hi[ch] = min(lo[ch]+1, l.Size-1)
		frac[ch] = pos - float64(lo[ch])
	}

	var out RGB
	for corner := range 8 {
		idx := [3]int{lo[0], lo[1], lo[2]}
		w := 1.0
		for ch := range 3 {
			if corner&(1<<ch) != 0 {
				idx[ch] = hi[ch]
				w *= frac[ch]
			} else {
				w *= 1 - frac[ch]
			}
		}
		if w == 0 {
			continue
		}
		base := ((idx[2]*l.Size+idx[1])*l.Size + idx[0]) * 3
		for ch := range 3 {
			out[ch] += w * float64(l.Data[base+ch])
		}
	}
	return out
}

// Package cdl reads ASC colour decision lists (.cc, .ccc and .cdl files).
package cdl

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/zerr"
)

type colorCorrection struct {
	ID  string  `xml:"id,attr"`
	SOP sopNode `xml:"SOPNode"`
	Sat satNode `xml:"SatNode"`
	// Some writers use the upper-case spelling.
	SatAlt satNode `xml:"SATNode"`
}

type sopNode struct {
	Slope  string `xml:"Slope"`
	Offset string `xml:"Offset"`
	Power  string `xml:"Power"`
}

type satNode struct {
	Saturation string `xml:"Saturation"`
}

type document struct {
	XMLName     xml.Name
	ID          string            `xml:"id,attr"`
	SOP         sopNode           `xml:"SOPNode"`
	Sat         satNode           `xml:"SatNode"`
	SatAlt      satNode           `xml:"SATNode"`
	Corrections []colorCorrection `xml:"ColorCorrection"`
	Decisions   []struct {
		Corrections []colorCorrection `xml:"ColorCorrection"`
	} `xml:"ColorDecision"`
}

// Reader implements ports.GradeListReader on the local filesystem.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the decision with the given id from the file at path.
func (r *Reader) Read(path, id string) (domain.CDL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.CDL{}, zerr.With(zerr.Wrap(domain.ErrGradeListParse, err.Error()), "grade_list", path)
	}
	return Parse(path, data, id)
}

// Parse decodes a decision list and selects the correction with the given id.
// An empty id selects the first correction.
func Parse(name string, data []byte, id string) (domain.CDL, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return domain.CDL{}, parseError(name, err.Error())
	}

	var corrections []colorCorrection
	switch doc.XMLName.Local {
	case "ColorCorrection":
		corrections = []colorCorrection{{ID: doc.ID, SOP: doc.SOP, Sat: doc.Sat, SatAlt: doc.SatAlt}}
	case "ColorCorrectionCollection":
		corrections = doc.Corrections
	case "ColorDecisionList":
		for _, d := range doc.Decisions {
			corrections = append(corrections, d.Corrections...)
		}
	default:
		return domain.CDL{}, parseError(name, fmt.Sprintf("unexpected root element %q", doc.XMLName.Local))
	}
	if len(corrections) == 0 {
		return domain.CDL{}, parseError(name, "no ColorCorrection elements")
	}

	for _, cc := range corrections {
		if id == "" || cc.ID == id {
			return cc.decision(name)
		}
	}
	return domain.CDL{}, zerr.With(zerr.With(
		zerr.Wrap(domain.ErrResolution, fmt.Sprintf("grade %q not found in %s", id, name)),
		"grade_list", name), "grade_list_id", id)
}

func (cc colorCorrection) decision(name string) (domain.CDL, error) {
	out := domain.IdentityCDL()
	out.ID = cc.ID

	var err error
	if out.Slope, err = triple(name, "Slope", cc.SOP.Slope, out.Slope); err != nil {
		return domain.CDL{}, err
	}
	if out.Offset, err = triple(name, "Offset", cc.SOP.Offset, out.Offset); err != nil {
		return domain.CDL{}, err
	}
	if out.Power, err = triple(name, "Power", cc.SOP.Power, out.Power); err != nil {
		return domain.CDL{}, err
	}

	sat := cc.Sat.Saturation
	if strings.TrimSpace(sat) == "" {
		sat = cc.SatAlt.Saturation
	}
	if s := strings.TrimSpace(sat); s != "" {
		v, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return domain.CDL{}, parseError(name, "invalid Saturation "+strconv.Quote(s))
		}
		out.Saturation = v
	}
	return out, nil
}

func triple(name, field, text string, def domain.RGB) (domain.RGB, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return def, nil
	}
	if len(fields) != 3 {
		return def, parseError(name, fmt.Sprintf("%s needs 3 values, got %d", field, len(fields)))
	}
	var out domain.RGB
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return def, parseError(name, fmt.Sprintf("invalid %s value %q", field, f))
		}
		out[i] = v
	}
	return out, nil
}

func parseError(name, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrGradeListParse, msg), "grade_list", name)
}

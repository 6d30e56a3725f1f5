package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/hue/internal/core/domain"
)

const defaultSource = "cli"

// addParamsFlags registers the flags that build a params override.
func addParamsFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("params", "", "JSON params override, inline or @file")
	f.String("config", "", "Colour configuration name or path")
	f.String("colorspace", "", "Input colour space")
	f.String("display", "", "Display")
	f.String("view", "", "View")
	f.String("look", "", "Look applied after the view")
	f.String("grade-list", "", "ASC CDL file (.cc, .ccc, .cdl)")
	f.String("grade-list-id", "", "Correction id inside the grade list")
	f.Bool("bypass", false, "Bypass every transform")
}

// overrideFromFlags layers explicitly set flags over the --params payload.
func overrideFromFlags(cmd *cobra.Command) (*domain.ParamsOverride, error) {
	f := cmd.Flags()

	raw, _ := f.GetString("params")
	if strings.HasPrefix(raw, "@") {
		data, err := os.ReadFile(raw[1:])
		if err != nil {
			return nil, err
		}
		raw = string(data)
	}
	o, err := domain.ParseOverride([]byte(raw))
	if err != nil {
		return nil, err
	}
	if o == nil {
		o = &domain.ParamsOverride{}
	}

	str := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}
	setMeta := func(name, key string) {
		if v := str(name); v != nil {
			if o.Metadata == nil {
				o.Metadata = domain.Metadata{}
			}
			o.Metadata[key] = *v
		}
	}

	if v := str("config"); v != nil {
		o.ConfigName = v
	}
	if v := str("colorspace"); v != nil {
		o.Colorspace = v
	}
	if v := str("display"); v != nil {
		o.Display = v
	}
	if v := str("view"); v != nil {
		o.View = v
	}
	setMeta("look", domain.MetaLook)
	setMeta("grade-list", domain.MetaGradeList)
	setMeta("grade-list-id", domain.MetaGradeListID)
	if f.Changed("bypass") {
		b, _ := f.GetBool("bypass")
		o.Bypass = &b
	}

	if o.IsEmpty() {
		return nil, nil
	}
	return o, nil
}

func sourceArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultSource
}

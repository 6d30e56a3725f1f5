package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// ParamsOverride is an explicit, optional set of per-call changes to a source's
// stored params. A nil field inherits the stored value. A present empty string
// clears the stored user choice so the default applies again. Metadata merges
// key by key; an empty value removes the key.
type ParamsOverride struct {
	ConfigName *string         `json:"config,omitempty"`
	Colorspace *string         `json:"input_colorspace,omitempty"`
	Display    *string         `json:"display,omitempty"`
	View       *string         `json:"view,omitempty"`
	Bypass     *bool           `json:"bypass,omitempty"`
	Primary    *GradingPrimary `json:"grading_primary,omitempty"`
	Metadata   Metadata        `json:"metadata,omitempty"`
}

// Ptr returns a pointer to v, for building overrides inline.
func Ptr[T any](v T) *T {
	return &v
}

// ParseOverride decodes a host supplied JSON override. Empty input yields nil.
func ParseOverride(data []byte) (*ParamsOverride, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var o ParamsOverride
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, zerr.Wrap(ErrInvalidOverride, err.Error())
	}
	return &o, nil
}

// IsEmpty reports whether applying the override would change nothing.
func (o *ParamsOverride) IsEmpty() bool {
	return o == nil || (o.ConfigName == nil && o.Colorspace == nil && o.Display == nil &&
		o.View == nil && o.Bypass == nil && o.Primary == nil && len(o.Metadata) == 0)
}

// Apply merges the override over p and returns the result; p is not modified.
func (o *ParamsOverride) Apply(p MediaParams) MediaParams {
	out := p.Clone()
	if o == nil {
		return out
	}
	if o.ConfigName != nil && *o.ConfigName != out.ConfigName {
		out.ConfigName = *o.ConfigName
		// A different config invalidates names chosen against the old one.
		out.Config = nil
		out.UserColorspace, out.UserDisplay, out.UserView = "", "", ""
	}
	if o.Colorspace != nil {
		out.UserColorspace = *o.Colorspace
	}
	if o.Display != nil {
		out.UserDisplay = *o.Display
	}
	if o.View != nil {
		out.UserView = *o.View
	}
	if o.Bypass != nil {
		out.Bypass = *o.Bypass
	}
	if o.Primary != nil {
		out.Primary = *o.Primary
	}
	for k, v := range o.Metadata {
		if v == "" {
			delete(out.Metadata, k)
			continue
		}
		out.Metadata[k] = v
	}
	return out
}

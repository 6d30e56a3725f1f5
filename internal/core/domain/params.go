package domain

import "maps"

// Metadata keys that influence the transform graph. Every other key is opaque.
const (
	MetaInputColorspace = "input_colorspace"
	MetaLook            = "look"
	MetaGradeList       = "grade_list"
	MetaGradeListID     = "grade_list_id"
)

// TransformMetadataKeys lists the metadata keys that change the built graph,
// sorted. The input colour space hint is absent: it only matters through the
// effective Colorspace it resolves to.
var TransformMetadataKeys = []string{MetaGradeList, MetaGradeListID, MetaLook}

// Metadata is the opaque key/value payload a media source carries.
type Metadata map[string]string

// MediaParams is the per-source colour state. The User* fields hold explicit
// choices (empty means inherit); Colorspace, Display, PopoutDisplay and View
// hold the effective values filled in by the resolver.
type MediaParams struct {
	SourceID   string
	ConfigName string
	Config     *Config
	Metadata   Metadata

	UserColorspace string
	UserDisplay    string
	UserView       string
	Bypass         bool
	Primary        GradingPrimary

	Colorspace    string
	Display       string
	PopoutDisplay string
	View          string
}

// NewMediaParams returns unresolved defaults for a source.
func NewMediaParams(sourceID string) MediaParams {
	return MediaParams{
		SourceID: sourceID,
		Metadata: Metadata{},
		Primary:  IdentityPrimary(),
	}
}

// Clone returns a copy that shares only the immutable Config.
func (p MediaParams) Clone() MediaParams {
	out := p
	out.Metadata = maps.Clone(p.Metadata)
	if out.Metadata == nil {
		out.Metadata = Metadata{}
	}
	return out
}

// Resolved reports whether the params satisfy the builder's preconditions.
func (p MediaParams) Resolved() bool {
	return p.Config != nil && p.Colorspace != "" && p.Display != "" && p.PopoutDisplay != "" && p.View != ""
}

// EffectiveDisplay returns the display the given viewer renders to.
func (p MediaParams) EffectiveDisplay(v Viewer) string {
	if v == ViewerPopout {
		return p.PopoutDisplay
	}
	return p.Display
}

// Look returns the look requested by metadata, if any.
func (p MediaParams) Look() string {
	return p.Metadata[MetaLook]
}

// GradeList returns the grade decision list reference carried by metadata.
func (p MediaParams) GradeList() (path, id string) {
	return p.Metadata[MetaGradeList], p.Metadata[MetaGradeListID]
}

// TransformMetadata returns the transform-relevant metadata as sorted key/value pairs.
func (p MediaParams) TransformMetadata() [][2]string {
	var out [][2]string
	for _, k := range TransformMetadataKeys {
		if v, ok := p.Metadata[k]; ok && v != "" {
			out = append(out, [2]string{k, v})
		}
	}
	return out
}

// PerConfigSettings are per-config-name viewer defaults, independent of any source.
type PerConfigSettings struct {
	Config        string `json:"config"`
	Display       string `json:"display,omitempty"`
	PopoutDisplay string `json:"popout_display,omitempty"`
	View          string `json:"view,omitempty"`
}

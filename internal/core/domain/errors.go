package domain

import "go.trai.ch/zerr"

// Taxonomy errors. Every failure surfaced by the pipeline wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	// ErrConfigLoad is returned when a colour configuration cannot be located or parsed.
	ErrConfigLoad = zerr.New("failed to load colour configuration")

	// ErrResolution is returned when a colour space, display, view, look or grade
	// list reference is missing from an otherwise valid configuration.
	ErrResolution = zerr.New("colour reference could not be resolved")

	// ErrShaderCompile is returned when the shader backend rejects a generated module.
	ErrShaderCompile = zerr.New("shader compilation failed")
)

// Refinements of the taxonomy errors. Each wraps its category, so errors.Is
// matches both the refinement and the category.
var (
	// ErrInvalidConfig is returned when a parsed configuration violates a structural rule.
	ErrInvalidConfig = zerr.Wrap(ErrConfigLoad, "invalid colour configuration")

	// ErrLUTParse is returned when a lookup table file cannot be parsed.
	ErrLUTParse = zerr.Wrap(ErrConfigLoad, "failed to parse lookup table")

	// ErrNotInvertible is returned when a transform must run backwards through an
	// operator that has no inverse.
	ErrNotInvertible = zerr.Wrap(ErrResolution, "operator is not invertible")

	// ErrMalformedGrade is returned when a grading primary holds unusable values.
	ErrMalformedGrade = zerr.Wrap(ErrResolution, "malformed grading primary")

	// ErrGradeListParse is returned when a grade decision list cannot be read.
	ErrGradeListParse = zerr.Wrap(ErrResolution, "failed to read grade decision list")
)

var (
	// ErrUnknownViewer is returned when a viewer context name is not recognised.
	ErrUnknownViewer = zerr.New("unknown viewer context, expected 'main', 'popout' or 'thumbnail'")

	// ErrInvalidBuffer is returned when a thumbnail buffer's geometry does not match its pixel data.
	ErrInvalidBuffer = zerr.New("invalid thumbnail buffer")

	// ErrInvalidOverride is returned when a parameter override payload cannot be decoded.
	ErrInvalidOverride = zerr.New("invalid parameter override")

	// ErrUnknownAttribute is returned when an attribute notification names an unknown control.
	ErrUnknownAttribute = zerr.New("unknown attribute")

	// ErrSettingsCreateFailed is returned when the settings directory cannot be created.
	ErrSettingsCreateFailed = zerr.New("failed to create settings directory")

	// ErrSettingsReadFailed is returned when persisted settings cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings")

	// ErrSettingsWriteFailed is returned when settings cannot be written.
	ErrSettingsWriteFailed = zerr.New("failed to write settings")

	// ErrSettingsMarshalFailed is returned when settings cannot be encoded.
	ErrSettingsMarshalFailed = zerr.New("failed to marshal settings")

	// ErrSettingsUnmarshalFailed is returned when persisted settings cannot be decoded.
	ErrSettingsUnmarshalFailed = zerr.New("failed to unmarshal settings")
)

package config

// ConfigFile represents the structure of a colour configuration YAML file.
type ConfigFile struct {
	Name           string          `yaml:"name"`
	Description    string          `yaml:"description"`
	Roles          RolesDTO        `yaml:"roles"`
	ActiveDisplays []string        `yaml:"active_displays"`
	ActiveViews    []string        `yaml:"active_views"`
	ColorSpaces    []ColorSpaceDTO `yaml:"colorspaces"`
	Looks          []LookDTO       `yaml:"looks"`
	Displays       []DisplayDTO    `yaml:"displays"`
}

// RolesDTO maps roles to colour space names.
type RolesDTO struct {
	Reference   string `yaml:"reference"`
	SceneLinear string `yaml:"scene_linear"`
	Default     string `yaml:"default"`
	Data        string `yaml:"data"`
}

// ColorSpaceDTO represents a colour space definition.
type ColorSpaceDTO struct {
	Name          string   `yaml:"name"`
	Family        string   `yaml:"family"`
	Description   string   `yaml:"description"`
	Aliases       []string `yaml:"aliases"`
	IsData        bool     `yaml:"is_data"`
	ToReference   []OpDTO  `yaml:"to_reference"`
	FromReference []OpDTO  `yaml:"from_reference"`
}

// LookDTO represents a look definition.
type LookDTO struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Ops         []OpDTO `yaml:"ops"`
}

// DisplayDTO represents a display and its views.
type DisplayDTO struct {
	Name     string    `yaml:"name"`
	Monitors []string  `yaml:"monitors"`
	Views    []ViewDTO `yaml:"views"`
}

// ViewDTO represents a view on a display.
type ViewDTO struct {
	Name       string `yaml:"name"`
	ColorSpace string `yaml:"colorspace"`
	Look       string `yaml:"look"`
}

// OpDTO represents one operator. Exactly one of the kind fields must be set.
type OpDTO struct {
	Matrix   []float64 `yaml:"matrix"`
	Offset   []float64 `yaml:"offset"`
	Exponent []float64 `yaml:"exponent"`
	Transfer string    `yaml:"transfer"`
	MinStops *float64  `yaml:"min_stops"`
	MaxStops *float64  `yaml:"max_stops"`
	MidGray  *float64  `yaml:"mid_gray"`
	CDL      *CDLDTO   `yaml:"cdl"`
	LUT1D    *LUTDTO   `yaml:"lut1d"`
	LUT3D    *LUTDTO   `yaml:"lut3d"`
	Range    *RangeDTO `yaml:"range"`
	Inverse  bool      `yaml:"inverse"`
}

// CDLDTO represents an inline ASC colour decision.
type CDLDTO struct {
	Slope      []float64 `yaml:"slope"`
	Offset     []float64 `yaml:"offset"`
	Power      []float64 `yaml:"power"`
	Saturation *float64  `yaml:"saturation"`
}

// LUTDTO references a .cube file or carries inline RGB entries.
type LUTDTO struct {
	File      string      `yaml:"file"`
	Values    [][]float64 `yaml:"values"`
	DomainMin []float64   `yaml:"domain_min"`
	DomainMax []float64   `yaml:"domain_max"`
}

// RangeDTO represents a per-channel clamp.
type RangeDTO struct {
	Min []float64 `yaml:"min"`
	Max []float64 `yaml:"max"`
}

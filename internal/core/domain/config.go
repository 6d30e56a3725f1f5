package domain

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Roles maps well-known colour space roles to colour space names.
type Roles struct {
	Reference   string
	SceneLinear string
	Default     string
	Data        string
}

// ColorSpace describes one colour space and how to reach the reference space.
// Either direction may be empty; the other one is inverted when needed.
type ColorSpace struct {
	Name          string
	Family        string
	Description   string
	Aliases       []string
	IsData        bool
	ToReference   []Op
	FromReference []Op
}

// View is a rendering intent available on a display.
type View struct {
	Name       string
	ColorSpace string
	Look       string
}

// Display is a physical output device and the views it offers.
type Display struct {
	Name     string
	Views    []View
	Monitors []string
}

// Look is a named creative adjustment applied in the working space.
type Look struct {
	Name        string
	Description string
	Ops         []Op
}

// ConfigDefinition is the raw material a Config is validated from.
type ConfigDefinition struct {
	Name           string
	Description    string
	Path           string
	Roles          Roles
	ColorSpaces    []ColorSpace
	Displays       []Display
	Looks          []Look
	ActiveDisplays []string
	ActiveViews    []string
}

// Config is an immutable, validated colour management configuration.
// A *Config is shared by every holder and must never be modified.
type Config struct {
	def        ConfigDefinition
	spaceIndex map[string]int
	displays   map[string]int
	looks      map[string]int
}

// NewConfig validates a definition and freezes it into a Config.
func NewConfig(def ConfigDefinition) (*Config, error) {
	if def.Name == "" {
		return nil, invalid("config name is required", "config", def.Path)
	}

	c := &Config{
		def:        def,
		spaceIndex: make(map[string]int, len(def.ColorSpaces)),
		displays:   make(map[string]int, len(def.Displays)),
		looks:      make(map[string]int, len(def.Looks)),
	}

	for i, cs := range def.ColorSpaces {
		if cs.Name == "" {
			return nil, invalid("colour space name is required", "config", def.Name)
		}
		for _, key := range append([]string{cs.Name}, cs.Aliases...) {
			k := foldName(key)
			if _, dup := c.spaceIndex[k]; dup {
				return nil, invalid(fmt.Sprintf("duplicate colour space %q", key), "config", def.Name)
			}
			c.spaceIndex[k] = i
		}
		for _, op := range slices.Concat(cs.ToReference, cs.FromReference) {
			if err := op.Validate(); err != nil {
				return nil, zerr.With(err, "colorspace", cs.Name)
			}
		}
	}

	for i, lk := range def.Looks {
		if _, dup := c.looks[lk.Name]; dup || lk.Name == "" {
			return nil, invalid(fmt.Sprintf("invalid or duplicate look %q", lk.Name), "config", def.Name)
		}
		for _, op := range lk.Ops {
			if err := op.Validate(); err != nil {
				return nil, zerr.With(err, "look", lk.Name)
			}
		}
		c.looks[lk.Name] = i
	}

	if len(def.Displays) == 0 {
		return nil, invalid("at least one display is required", "config", def.Name)
	}
	for i, d := range def.Displays {
		if _, dup := c.displays[d.Name]; dup || d.Name == "" {
			return nil, invalid(fmt.Sprintf("invalid or duplicate display %q", d.Name), "config", def.Name)
		}
		if len(d.Views) == 0 {
			return nil, invalid(fmt.Sprintf("display %q has no views", d.Name), "config", def.Name)
		}
		for _, v := range d.Views {
			if _, ok := c.spaceIndex[foldName(v.ColorSpace)]; !ok {
				return nil, invalid(fmt.Sprintf("view %q/%q references unknown colour space %q",
					d.Name, v.Name, v.ColorSpace), "config", def.Name)
			}
			if _, ok := c.looks[v.Look]; v.Look != "" && !ok {
				return nil, invalid(fmt.Sprintf("view %q/%q references unknown look %q",
					d.Name, v.Name, v.Look), "config", def.Name)
			}
		}
		c.displays[d.Name] = i
	}

	for _, name := range def.ActiveDisplays {
		if _, ok := c.displays[name]; !ok {
			return nil, invalid(fmt.Sprintf("active display %q is not defined", name), "config", def.Name)
		}
	}

	if def.Roles.Reference == "" {
		return nil, invalid("reference role is required", "config", def.Name)
	}
	for _, role := range []string{def.Roles.Reference, def.Roles.SceneLinear, def.Roles.Default, def.Roles.Data} {
		if _, ok := c.spaceIndex[foldName(role)]; role != "" && !ok {
			return nil, invalid(fmt.Sprintf("role references unknown colour space %q", role), "config", def.Name)
		}
	}

	return c, nil
}

func invalid(msg, key, value string) error {
	return zerr.With(zerr.Wrap(ErrInvalidConfig, msg), key, value)
}

// foldName normalises colour space names; lookups are case-insensitive.
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Name returns the configuration's identifier.
func (c *Config) Name() string { return c.def.Name }

// Description returns the human readable description.
func (c *Config) Description() string { return c.def.Description }

// Path returns where the configuration was loaded from.
func (c *Config) Path() string { return c.def.Path }

// Roles returns the role table.
func (c *Config) Roles() Roles { return c.def.Roles }

// WorkingSpace returns the colour space all stages are composed around.
func (c *Config) WorkingSpace() string {
	if c.def.Roles.SceneLinear != "" {
		return c.canonical(c.def.Roles.SceneLinear)
	}
	return c.canonical(c.def.Roles.Reference)
}

// DefaultInputColorspace returns the colour space assumed for untagged sources.
func (c *Config) DefaultInputColorspace() string {
	if c.def.Roles.Default != "" {
		return c.canonical(c.def.Roles.Default)
	}
	return c.WorkingSpace()
}

func (c *Config) canonical(name string) string {
	if i, ok := c.spaceIndex[foldName(name)]; ok {
		return c.def.ColorSpaces[i].Name
	}
	return name
}

// ColorSpace looks up a colour space by name or alias.
func (c *Config) ColorSpace(name string) (ColorSpace, bool) {
	i, ok := c.spaceIndex[foldName(name)]
	if !ok {
		return ColorSpace{}, false
	}
	return c.def.ColorSpaces[i], true
}

// ColorSpaceNames lists colour space names in declaration order.
func (c *Config) ColorSpaceNames() []string {
	names := make([]string, 0, len(c.def.ColorSpaces))
	for _, cs := range c.def.ColorSpaces {
		names = append(names, cs.Name)
	}
	return names
}

// Displays lists the active displays, or every display when none are marked active.
func (c *Config) Displays() []string {
	if len(c.def.ActiveDisplays) > 0 {
		return slices.Clone(c.def.ActiveDisplays)
	}
	names := make([]string, 0, len(c.def.Displays))
	for _, d := range c.def.Displays {
		names = append(names, d.Name)
	}
	return names
}

// Display looks up a display by name.
func (c *Config) Display(name string) (Display, bool) {
	i, ok := c.displays[name]
	if !ok {
		return Display{}, false
	}
	return c.def.Displays[i], true
}

// Views lists the views of a display, active views first in their declared order.
func (c *Config) Views(display string) []string {
	d, ok := c.Display(display)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(d.Views))
	for _, active := range c.def.ActiveViews {
		if slices.ContainsFunc(d.Views, func(v View) bool { return v.Name == active }) {
			names = append(names, active)
		}
	}
	for _, v := range d.Views {
		if !slices.Contains(names, v.Name) {
			names = append(names, v.Name)
		}
	}
	return names
}

// View looks up a view of a display.
func (c *Config) View(display, view string) (View, bool) {
	d, ok := c.Display(display)
	if !ok {
		return View{}, false
	}
	for _, v := range d.Views {
		if v.Name == view {
			return v, true
		}
	}
	return View{}, false
}

// Look looks up a look by name.
func (c *Config) Look(name string) (Look, bool) {
	i, ok := c.looks[name]
	if !ok {
		return Look{}, false
	}
	return c.def.Looks[i], true
}

// DefaultDisplay returns the first active display.
func (c *Config) DefaultDisplay() string {
	return c.Displays()[0]
}

// DefaultView returns the first view offered by a display, or "" for unknown displays.
func (c *Config) DefaultView(display string) string {
	views := c.Views(display)
	if len(views) == 0 {
		return ""
	}
	return views[0]
}

// DisplayForMonitor returns the display that claims a monitor name.
func (c *Config) DisplayForMonitor(monitor string) (string, bool) {
	if monitor == "" {
		return "", false
	}
	for _, d := range c.def.Displays {
		for _, m := range d.Monitors {
			if strings.EqualFold(m, monitor) {
				return d.Name, true
			}
		}
	}
	return "", false
}

// ProcessorOps returns the operator chain converting src into dst through the
// reference space. Data colour spaces pass through untouched.
func (c *Config) ProcessorOps(src, dst string) ([]Op, error) {
	from, ok := c.ColorSpace(src)
	if !ok {
		return nil, c.Missing("colorspace", src)
	}
	to, ok := c.ColorSpace(dst)
	if !ok {
		return nil, c.Missing("colorspace", dst)
	}
	if from.Name == to.Name || from.IsData || to.IsData {
		return nil, nil
	}

	toRef, err := toReference(from)
	if err != nil {
		return nil, zerr.With(err, "colorspace", from.Name)
	}
	fromRef, err := fromReference(to)
	if err != nil {
		return nil, zerr.With(err, "colorspace", to.Name)
	}
	return slices.Concat(toRef, fromRef), nil
}

func toReference(cs ColorSpace) ([]Op, error) {
	if len(cs.ToReference) > 0 {
		return cs.ToReference, nil
	}
	return InvertOps(cs.FromReference)
}

func fromReference(cs ColorSpace) ([]Op, error) {
	if len(cs.FromReference) > 0 {
		return cs.FromReference, nil
	}
	return InvertOps(cs.ToReference)
}

// Missing builds a resolution error naming an identifier absent from the config.
func (c *Config) Missing(kind, name string) error {
	return zerr.With(zerr.With(
		zerr.Wrap(ErrResolution, fmt.Sprintf("%s %q not found in config %q", kind, name, c.def.Name)),
		kind, name), "config", c.def.Name)
}

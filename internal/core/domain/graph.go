package domain

// StageKind identifies a transform graph stage.
type StageKind string

const (
	// StageSource maps the source colour space into the working space.
	StageSource StageKind = "source"
	// StageIdentity replaces every other stage when the source is bypassed.
	StageIdentity StageKind = "identity"
	// StageDisplayView maps the working space to a display and view.
	StageDisplayView StageKind = "display_view"
	// StageLook applies a named look.
	StageLook StageKind = "look"
	// StageGrade bakes the grading primary for non-dynamic viewers.
	StageGrade StageKind = "grade"
	// StageGradeList applies an externally authored grade decision list.
	StageGradeList StageKind = "grade_list"
)

// Dynamic parameter handle names.
const (
	DynamicExposure     = "exposure"
	DynamicBypass       = "bypass"
	DynamicGradePrimary = "grade_primary"
	DynamicChannel      = "channel"
)

// Stage is one step of a transform graph.
type Stage struct {
	Kind StageKind
	Name string
	Ops  []Op

	// Grade is set on StageGrade stages.
	Grade *GradingPrimary
}

// Dynamic marks a runtime-adjustable value and the stage it follows.
// An empty After means the value wraps the whole graph.
type Dynamic struct {
	Name  string
	After StageKind
}

// TransformGraph is the ordered stage sequence for one params set and viewer.
// It is a value; nothing caches it.
type TransformGraph struct {
	Viewer   Viewer
	Config   string
	Working  string
	Stages   []Stage
	Dynamics []Dynamic
}

// Kinds returns the stage kinds in order.
func (g *TransformGraph) Kinds() []StageKind {
	kinds := make([]StageKind, len(g.Stages))
	for i, s := range g.Stages {
		kinds[i] = s.Kind
	}
	return kinds
}

// HasDynamic reports whether the graph declares a dynamic handle.
func (g *TransformGraph) HasDynamic(name string) bool {
	for _, d := range g.Dynamics {
		if d.Name == name {
			return true
		}
	}
	return false
}

// DynamicsAfter returns the dynamics that follow a stage kind.
func (g *TransformGraph) DynamicsAfter(kind StageKind) []Dynamic {
	var out []Dynamic
	for _, d := range g.Dynamics {
		if d.After == kind {
			out = append(out, d)
		}
	}
	return out
}

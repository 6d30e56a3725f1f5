// Package graph turns resolved media params into ordered transform graphs.
package graph

import (
	"fmt"

	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports"
	"go.trai.ch/zerr"
)

// Direction selects which way a display transform runs.
type Direction int

const (
	// Forward maps the working space to the display.
	Forward Direction = iota
	// Inverse maps display values back into the working space.
	Inverse
)

// Builder builds transform graphs. It holds no state besides its collaborators
// and is safe for concurrent use.
type Builder struct {
	gradeLists ports.GradeListReader
}

// NewBuilder creates a Builder.
func NewBuilder(gradeLists ports.GradeListReader) *Builder {
	return &Builder{gradeLists: gradeLists}
}

// Build returns the stage sequence for params and viewer. Params must be
// resolved; unknown names fail with domain.ErrResolution.
func (b *Builder) Build(params domain.MediaParams, viewer domain.Viewer) (*domain.TransformGraph, error) {
	if !params.Resolved() {
		return nil, zerr.With(zerr.Wrap(domain.ErrResolution, "media params are not resolved"),
			"source_id", params.SourceID)
	}
	cfg := params.Config

	g := &domain.TransformGraph{
		Viewer:  viewer,
		Config:  cfg.Name(),
		Working: cfg.WorkingSpace(),
	}

	if params.Bypass {
		g.Stages = []domain.Stage{{Kind: domain.StageIdentity, Name: "bypass"}}
		return g, nil
	}

	ops, err := cfg.ProcessorOps(params.Colorspace, g.Working)
	if err != nil {
		return nil, err
	}
	g.Stages = append(g.Stages, domain.Stage{
		Kind: domain.StageSource,
		Name: params.Colorspace + " to " + g.Working,
		Ops:  ops,
	})

	view, dv, err := b.displayView(params, viewer, Forward)
	if err != nil {
		return nil, err
	}
	g.Stages = append(g.Stages, dv)

	// The grading primary sits directly after the display view in every
	// context: as a dynamic handle for live viewers, baked for thumbnails.
	if viewer.Dynamic() {
		g.Dynamics = []domain.Dynamic{
			{Name: domain.DynamicExposure, After: domain.StageSource},
			{Name: domain.DynamicGradePrimary, After: domain.StageDisplayView},
			{Name: domain.DynamicBypass},
			{Name: domain.DynamicChannel},
		}
	} else if !params.Primary.IsIdentity() {
		if err := params.Primary.Validate(); err != nil {
			return nil, err
		}
		grade := params.Primary
		g.Stages = append(g.Stages, domain.Stage{Kind: domain.StageGrade, Name: "grading primary", Grade: &grade})
	}

	lookName := params.Look()
	if lookName == "" {
		lookName = view.Look
	}
	if lookName != "" {
		look, ok := cfg.Look(lookName)
		if !ok {
			return nil, cfg.Missing("look", lookName)
		}
		g.Stages = append(g.Stages, domain.Stage{Kind: domain.StageLook, Name: look.Name, Ops: look.Ops})
	}

	if path, id := params.GradeList(); path != "" {
		decision, err := b.gradeLists.Read(path, id)
		if err != nil {
			return nil, err
		}
		g.Stages = append(g.Stages, domain.Stage{
			Kind: domain.StageGradeList,
			Name: gradeListName(path, decision.ID),
			Ops:  []domain.Op{{Kind: domain.OpCDL, CDL: decision}},
		})
	}

	return g, nil
}

// DisplayTransform returns the display and view stage alone, running in the
// given direction. Inverse fails with domain.ErrNotInvertible when the view
// contains lookup tables.
func (b *Builder) DisplayTransform(params domain.MediaParams, viewer domain.Viewer, dir Direction) (domain.Stage, error) {
	if params.Config == nil {
		return domain.Stage{}, zerr.With(zerr.Wrap(domain.ErrResolution, "media params are not resolved"),
			"source_id", params.SourceID)
	}
	_, stage, err := b.displayView(params, viewer, dir)
	return stage, err
}

func (b *Builder) displayView(params domain.MediaParams, viewer domain.Viewer, dir Direction) (domain.View, domain.Stage, error) {
	cfg := params.Config
	display := params.EffectiveDisplay(viewer)
	if _, ok := cfg.Display(display); !ok {
		return domain.View{}, domain.Stage{}, cfg.Missing("display", display)
	}
	view, ok := cfg.View(display, params.View)
	if !ok {
		return domain.View{}, domain.Stage{}, cfg.Missing("view", params.View)
	}

	src, dst := cfg.WorkingSpace(), view.ColorSpace
	if dir == Inverse {
		src, dst = dst, src
	}
	ops, err := cfg.ProcessorOps(src, dst)
	if err != nil {
		return domain.View{}, domain.Stage{}, zerr.With(zerr.With(err, "display", display), "view", view.Name)
	}
	return view, domain.Stage{Kind: domain.StageDisplayView, Name: display + " / " + view.Name, Ops: ops}, nil
}

func gradeListName(path, id string) string {
	if id == "" {
		return path
	}
	return fmt.Sprintf("%s#%s", path, id)
}

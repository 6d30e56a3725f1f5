package compiler

import "go.trai.ch/hue/internal/core/domain"

// Processor evaluates a transform graph on the CPU. Lookup tables are sampled
// with the same interpolation the GPU path uses.
type Processor struct {
	steps []func(domain.RGB) domain.RGB
}

// CompileCPU builds a Processor for g. Dynamic handles are ignored; graphs
// meant for CPU use bake every value into stages.
func CompileCPU(g *domain.TransformGraph) (*Processor, error) {
	p := &Processor{}
	for _, stage := range g.Stages {
		if stage.Grade != nil {
			if err := stage.Grade.Validate(); err != nil {
				return nil, err
			}
			p.steps = append(p.steps, stage.Grade.Apply)
		}
		for _, op := range stage.Ops {
			if err := op.Validate(); err != nil {
				return nil, err
			}
			p.steps = append(p.steps, op.Apply)
		}
	}
	return p, nil
}

// Apply transforms a single colour.
func (p *Processor) Apply(c domain.RGB) domain.RGB {
	for _, step := range p.steps {
		c = step(c)
	}
	return c
}

// Identity reports whether the processor leaves colours unchanged.
func (p *Processor) Identity() bool {
	return len(p.steps) == 0
}

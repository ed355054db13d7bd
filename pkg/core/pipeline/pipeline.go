package pipeline

import "errors"

// ErrTooFew mirrors the teacher engine's guard against degenerate chains:
// a pipeline needs at least one child stage to be meaningful.
var ErrTooFew = errors.New("pipeline: too few stages")

// Pipeline is a Stage whose DoProcess sequentially invokes an ordered tuple
// of child stages against the shared model. It owns its stages and its own
// boundary ports; configureStages (left to concrete pipelines, since it is
// wiring specific to each graph) connects child ports to each other and to
// these boundary ports.
type Pipeline[M any] struct {
	BaseStage
	stages []Stage[M]
}

// New builds a named pipeline over an ordered list of child stages.
func New[M any](name string, stages ...Stage[M]) (*Pipeline[M], error) {
	if len(stages) == 0 {
		return nil, ErrTooFew
	}
	return &Pipeline[M]{
		BaseStage: BaseStage{StageName: name},
		stages:    stages,
	}, nil
}

// InitializePorts wires every child stage's ports to its internal buffers.
func (p *Pipeline[M]) InitializePorts() {
	for _, s := range p.stages {
		s.InitializePorts()
	}
}

// DoInitialization runs each child's one-shot configuration, in order,
// stopping at the first error.
func (p *Pipeline[M]) DoInitialization() error {
	for _, s := range p.stages {
		if err := s.DoInitialization(); err != nil {
			return err
		}
	}
	return nil
}

// Initialize is the one-shot call a caller makes before the first Run:
// wire ports, then configure every child stage.
func (p *Pipeline[M]) Initialize() error {
	p.InitializePorts()
	return p.DoInitialization()
}

// DoProcess runs every child stage, in declared order, against model.
// Execution short-circuits on the first stage that fails its tick.
func (p *Pipeline[M]) DoProcess(model *M) bool {
	for _, s := range p.stages {
		if !Process[M](s, model) {
			return false
		}
	}
	return true
}

// Run is the pipeline's own process() entry point.
func (p *Pipeline[M]) Run(model *M) bool {
	return Process[M](p, model)
}

// Stages exposes the child stages in declared order, for wiring helpers.
func (p *Pipeline[M]) Stages() []Stage[M] { return p.stages }

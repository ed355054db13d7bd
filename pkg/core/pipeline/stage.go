package pipeline

import "github.com/itohio/slam2d/pkg/core/logger"

// Stage is a single processing block threaded through a pipeline's shared
// model value M (e.g. OccupancyGrid, *sensors.EgoObject, or struct{} for a
// stage with no model dependency).
type Stage[M any] interface {
	Name() string
	// Ports returns this stage's declared input and output ports, fixed at
	// construction.
	Ports() (inputs, outputs []*Port)
	// InitializePorts wires each port to its internal buffer; called once.
	InitializePorts()
	// DoInitialization performs one-shot configuration.
	DoInitialization() error
	// IsReady reports whether every required input port is bound.
	IsReady() bool
	// ValidateInputData does per-tick sanity checks over the current inputs.
	ValidateInputData() error
	// DoProcess performs the per-tick work against model, returning false
	// on algorithmic failure.
	DoProcess(model *M) bool
}

// Process is a stage's public per-tick entry point: skip if not ready,
// fail the tick on invalid input, otherwise run DoProcess. This mirrors
// §4.1's process(model) contract without requiring every Stage
// implementation to repeat the same three-step dance.
func Process[M any](s Stage[M], model *M) bool {
	if !s.IsReady() {
		logger.Log.Debug().Str("stage", s.Name()).Msg("pipeline: stage not ready, skipping")
		return true
	}
	if err := s.ValidateInputData(); err != nil {
		logger.Log.Error().Err(err).Str("stage", s.Name()).Msg("pipeline: invalid input data")
		return false
	}
	if !s.DoProcess(model) {
		logger.Log.Error().Str("stage", s.Name()).Msg("pipeline: stage failed")
		return false
	}
	return true
}

// BaseStage is an embeddable helper giving a Stage its name and declared
// ports, so concrete stages only need to implement DoProcess (and
// DoInitialization/ValidateInputData when they have real work to do there).
type BaseStage struct {
	StageName string
	Inputs    []*Port
	Outputs   []*Port
}

func (b *BaseStage) Name() string                        { return b.StageName }
func (b *BaseStage) Ports() (inputs, outputs []*Port)     { return b.Inputs, b.Outputs }
func (b *BaseStage) InitializePorts()                     {}
func (b *BaseStage) DoInitialization() error               { return nil }
func (b *BaseStage) ValidateInputData() error               { return nil }

// IsReady reports whether every input port is bound, the default
// §4.1 readiness predicate for stages with no optional inputs.
func (b *BaseStage) IsReady() bool {
	for _, p := range b.Inputs {
		if !p.Bound() {
			return false
		}
	}
	return true
}

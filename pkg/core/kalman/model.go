package kalman

import "gonum.org/v1/gonum/mat"

// FilterModel supplies the linearised prediction and process-noise
// matrices for a given attribute pack P.
type FilterModel interface {
	Attributes() AttributePack
	// PredictionMatrix returns M such that x <- M*x approximates the
	// (possibly nonlinear, locally linearised) dynamics over dt.
	PredictionMatrix(state *StateVector, dt float64) *mat.Dense
	// SystemNoiseMatrix returns a symmetric PSD Q scaled for dt.
	SystemNoiseMatrix(dt float64) *mat.Dense
}

// ObservationMatrix builds the H matrix mapping a sensor's attribute pack S
// onto a state's attribute pack P: H[i,j] = 1 if S[i] == P[j], else 0.
func ObservationMatrix(sensor, state AttributePack) *mat.Dense {
	h := mat.NewDense(sensor.Len(), state.Len(), nil)
	for i, sa := range sensor {
		if j, ok := state.IndexOf(sa); ok {
			h.Set(i, j, 1)
		}
	}
	return h
}

// eye returns an n x n identity matrix.
func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type model struct{ Value int }

type recordingStage struct {
	BaseStage
	ran     bool
	succeed bool
}

func (s *recordingStage) DoProcess(m *model) bool {
	s.ran = true
	if s.succeed {
		m.Value++
	}
	return s.succeed
}

func newRecordingStage(name string, succeed bool) *recordingStage {
	return &recordingStage{BaseStage: BaseStage{StageName: name}, succeed: succeed}
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	a := newRecordingStage("a", true)
	b := newRecordingStage("b", true)
	p, err := New[model]("p", a, b)
	require.NoError(t, err)

	m := model{}
	assert.True(t, p.Run(&m))
	assert.Equal(t, 2, m.Value)
	assert.True(t, a.ran)
	assert.True(t, b.ran)
}

func TestPipelineShortCircuitsOnFailure(t *testing.T) {
	a := newRecordingStage("a", false)
	b := newRecordingStage("b", true)
	p, err := New[model]("p", a, b)
	require.NoError(t, err)

	m := model{}
	assert.False(t, p.Run(&m))
	assert.True(t, a.ran)
	assert.False(t, b.ran, "stage after a failing stage must not run")
}

func TestPipelineRequiresAtLeastOneStage(t *testing.T) {
	_, err := New[model]("empty")
	assert.ErrorIs(t, err, ErrTooFew)
}

type portedStage struct {
	BaseStage
	in  *InputPort[int]
	out *OutputPort[int]
}

func (s *portedStage) DoProcess(m *model) bool {
	v, err := s.in.Get()
	if err != nil {
		return false
	}
	s.out.Set(v * 2)
	return true
}

func newPortedStage(name string) *portedStage {
	in := NewInputPort[int]("in")
	out := NewOutputPort[int]("out")
	return &portedStage{
		BaseStage: BaseStage{StageName: name, Inputs: []*Port{in.Port()}, Outputs: []*Port{out.Port()}},
		in:        in,
		out:       out,
	}
}

func TestStageSkippedWhenInputUnbound(t *testing.T) {
	s := newPortedStage("doubler")
	m := model{}
	assert.True(t, Process[model](s, &m), "a not-ready stage should skip, not fail")
}

func TestFromYAMLBuildsAndWiresPipeline(t *testing.T) {
	reg := NewRegistry[model]()
	require.NoError(t, reg.Register("doubler", func(opts Options) (Stage[model], error) {
		return newPortedStage(opts.String("name", "doubler")), nil
	}))
	require.NoError(t, reg.Register("source", func(opts Options) (Stage[model], error) {
		out := NewOutputPort[int]("out")
		return &sourceStage{
			BaseStage: BaseStage{StageName: "source", Outputs: []*Port{out.Port()}},
			out:       out,
			value:     opts.Int("value", 0),
		}, nil
	}))

	cfg, err := ParseConfig([]byte(`
name: test
stages:
  - name: src
    builder: source
    options:
      value: 21
  - name: d1
    builder: doubler
edges:
  - from: src.out
    to: d1.in
`))
	require.NoError(t, err)

	p, err := FromYAML[model](cfg, reg)
	require.NoError(t, err)
	require.NoError(t, p.Initialize())

	m := model{}
	assert.True(t, p.Run(&m))
}

type sourceStage struct {
	BaseStage
	out   *OutputPort[int]
	value int
}

func (s *sourceStage) DoProcess(m *model) bool {
	return s.out.Set(s.value) == nil
}

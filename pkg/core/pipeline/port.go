// Package pipeline implements the typed dataflow engine: ports, stages and
// pipelines, generalising the teacher's channel-based Step/Pipeline engine
// into the spec's single-threaded, synchronous port-connection model (spec
// §4.1, C1).
package pipeline

import (
	"errors"
	"reflect"
)

// MaxConnections bounds how many peers a single port may hold.
const MaxConnections = 10

var (
	// ErrWrongType is returned when a read or connect attempt's static
	// type doesn't match the port's declared type.
	ErrWrongType = errors.New("pipeline: port type mismatch")
	// ErrUnbound is returned by Data when an input port has no writer.
	ErrUnbound = errors.New("pipeline: port is unbound")
	// ErrDirection is returned by Connect when both ports share a direction.
	ErrDirection = errors.New("pipeline: ports must have opposite directions")
	// ErrAlreadyConnected is returned by Connect for a repeat connection.
	ErrAlreadyConnected = errors.New("pipeline: ports already connected")
	// ErrConnectionLimit is returned when a port has reached MaxConnections.
	ErrConnectionLimit = errors.New("pipeline: port connection limit reached")
)

// Direction is a port's data flow direction.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionIn
	DirectionOut
)

// Port is a named, type-tagged connection point. An input port holds at
// most one writer; an output port may fan out to MaxConnections readers.
type Port struct {
	name      string
	typ       reflect.Type
	direction Direction
	value     any
	peers     []*Port
}

// NewPort constructs a port named name, of direction dir, carrying values
// of the same type as zero (zero is only used for its type).
func NewPort(name string, dir Direction, zero any) *Port {
	return &Port{name: name, typ: reflect.TypeOf(zero), direction: dir}
}

func (p *Port) Name() string        { return p.name }
func (p *Port) Direction() Direction { return p.direction }
func (p *Port) Bound() bool {
	if p.direction == DirectionIn {
		return len(p.peers) == 1
	}
	return p.value != nil
}

// Connect wires a (output, input) pair per the spec's connect contract:
// opposite directions, matching type, not already connected, within each
// side's connection limit. On success the input's read value is rebound
// to the output's current (and future) writes.
func Connect(a, b *Port) error {
	out, in := a, b
	if out.direction == DirectionIn {
		out, in = b, a
	}
	if out.direction == in.direction || out.direction == DirectionNone || in.direction == DirectionNone {
		return ErrDirection
	}
	if out.typ != in.typ {
		return ErrWrongType
	}
	for _, peer := range out.peers {
		if peer == in {
			return ErrAlreadyConnected
		}
	}
	if len(out.peers) >= MaxConnections {
		return ErrConnectionLimit
	}
	if len(in.peers) >= 1 {
		return ErrConnectionLimit
	}

	out.peers = append(out.peers, in)
	in.peers = []*Port{out}
	return nil
}

// Disconnect removes the peer relationship between a and b, if any.
func Disconnect(a, b *Port) {
	a.peers = removePeer(a.peers, b)
	b.peers = removePeer(b.peers, a)
}

func removePeer(peers []*Port, target *Port) []*Port {
	out := peers[:0]
	for _, p := range peers {
		if p != target {
			out = append(out, p)
		}
	}
	return out
}

// Close disconnects this port from every peer, per the spec's "destroying
// a port disconnects all peers" rule.
func (p *Port) Close() {
	for _, peer := range p.peers {
		peer.peers = removePeer(peer.peers, p)
	}
	p.peers = nil
}

// Set writes v to an output port, propagating to every connected input's
// view. It is the engine's only write path; reads always resolve through
// the writer found at read time, so the engine never buffers more than
// one value per port.
func (p *Port) Set(v any) error {
	if reflect.TypeOf(v) != p.typ {
		return ErrWrongType
	}
	p.value = v
	return nil
}

// Data reads the current value visible at this port: its own value if it
// is an output, or its single writer's value if it is an input.
func (p *Port) Data() (any, error) {
	if p.direction == DirectionIn {
		if len(p.peers) != 1 {
			return nil, ErrUnbound
		}
		return p.peers[0].Data()
	}
	if p.value == nil {
		return nil, ErrUnbound
	}
	return p.value, nil
}

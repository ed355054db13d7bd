package pipeline

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StageConfig is one declared pipeline child: a registry name plus its
// decoded options.
type StageConfig struct {
	Name    string `yaml:"name"`
	Builder string `yaml:"builder"`
	Options Options `yaml:"options"`
}

// EdgeConfig declares a single port connection: "stageName.portName" on
// each side.
type EdgeConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Config is a pipeline's declarative description, the successor to the
// teacher's Pipeline.FromJSON stub: an ordered stage list plus the edges
// connecting their ports.
type Config struct {
	Name   string       `yaml:"name"`
	Stages []StageConfig `yaml:"stages"`
	Edges  []EdgeConfig `yaml:"edges"`
}

// ParseConfig decodes a pipeline description from YAML.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("pipeline: parsing config: %w", err)
	}
	return cfg, nil
}

// FromYAML builds a pipeline from a declarative Config, resolving each
// stage through registry and connecting the declared edges by looking up
// each side's named port via resolvePort.
func FromYAML[M any](cfg Config, registry *Registry[M]) (*Pipeline[M], error) {
	built := make(map[string]Stage[M], len(cfg.Stages))
	ordered := make([]Stage[M], 0, len(cfg.Stages))

	for _, sc := range cfg.Stages {
		stage, err := registry.Build(sc.Builder, sc.Options)
		if err != nil {
			return nil, fmt.Errorf("pipeline: building stage %q: %w", sc.Name, err)
		}
		built[sc.Name] = stage
		ordered = append(ordered, stage)
	}

	for _, e := range cfg.Edges {
		fromStage, fromPort, err := resolvePort(built, e.From, DirectionOut)
		if err != nil {
			return nil, err
		}
		toStage, toPort, err := resolvePort(built, e.To, DirectionIn)
		if err != nil {
			return nil, err
		}
		if err := Connect(fromPort, toPort); err != nil {
			return nil, fmt.Errorf("pipeline: connecting %s.%s -> %s.%s: %w",
				fromStage, fromPort.Name(), toStage, toPort.Name(), err)
		}
	}

	return New(cfg.Name, ordered...)
}

func resolvePort[M any](stages map[string]Stage[M], ref string, want Direction) (string, *Port, error) {
	stageName, portName, err := splitRef(ref)
	if err != nil {
		return "", nil, err
	}
	stage, ok := stages[stageName]
	if !ok {
		return "", nil, fmt.Errorf("pipeline: unknown stage %q in edge %q", stageName, ref)
	}
	inputs, outputs := stage.Ports()
	ports := inputs
	if want == DirectionOut {
		ports = outputs
	}
	for _, p := range ports {
		if p.Name() == portName {
			return stageName, p, nil
		}
	}
	return "", nil, fmt.Errorf("pipeline: stage %q has no port %q", stageName, portName)
}

func splitRef(ref string) (stage, port string, err error) {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '.' {
			return ref[:i], ref[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("pipeline: malformed port reference %q (want stage.port)", ref)
}

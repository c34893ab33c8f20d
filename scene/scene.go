package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/synaptecltd/flicker"
	"gopkg.in/yaml.v2"
)

// Scene is a camera observing one or more PWM light sources.
type Scene struct {
	Camera  *Camera   `yaml:"Camera" mapstructure:"Camera"`
	Sources Container `yaml:"Sources" mapstructure:"Sources"`
}

// ParseScene decodes a YAML scene description. Unknown fields are rejected.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) validate() error {
	if s.Camera == nil {
		return errors.New("scene has no camera")
	}
	if len(s.Sources) == 0 {
		return errors.New("scene has no sources")
	}
	return nil
}

// Simulate records a frame sequence for every source that is not switched off,
// keyed like the container. Sources are visited in key order so a seeded r gives
// reproducible phases.
func (s *Scene) Simulate(r *rand.Rand) (map[string]flicker.FrameSeries, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	out := make(map[string]flicker.FrameSeries, len(s.Sources))
	for _, key := range s.Sources.Keys() {
		source := s.Sources[key]
		if source.Off {
			continue
		}
		series, err := s.Camera.Record(source, r)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", key, err)
		}
		out[key] = series
	}
	return out, nil
}

package scene_test

import (
	"math/rand/v2"
	"testing"

	"github.com/synaptecltd/flicker"
	"github.com/synaptecltd/flicker/scene"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

const sceneYAML = `
Camera:
  Exposure: 4
  Start: 0
  FrameRate: 30
  Duration: 1
Sources:
  headlamp:
    DutyCycle: 0.5
    Frequency: 100
  sign:
    Name: road sign
    DutyCycle: 0.7
    Frequency: 90
    Amplitude: 2.5
    Offset: 0.05
  spare:
    DutyCycle: 0.2
    Frequency: 50
    Off: true
`

func TestParseScene(t *testing.T) {
	s, err := scene.ParseScene([]byte(sceneYAML))
	assert.NilError(t, err)

	assert.Check(t, is.Equal(4.0, s.Camera.Exposure()))
	assert.Check(t, is.Equal(30.0, s.Camera.FrameRate()))
	assert.Check(t, is.Equal(1.0, s.Camera.Duration()))
	assert.Check(t, is.Equal("fixed", s.Camera.PhaseFuncName()))
	assert.Check(t, is.Equal(flicker.WraparoundCycles, s.Camera.Wraparound()))

	assert.Check(t, is.DeepEqual([]string{"headlamp", "sign", "spare"}, s.Sources.Keys()))

	headlamp := s.Sources["headlamp"]
	assert.Check(t, is.Equal("headlamp", headlamp.Name()))
	assert.Check(t, is.Equal(1.0, headlamp.Amplitude())) // defaulted
	assert.Check(t, is.Equal(10.0, headlamp.Period()))

	sign := s.Sources["sign"]
	assert.Check(t, is.Equal("road sign", sign.Name()))
	assert.Check(t, is.Equal(2.5, sign.Amplitude()))
	assert.Check(t, is.Equal(0.05, sign.Offset()))

	assert.Check(t, s.Sources["spare"].Off)
}

func TestParseSceneErrors(t *testing.T) {
	testCases := []struct {
		name     string
		yaml     string
		expected string
	}{
		{
			name:     "no camera",
			yaml:     "Sources:\n  a:\n    DutyCycle: 0.5\n    Frequency: 100\n",
			expected: "scene has no camera",
		},
		{
			name:     "no sources",
			yaml:     "Camera:\n  Exposure: 1\n  FrameRate: 30\n  Duration: 1\n",
			expected: "scene has no sources",
		},
		{
			name:     "invalid duty cycle",
			yaml:     "Camera:\n  Exposure: 1\n  FrameRate: 30\n  Duration: 1\nSources:\n  a:\n    DutyCycle: 0\n    Frequency: 100\n",
			expected: "source a: dutyCycle must lie in (0, 1]",
		},
		{
			name:     "invalid frame rate",
			yaml:     "Camera:\n  Exposure: 1\n  FrameRate: 0\n  Duration: 1\nSources:\n  a:\n    DutyCycle: 0.5\n    Frequency: 100\n",
			expected: "frameRate must be a positive value",
		},
		{
			name:     "unknown phase function",
			yaml:     "Camera:\n  Exposure: 1\n  FrameRate: 30\n  Duration: 1\n  PhaseFunc: gaussian\nSources:\n  a:\n    DutyCycle: 0.5\n    Frequency: 100\n",
			expected: `phase function not found: "gaussian"`,
		},
		{
			name:     "unknown wraparound",
			yaml:     "Camera:\n  Exposure: 1\n  FrameRate: 30\n  Duration: 1\n  Wraparound: exact\nSources:\n  a:\n    DutyCycle: 0.5\n    Frequency: 100\n",
			expected: "unknown wraparound mode: exact",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scene.ParseScene([]byte(tc.yaml))
			assert.ErrorContains(t, err, tc.expected)
		})
	}
}

func TestSceneSimulate(t *testing.T) {
	s, err := scene.ParseScene([]byte(sceneYAML))
	assert.NilError(t, err)

	out, err := s.Simulate(nil)
	assert.NilError(t, err)
	assert.Check(t, is.Len(out, 2)) // spare is off

	headlamp := out["headlamp"]
	assert.Check(t, is.Equal(30, headlamp.Len()))
	assert.Check(t, is.Equal(0.0, headlamp.Phi[0]))
	assert.Check(t, is.Equal(4.0, headlamp.Phi[1]))

	expected, err := flicker.SimulateFrames(flicker.FrameParams{
		DutyCycle:       0.7,
		SourceFrequency: 90,
		Exposure:        4,
		FrameRate:       30,
		Duration:        1,
		Amplitude:       2.5,
		Offset:          0.05,
	}, nil)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(expected, out["sign"]))
}

func TestSceneSimulateUniformPhaseIsSeeded(t *testing.T) {
	s, err := scene.ParseScene([]byte(sceneYAML))
	assert.NilError(t, err)
	assert.NilError(t, s.Camera.SetPhaseFunctionByName("uniform"))

	a, err := s.Simulate(rand.New(rand.NewPCG(11, 12)))
	assert.NilError(t, err)
	b, err := s.Simulate(rand.New(rand.NewPCG(11, 12)))
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(a, b))
}

func TestDecodeScene(t *testing.T) {
	input := map[string]interface{}{
		"Camera": map[string]interface{}{
			"Exposure":   25,
			"FrameRate":  60,
			"Duration":   0.5,
			"Wraparound": "reference",
		},
		"Sources": map[string]interface{}{
			"led": map[string]interface{}{
				"DutyCycle": 0.75,
				"Frequency": 100,
			},
		},
	}

	s, err := scene.DecodeScene(input)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(25.0, s.Camera.Exposure()))
	assert.Check(t, is.Equal(flicker.WraparoundReference, s.Camera.Wraparound()))
	assert.Check(t, is.Equal("led", s.Sources["led"].Name()))
	assert.Check(t, is.Equal(0.75, s.Sources["led"].DutyCycle()))

	out, err := s.Simulate(nil)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(30, out["led"].Len()))
}

func TestDecodeSceneRejectsInvalidSource(t *testing.T) {
	input := map[string]interface{}{
		"Camera": map[string]interface{}{"Exposure": 1, "FrameRate": 30, "Duration": 1},
		"Sources": map[string]interface{}{
			"led": map[string]interface{}{"DutyCycle": 0.5, "Frequency": -1},
		},
	}

	_, err := scene.DecodeScene(input)
	assert.ErrorContains(t, err, "frequency must be a positive value")
}

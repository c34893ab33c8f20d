package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/synaptecltd/flicker"
	"github.com/synaptecltd/flicker/mathfuncs"
)

// Camera holds the exposure and capture settings shared by every source in a scene.
type Camera struct {
	exposure  float64 // exposure duration in ms
	Start     float64 // requested exposure start phase in ms, interpreted by the phase function
	frameRate float64 // frames per second
	duration  float64 // capture length in seconds

	phaseFuncName string                  // name of the phase function, empty defaults to "fixed"
	wraparound    flicker.WraparoundMode  // handling of exposures longer than two pulse periods
	phaseFunction mathfuncs.PhaseFunction // set internally from phaseFuncName
}

// Parameters used to request a camera. These map onto the fields of Camera.
type CameraParams struct {
	Exposure      float64 `yaml:"Exposure" mapstructure:"Exposure"`     // exposure duration in ms
	Start         float64 `yaml:"Start" mapstructure:"Start"`           // exposure start phase in ms
	PhaseFuncName string  `yaml:"PhaseFunc" mapstructure:"PhaseFunc"`   // "fixed" (default) or "uniform"
	FrameRate     float64 `yaml:"FrameRate" mapstructure:"FrameRate"`   // frames per second
	Duration      float64 `yaml:"Duration" mapstructure:"Duration"`     // capture length in seconds
	Wraparound    string  `yaml:"Wraparound" mapstructure:"Wraparound"` // "cycles" (default) or "reference"
}

// Initialise the internal fields of Camera when it is unmarshalled from yaml.
func (c *Camera) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var params CameraParams
	if err := unmarshal(&params); err != nil {
		return err
	}

	camera, err := NewCamera(params)
	if err != nil {
		return err
	}

	*c = *camera
	return nil
}

// Returns a Camera pointer with the requested parameters, checking for invalid values.
func NewCamera(params CameraParams) (*Camera, error) {
	camera := &Camera{Start: params.Start}

	if err := camera.SetExposure(params.Exposure); err != nil {
		return nil, err
	}
	if err := camera.SetFrameRate(params.FrameRate); err != nil {
		return nil, err
	}
	if err := camera.SetDuration(params.Duration); err != nil {
		return nil, err
	}
	if err := camera.SetPhaseFunctionByName(params.PhaseFuncName); err != nil {
		return nil, err
	}
	if err := camera.SetWraparoundByName(params.Wraparound); err != nil {
		return nil, err
	}

	return camera, nil
}

// Expose integrates a single exposure of source, with the start phase chosen by the
// camera's phase function.
func (c *Camera) Expose(source *Source, r *rand.Rand) (float64, error) {
	tp := source.Period()
	return flicker.Integrate(flicker.Params{
		DutyCycle:  source.DutyCycle(),
		Period:     tp,
		Exposure:   c.exposure,
		Start:      c.phaseFunction(r, c.Start, tp),
		Amplitude:  source.Amplitude(),
		Offset:     source.Offset(),
		Wraparound: c.wraparound,
	}, r)
}

// Record simulates a frame sequence of source. The phase function picks the start
// phase of the first evaluated frame; later frames follow from the frame period.
func (c *Camera) Record(source *Source, r *rand.Rand) (flicker.FrameSeries, error) {
	return flicker.SimulateFrames(flicker.FrameParams{
		DutyCycle:       source.DutyCycle(),
		SourceFrequency: source.Frequency(),
		Exposure:        c.exposure,
		Start:           c.phaseFunction(r, c.Start, source.Period()),
		FrameRate:       c.frameRate,
		Duration:        c.duration,
		Amplitude:       source.Amplitude(),
		Offset:          source.Offset(),
		Wraparound:      c.wraparound,
	}, r)
}

// Setters

// Sets the exposure duration in ms if exposure >= 0.
func (c *Camera) SetExposure(exposure float64) error {
	if !(exposure >= 0) || math.IsInf(exposure, 1) {
		return errors.New("exposure must be greater than or equal to 0")
	}
	c.exposure = exposure
	return nil
}

// Sets the frame rate if it is positive and finite.
func (c *Camera) SetFrameRate(frameRate float64) error {
	if !(frameRate > 0) || math.IsInf(frameRate, 1) {
		return errors.New("frameRate must be a positive value")
	}
	c.frameRate = frameRate
	return nil
}

// Sets the capture duration in seconds if duration > 0.
func (c *Camera) SetDuration(duration float64) error {
	if !(duration > 0) || math.IsInf(duration, 1) {
		return errors.New("duration must be a positive value")
	}
	c.duration = duration
	return nil
}

// Sets the phase function by name. Empty defaults to "fixed".
func (c *Camera) SetPhaseFunctionByName(name string) error {
	if name == "" {
		name = "fixed"
	}
	phaseFunc, err := mathfuncs.GetPhaseFunctionFromName(name)
	if err != nil {
		return fmt.Errorf("%w: %q", err, name)
	}
	c.phaseFunction = phaseFunc
	c.phaseFuncName = name
	return nil
}

// Sets the wraparound mode by name. Empty defaults to "cycles".
func (c *Camera) SetWraparoundByName(name string) error {
	switch name {
	case "", flicker.WraparoundCycles.String():
		c.wraparound = flicker.WraparoundCycles
	case flicker.WraparoundReference.String():
		c.wraparound = flicker.WraparoundReference
	default:
		return fmt.Errorf("unknown wraparound mode: %s", name)
	}
	return nil
}

// Getters

func (c *Camera) Exposure() float64 {
	return c.exposure
}

func (c *Camera) FrameRate() float64 {
	return c.frameRate
}

func (c *Camera) Duration() float64 {
	return c.duration
}

func (c *Camera) PhaseFuncName() string {
	return c.phaseFuncName
}

func (c *Camera) Wraparound() flicker.WraparoundMode {
	return c.wraparound
}

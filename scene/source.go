package scene

import (
	"errors"
	"math"
)

// Source is a PWM-driven light source, typically an LED.
type Source struct {
	// Setters and getters are provided for private fields below to allow for error checking
	name      string  // name of the source, used for identification
	dutyCycle float64 // fraction of each period the source is ON, in (0, 1]
	frequency float64 // PWM frequency in Hz
	amplitude float64 // flux while ON
	offset    float64 // flux floor while OFF
	Off       bool    // true: source excluded from simulation
}

// Parameters used to request a source. These map onto the fields of Source.
type SourceParams struct {
	Name      string  `yaml:"Name" mapstructure:"Name"`           // name of the source, used for identification
	DutyCycle float64 `yaml:"DutyCycle" mapstructure:"DutyCycle"` // fraction of each period the source is ON, in (0, 1]
	Frequency float64 `yaml:"Frequency" mapstructure:"Frequency"` // PWM frequency in Hz
	Amplitude float64 `yaml:"Amplitude" mapstructure:"Amplitude"` // flux while ON, 0 defaults to 1
	Offset    float64 `yaml:"Offset" mapstructure:"Offset"`       // flux floor while OFF, default 0
	Off       bool    `yaml:"Off" mapstructure:"Off"`             // true: source excluded from simulation
}

// Initialise the internal fields of Source when it is unmarshalled from yaml.
func (s *Source) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var params SourceParams
	if err := unmarshal(&params); err != nil {
		return err
	}

	// This performs checking for invalid values
	source, err := NewSource(params)
	if err != nil {
		return err
	}

	*s = *source
	return nil
}

// Returns a Source pointer with the requested parameters, checking for invalid values.
func NewSource(params SourceParams) (*Source, error) {
	source := &Source{}

	// Invalid values checked by setters
	if err := source.SetDutyCycle(params.DutyCycle); err != nil {
		return nil, err
	}
	if err := source.SetFrequency(params.Frequency); err != nil {
		return nil, err
	}
	if err := source.SetAmplitude(params.Amplitude); err != nil {
		return nil, err
	}
	if err := source.SetOffset(params.Offset); err != nil {
		return nil, err
	}

	// Fields that can never be invalid set directly
	source.name = params.Name
	source.Off = params.Off

	return source, nil
}

// Setters

// Sets the duty cycle if it lies in (0, 1].
func (s *Source) SetDutyCycle(dutyCycle float64) error {
	if !(dutyCycle > 0 && dutyCycle <= 1) {
		return errors.New("dutyCycle must lie in (0, 1]")
	}
	s.dutyCycle = dutyCycle
	return nil
}

// Sets the PWM frequency in Hz if it is positive and finite.
func (s *Source) SetFrequency(frequency float64) error {
	if !(frequency > 0) || math.IsInf(frequency, 1) {
		return errors.New("frequency must be a positive value")
	}
	s.frequency = frequency
	return nil
}

// Sets the ON amplitude. 0 defaults to 1.
func (s *Source) SetAmplitude(amplitude float64) error {
	if amplitude < 0 || math.IsNaN(amplitude) {
		return errors.New("amplitude must be a positive value")
	}
	if amplitude == 0 {
		amplitude = 1
	}
	s.amplitude = amplitude
	return nil
}

// Sets the OFF floor if offset >= 0.
func (s *Source) SetOffset(offset float64) error {
	if offset < 0 || math.IsNaN(offset) {
		return errors.New("offset must be greater than or equal to 0")
	}
	s.offset = offset
	return nil
}

// Getters

func (s *Source) Name() string {
	return s.name
}

func (s *Source) DutyCycle() float64 {
	return s.dutyCycle
}

func (s *Source) Frequency() float64 {
	return s.frequency
}

// Returns the pulse period in milliseconds.
func (s *Source) Period() float64 {
	return 1000 / s.frequency
}

func (s *Source) Amplitude() float64 {
	return s.amplitude
}

func (s *Source) Offset() float64 {
	return s.offset
}

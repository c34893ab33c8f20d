package scene

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Returns a decodeHook function that builds validated Source and Camera values when
// decoding with mapstructure. This supports configuration solutions like spf13/viper
// that use mapstructure to unmarshal yaml files.
func GetDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		sourceDecodeHookFunc(),
		cameraDecodeHookFunc(),
	)
}

// DecodeScene decodes a generic map, as produced by most configuration loaders, into a Scene.
func DecodeScene(input map[string]interface{}) (*Scene, error) {
	var s Scene
	decoderConfig := &mapstructure.DecoderConfig{
		DecodeHook:  GetDecodeHook(),
		ErrorUnused: true,
		Result:      &s,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(input); err != nil {
		return nil, err
	}

	// default source names to their keys, as the yaml decoder does
	for key, source := range s.Sources {
		if source.name == "" {
			source.name = key
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Returns a DecodeHookFunc that can be used to unmarshal a Source using its constructor.
func sourceDecodeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(Source{}) {
			return data, nil
		}

		var params SourceParams
		if err := decodeParams(&params, data); err != nil {
			return nil, err
		}
		return NewSource(params)
	}
}

// Returns a DecodeHookFunc that can be used to unmarshal a Camera using its constructor.
func cameraDecodeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(Camera{}) {
			return data, nil
		}

		var params CameraParams
		if err := decodeParams(&params, data); err != nil {
			return nil, err
		}
		return NewCamera(params)
	}
}

// Use mapstructure to unmarshal data into a params struct.
func decodeParams[T any](params *T, data interface{}) error {
	m, ok := data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("expected map[string]interface{}, got %T", data)
	}

	decoderConfig := &mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      params,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return err
	}
	return decoder.Decode(m)
}

package scene

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Container is a collection of named light sources.
type Container map[string]*Source

// UnmarshalYAML unmarshals a map of source entries, keyed by name, into the container.
func (c *Container) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]SourceParams
	if err := unmarshal(&raw); err != nil {
		return err
	}

	if *c == nil {
		*c = make(Container, len(raw))
	}
	for key, params := range raw {
		if params.Name == "" {
			params.Name = key
		}
		source, err := NewSource(params)
		if err != nil {
			return fmt.Errorf("source %s: %w", key, err)
		}
		(*c)[key] = source
	}

	return nil
}

// Add source to container with a UUID and returns the UUID.
func (c *Container) AddSource(source *Source) uuid.UUID {
	if *c == nil {
		*c = make(Container)
	}
	uuid := uuid.New()
	(*c)[uuid.String()] = source
	return uuid
}

// Returns the keys of the container in sorted order.
func (c Container) Keys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

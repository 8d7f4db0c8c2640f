package config

import (
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

// Validatable is implemented by config structs that need validation after unmarshalling.
type Validatable interface {
	Validate() error
}

func unmarshalAndValidate[T any](k *koanf.Koanf, path string) (*T, error) {
	cfg := new(T)
	if err := k.Unmarshal(path, cfg); err != nil {
		return nil, oops.Wrapf(err, "failed to unmarshal config at path %q", path)
	}

	if v, ok := any(cfg).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, oops.Wrapf(err, "config validation failed at path %q", path)
		}
	}

	return cfg, nil
}

// Decode unmarshals the merged view of doc at path into a new T and validates
// it when T implements [Validatable]. An empty path decodes the whole document.
func Decode[T any](doc *Document, path string) (*T, error) {
	return unmarshalAndValidate[T](doc.merged(), path)
}

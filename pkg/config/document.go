package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

// Document is a YAML configuration document backed by an on-disk layer and an
// optional layer of embedded defaults. Lookups consult the on-disk layer first
// and fall back to the defaults for any key it does not contain.
type Document struct {
	primary  *koanf.Koanf
	defaults *koanf.Koanf
}

// NewDocument wraps the given layers. defaults may be nil, in which case the
// document behaves as the raw primary layer. Null values are dropped from both
// layers, so a key set to null in the primary layer falls back to its default.
func NewDocument(primary, defaults *koanf.Koanf) *Document {
	if primary == nil {
		primary = koanf.New(delimiter)
	}

	return &Document{
		primary:  withoutNulls(primary),
		defaults: withoutNulls(defaults),
	}
}

func withoutNulls(k *koanf.Koanf) *koanf.Koanf {
	if k == nil {
		return nil
	}

	flat := k.All()
	for key, value := range flat {
		if value == nil {
			delete(flat, key)
		}
	}

	out := koanf.New(delimiter)
	_ = out.Load(confmap.Provider(flat, delimiter), nil)

	return out
}

func (d *Document) layer(path string) *koanf.Koanf {
	if d.primary.Exists(path) {
		return d.primary
	}

	if d.defaults != nil && d.defaults.Exists(path) {
		return d.defaults
	}

	return nil
}

// Exists reports whether path is present in either layer.
func (d *Document) Exists(path string) bool {
	return d.layer(path) != nil
}

// Get returns the raw value at path, or nil if it is absent from both layers.
func (d *Document) Get(path string) any {
	k := d.layer(path)
	if k == nil {
		return nil
	}
	return k.Get(path)
}

// String returns the scalar at path rendered as a string. The second return
// value is false when the path is absent, null or not a scalar.
func (d *Document) String(path string) (string, bool) {
	switch v := d.Get(path).(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case map[string]any, []any:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

// Bool returns the boolean at path. Missing paths and values that are not a
// YAML boolean yield false: callers must never rely on a true default.
// A present value of another type is not replaced by the defaults layer.
func (d *Document) Bool(path string) bool {
	v, ok := d.Get(path).(bool)
	return ok && v
}

// Keys returns all leaf keys across both layers.
func (d *Document) Keys() []string {
	return d.merged().Keys()
}

// Unmarshal decodes the merged view at path into out.
func (d *Document) Unmarshal(path string, out any) error {
	return oops.Wrapf(d.merged().Unmarshal(path, out), "failed to unmarshal document at path %q", path)
}

func (d *Document) merged() *koanf.Koanf {
	k := koanf.New(delimiter)

	if d.defaults != nil {
		_ = k.Merge(d.defaults)
	}
	_ = k.Merge(d.primary)

	return k
}

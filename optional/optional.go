/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package optional

import "errors"

// ErrNoValue is returned by Value.OrError when no value is present.
var ErrNoValue = errors.New("optional: no value present")

// Value holds either a value of type V or nothing.
// The zero value of Value is the absent variant.
type Value[V any] struct {
	value   V
	present bool
}

// Of returns a Value holding the provided value.
func Of[V any](value V) Value[V] {
	return Value[V]{value: value, present: true}
}

// Empty returns an absent Value.
func Empty[V any]() Value[V] {
	return Value[V]{}
}

// IsPresent reports whether a value is present.
func (v Value[V]) IsPresent() bool {
	return v.present
}

// Get returns the held value and whether it is present.
// If no value is present, the zero value of V is returned.
func (v Value[V]) Get() (V, bool) {
	return v.value, v.present
}

// MustGet returns the held value and panics if no value is present.
func (v Value[V]) MustGet() V {
	if !v.present {
		panic(ErrNoValue)
	}
	return v.value
}

// OrElse returns the held value if present and def otherwise.
func (v Value[V]) OrElse(def V) V {
	if !v.present {
		return def
	}
	return v.value
}

// OrError returns the held value if present and ErrNoValue otherwise.
func (v Value[V]) OrError() (V, error) {
	if !v.present {
		return v.value, ErrNoValue
	}
	return v.value, nil
}

/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package optional

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		v := Of(42)
		require.True(t, v.IsPresent())

		got, ok := v.Get()
		require.True(t, ok)
		require.Equal(t, 42, got)

		require.Equal(t, 42, v.MustGet())
		require.Equal(t, 42, v.OrElse(-1))

		got, err := v.OrError()
		require.NoError(t, err)
		require.Equal(t, 42, got)
	})

	t.Run("absent", func(t *testing.T) {
		v := Empty[int]()
		require.False(t, v.IsPresent())

		got, ok := v.Get()
		require.False(t, ok)
		require.Equal(t, 0, got)

		require.Equal(t, -1, v.OrElse(-1))

		_, err := v.OrError()
		require.ErrorIs(t, err, ErrNoValue)

		assert.PanicsWithValue(t, ErrNoValue, func() { v.MustGet() })
	})

	t.Run("zero value is absent", func(t *testing.T) {
		var v Value[string]
		require.False(t, v.IsPresent())
		require.Equal(t, "fallback", v.OrElse("fallback"))
	})
}

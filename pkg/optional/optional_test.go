package optional

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField(t *testing.T) {
	t.Run("NotSet", func(t *testing.T) {
		f := NotSet[string]()

		assert.False(t, f.IsSet())
		assert.Panics(t, func() { f.Value() })
		assert.Equal(t, "fallback", f.ValueOr("fallback"))
	})

	t.Run("ZeroValueIsNotSet", func(t *testing.T) {
		var f Field[int]

		assert.False(t, f.IsSet())
	})

	t.Run("Set", func(t *testing.T) {
		f := Set("value")

		assert.True(t, f.IsSet())
		assert.Equal(t, "value", f.Value())
	})

	t.Run("SetNil", func(t *testing.T) {
		f := Set[*string](nil)

		assert.True(t, f.IsSet())
		assert.Nil(t, f.Value())
	})

	t.Run("FromPtr", func(t *testing.T) {
		v := 3
		assert.False(t, FromPtr[int](nil).IsSet())
		assert.Equal(t, 3, FromPtr(&v).Value())
	})
}

func TestField_IfSet(t *testing.T) {
	t.Run("Success - invoked when set", func(t *testing.T) {
		called := 0
		Set(42).IfSet(func(v int) {
			called++
			assert.Equal(t, 42, v)
		})
		assert.Equal(t, 1, called)
	})

	t.Run("Success - invoked with nil", func(t *testing.T) {
		called := false
		Set[*string](nil).IfSet(func(v *string) {
			called = true
			assert.Nil(t, v)
		})
		assert.True(t, called)
	})

	t.Run("NoOp when not set", func(t *testing.T) {
		NotSet[int]().IfSet(func(int) {
			t.Fatal("action must not run")
		})
	})
}

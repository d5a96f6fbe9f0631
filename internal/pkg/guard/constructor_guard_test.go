package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type Note struct {
		text  string
		guard guard.ConstructorGuard
	}

	var errNoteNotConstructed = errors.New("Note must be created via newNote")

	newNote := func(text string) (Note, error) {
		if text == "" {
			return Note{}, errors.New("text is required")
		}
		return Note{
			text:  text,
			guard: guard.NewConstructorGuard(),
		}, nil
	}

	validateNote := func(n Note) error {
		return n.guard.Validate(errNoteNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		note, err := newNote("approved by support")

		require.NoError(t, err)
		require.NoError(t, validateNote(note))
		assert.Equal(t, "approved by support", note.text)
	})

	t.Run("zero_value_construction_fails_validation", func(t *testing.T) {
		var note Note // zero value

		err := validateNote(note)

		require.Error(t, err)
		assert.Equal(t, errNoteNotConstructed, err)
	})
}

func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Contains(t, guard.ErrDefaultConstructorGuard.Error(), "constructor")
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

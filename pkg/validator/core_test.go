package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipfwd/notifyd/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("title", "hello"),
			validator.OneOf("type", "system_alert", []string{"system_alert", "parcel_update"}),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failed rule", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("title", ""),
			validator.Required("message", "  "),
			validator.Required("userId", "u1"),
		)
		require.Error(t, err)

		ve, ok := validator.Extract(err)
		require.True(t, ok)
		assert.Len(t, ve, 2)
		assert.Equal(t, []string{"title", "message"}, ve.Fields())
		assert.True(t, ve.Has("title"))
		assert.False(t, ve.Has("userId"))
	})

	t.Run("no rules means no error", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply())
	})
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		ve, ok := validator.Extract(nil)
		assert.False(t, ok)
		assert.Nil(t, ve)
	})

	t.Run("unrelated error", func(t *testing.T) {
		t.Parallel()

		ve, ok := validator.Extract(errors.New("boom"))
		assert.False(t, ok)
		assert.Nil(t, ve)
	})

	t.Run("wrapped validation errors", func(t *testing.T) {
		t.Parallel()

		inner := validator.Apply(validator.Required("title", ""))
		wrapped := fmt.Errorf("create notification: %w", inner)

		ve, ok := validator.Extract(wrapped)
		require.True(t, ok)
		assert.True(t, ve.Has("title"))
		assert.True(t, validator.IsValidationError(wrapped))
	})
}

func TestRules(t *testing.T) {
	t.Parallel()

	t.Run("OneOf rejects unknown value", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(validator.OneOf("type", "banana", []string{"a", "b"}))
		require.Error(t, err)

		ve, _ := validator.Extract(err)
		assert.Contains(t, ve.Get("type")[0], "must be one of")
	})

	t.Run("EachOneOf names invalid entries", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(validator.EachOneOf("channels",
			[]string{"email", "carrier_pigeon"},
			[]string{"email", "sms", "push", "in_app"},
		))
		require.Error(t, err)

		ve, _ := validator.Extract(err)
		require.True(t, ve.Has("channels"))
		assert.Contains(t, ve.Get("channels")[0], "carrier_pigeon")
	})

	t.Run("EachOneOf passes on empty input", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(validator.EachOneOf("channels", nil, []string{"email"})))
	})

	t.Run("ClockTime", func(t *testing.T) {
		t.Parallel()

		valid := []string{"00:00", "07:30", "23:59", "12:00"}
		for _, v := range valid {
			assert.NoError(t, validator.Apply(validator.ClockTime("from", v)), v)
		}

		invalid := []string{"24:00", "7:30", "12:60", "12", "noon", "12:0", ""}
		for _, v := range invalid {
			assert.Error(t, validator.Apply(validator.ClockTime("from", v)), v)
		}
	})

	t.Run("BothOrNeither", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validator.Apply(validator.BothOrNeither("entity", "", "")))
		assert.NoError(t, validator.Apply(validator.BothOrNeither("entity", "Parcel", "id-1")))
		assert.Error(t, validator.Apply(validator.BothOrNeither("entity", "Parcel", "")))
		assert.Error(t, validator.Apply(validator.BothOrNeither("entity", "", "id-1")))
	})
}

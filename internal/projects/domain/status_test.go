package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus_Cycle(t *testing.T) {
	t.Run("steps through the full click cycle", func(t *testing.T) {
		s := NextStatus(nil)
		require.NotNil(t, s)
		assert.Equal(t, StatusNew, *s)

		s = NextStatus(s)
		require.NotNil(t, s)
		assert.Equal(t, StatusInProgress, *s)

		s = NextStatus(s)
		require.NotNil(t, s)
		assert.Equal(t, StatusDone, *s)

		s = NextStatus(s)
		require.NotNil(t, s)
		assert.Equal(t, StatusDelayed, *s)

		s = NextStatus(s)
		assert.Nil(t, s, "Delayed clears the entry")
	})

	t.Run("five applications return to the start", func(t *testing.T) {
		var s *Status
		for i := 0; i < 5; i++ {
			s = NextStatus(s)
		}
		assert.Nil(t, s)
	})
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		wire  Status
		label string
	}{
		{StatusNew, "Pending"},
		{StatusInProgress, "Doing"},
		{StatusDone, "Done"},
		{StatusDelayed, "Delayed"},
	}
	for _, c := range cases {
		assert.Equal(t, c.label, c.wire.Display())

		back, ok := ParseDisplay(c.label)
		require.True(t, ok)
		assert.Equal(t, c.wire, back)
	}

	_, ok := ParseStatus("Paused")
	assert.False(t, ok)
	_, ok = ParseDisplay("New")
	assert.False(t, ok, "wire value is not a display label")
}

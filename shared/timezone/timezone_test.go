package timezone_test

import (
	"hotel/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	previous := timezone.GetLocation().String()
	t.Cleanup(func() { timezone.Init(previous) })

	timezone.Init("Mars/Olympus_Mons")
	assert.Equal(t, time.UTC, timezone.GetLocation())

	timezone.Init("")
	assert.Equal(t, time.UTC, timezone.GetLocation())

	timezone.Init("UTC")
	assert.Equal(t, "UTC", timezone.GetLocation().String())
	assert.Equal(t, "UTC", timezone.Now().Location().String())
}

func TestParseAndFormat(t *testing.T) {
	previous := timezone.GetLocation().String()
	t.Cleanup(func() { timezone.Init(previous) })

	timezone.Init("UTC")

	checkIn, err := timezone.Parse(time.DateOnly, "2024-07-14")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC), checkIn)
	assert.Equal(t, "2024-07-14", timezone.Format(checkIn, time.DateOnly))

	_, err = timezone.Parse(time.DateOnly, "14/07/2024")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "three nights",
			start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "same day",
			start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "end before start",
			start:    time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: -3,
		},
		{
			name:     "time of day ignored",
			start:    time.Date(2024, 2, 28, 23, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC),
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timezone.DaysBetween(tt.start, tt.end))
		})
	}
}

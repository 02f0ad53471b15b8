package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"2025-05-01", true},
		{"2024-02-29", true},
		{"2025-02-29", false},
		{"2025-02-30", false},
		{"2025-13-01", false},
		{"2025-5-1", false},
		{"05/01/2025", false},
		{"", false},
		{" 2025-05-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseDate(tt.in)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
		valid   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"9:00", 0, false},
		{"09:00:00", 0, false},
		{"ab:cd", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if !tt.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, got)
			assert.Equal(t, tt.in, FormatClock(got))
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: 540, End: 600} // 09:00-10:00

	assert.True(t, base.Overlaps(Interval{Start: 570, End: 630}))
	assert.True(t, base.Overlaps(Interval{Start: 500, End: 700}))
	assert.True(t, base.Overlaps(base))
	assert.False(t, base.Overlaps(Interval{Start: 600, End: 660}), "touching at the end")
	assert.False(t, base.Overlaps(Interval{Start: 480, End: 540}), "touching at the start")
}

func TestIntervalContains(t *testing.T) {
	window := Interval{Start: 540, End: 660}

	assert.True(t, window.Contains(Interval{Start: 540, End: 660}))
	assert.True(t, window.Contains(Interval{Start: 600, End: 660}))
	assert.False(t, window.Contains(Interval{Start: 530, End: 600}))
	assert.False(t, window.Contains(Interval{Start: 600, End: 670}))
}

func TestIntervalSubtract(t *testing.T) {
	window := Interval{Start: 540, End: 660}

	got := window.Subtract([]Interval{{Start: 600, End: 630}, {Start: 540, End: 570}})
	assert.Equal(t, []Interval{{Start: 570, End: 600}, {Start: 630, End: 660}}, got)

	assert.Empty(t, window.Subtract([]Interval{{Start: 500, End: 700}}))
	assert.Equal(t, []Interval{window}, window.Subtract(nil))
}

func TestStartsAt(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got, err := StartsAt("2025-05-01", "09:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 1, 7, 30, 0, 0, time.UTC), got.UTC())
}

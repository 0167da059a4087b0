package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentForHourPeriods(t *testing.T) {
	tests := []struct {
		hour  int
		title string
	}{
		{0, titleNightCheckIn},
		{4, titleNightCheckIn},
		{5, titleMorningCheckIn},
		{11, titleMorningCheckIn},
		{12, titleAfternoonCheckIn},
		{16, titleAfternoonCheckIn},
		{17, titleEveningCheckIn},
		{20, titleEveningCheckIn},
		{21, titleNightCheckIn},
		{23, titleNightCheckIn},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.title, ContentForHour(tc.hour).Title, "hour %d", tc.hour)
	}
}

func TestContentForHourDeterministic(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		first := ContentForHour(hour)
		assert.Equal(t, first, ContentForHour(hour), "hour %d", hour)
		assert.NotEmpty(t, first.Body)
	}
}

func TestContentForHourBodyRotation(t *testing.T) {
	n := len(checkInBodies)
	assert.Equal(t, ContentForHour(0).Body, ContentForHour(n).Body)
	assert.NotEqual(t, ContentForHour(0).Body, ContentForHour(1).Body)
}

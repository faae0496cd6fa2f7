package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOrder(t *testing.T) {
	days := AllWeekdays()
	require.Len(t, days, 7)
	assert.Equal(t, Monday, days[0])
	assert.Equal(t, Sunday, days[6])

	for i := 1; i < len(days); i++ {
		assert.Greater(t, int(days[i]), int(days[i-1]))
	}
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("wednesday")
	require.NoError(t, err)
	assert.Equal(t, Wednesday, day)

	_, err = ParseWeekday("Wednesday")
	assert.Error(t, err)

	_, err = ParseWeekday("someday")
	assert.Error(t, err)
}

func TestWeekdayOf(t *testing.T) {
	// 2025-06-02 is a Monday, 2025-06-08 a Sunday
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Monday, WeekdayOf(monday))
	assert.Equal(t, Sunday, WeekdayOf(monday.AddDate(0, 0, 6)))
	assert.Equal(t, Tuesday, WeekdayOf(monday.AddDate(0, 0, 8)))
}

func TestWeekdayJSONMapKey(t *testing.T) {
	m := AvailabilityMap{
		Monday: {"09:00", "10:00"},
		Friday: {"14:00"},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"monday"`)
	assert.Contains(t, string(data), `"friday"`)

	var decoded AvailabilityMap
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)
}

func TestWeekdayUnmarshalRejectsUnknown(t *testing.T) {
	var decoded AvailabilityMap
	err := json.Unmarshal([]byte(`{"holiday":["09:00"]}`), &decoded)
	assert.Error(t, err)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", "09:00", false},
		{"9:00", "09:00", false},
		{" 14:30 ", "14:30", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"09:60", "", true},
		{"morning", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseTimeList(t *testing.T) {
	times, err := ParseTimeList("09:00, 14:30 ,")
	require.NoError(t, err)
	assert.Equal(t, []TimeOfDay{"09:00", "14:30"}, times)
}

func TestParseTimeListEmpty(t *testing.T) {
	times, err := ParseTimeList("  , ,")
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestParseTimeListRejectsMalformed(t *testing.T) {
	_, err := ParseTimeList("09:00, noonish")
	assert.Error(t, err)
}

func TestAvailabilityMapTimes(t *testing.T) {
	m := AvailabilityMap{Monday: {"10:00", "09:00"}}

	// stored order preserved, not re-sorted
	assert.Equal(t, []TimeOfDay{"10:00", "09:00"}, m.Times(Monday))
	assert.Empty(t, m.Times(Tuesday))

	var nilMap AvailabilityMap
	assert.Empty(t, nilMap.Times(Monday))
}

func TestAvailabilityMapNormalize(t *testing.T) {
	m := AvailabilityMap{Monday: {"9:00", "14:30"}}

	normalized, err := m.Normalize()
	require.NoError(t, err)
	assert.Equal(t, []TimeOfDay{"09:00", "14:30"}, normalized[Monday])

	_, err = AvailabilityMap{Monday: {"bogus"}}.Normalize()
	assert.Error(t, err)

	_, err = AvailabilityMap{Weekday(9): {"09:00"}}.Normalize()
	assert.Error(t, err)
}

func TestAvailabilityMapScanValue(t *testing.T) {
	m := AvailabilityMap{
		Monday:   {"09:00", "10:00"},
		Saturday: {"11:00"},
	}

	value, err := m.Value()
	require.NoError(t, err)

	var decoded AvailabilityMap
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, m, decoded)
}

func TestAvailabilityMapScanNil(t *testing.T) {
	var decoded AvailabilityMap
	require.NoError(t, decoded.Scan(nil))
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

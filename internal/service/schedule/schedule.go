// Package schedule turns a provider's recurring weekly availability into
// concrete candidate slots. Two generation strategies exist: expanding the
// weekly template over a date window, and a fixed time grid independent of
// the declared availability. The caller picks one explicitly.
package schedule

import (
	"fmt"
	"time"

	"github.com/slotwise/booking-api/internal/model"
)

// Strategy selects how candidate slots are generated.
type Strategy string

const (
	// StrategyTemplate expands the provider's weekly availability map.
	StrategyTemplate Strategy = "template"
	// StrategyGrid emits a fixed time grid, ignoring the availability map.
	StrategyGrid Strategy = "grid"
)

// DefaultWindowDays is the window used by the provider detail view.
const DefaultWindowDays = 7

// GridConfig describes the fixed-grid strategy. Both endpoints are
// inclusive: 09:00-17:00 at 60 minutes yields 9 times.
type GridConfig struct {
	Start       model.TimeOfDay
	End         model.TimeOfDay
	StepMinutes int
}

func DefaultGridConfig() GridConfig {
	return GridConfig{
		Start:       "09:00",
		End:         "17:00",
		StepMinutes: 60,
	}
}

// CandidateSlots expands the weekly template over numDays consecutive
// days starting at start. Slots are ordered by day, then by the stored
// order of times within the day; stored order is not re-sorted.
// Weekdays absent from the map contribute nothing.
func CandidateSlots(availability model.AvailabilityMap, start time.Time, numDays int) []model.Slot {
	var slots []model.Slot
	for i := 0; i < numDays; i++ {
		day := start.AddDate(0, 0, i)
		for _, t := range availability.Times(model.WeekdayOf(day)) {
			slots = append(slots, model.Slot{Date: day, Time: t})
		}
	}
	return slots
}

// GridSlots emits every time from Start through End inclusive, stepping
// by StepMinutes.
func GridSlots(cfg GridConfig) ([]model.TimeOfDay, error) {
	start, err := time.Parse("15:04", string(cfg.Start))
	if err != nil {
		return nil, fmt.Errorf("invalid grid start: %w", err)
	}
	end, err := time.Parse("15:04", string(cfg.End))
	if err != nil {
		return nil, fmt.Errorf("invalid grid end: %w", err)
	}
	if cfg.StepMinutes <= 0 {
		return nil, fmt.Errorf("invalid grid step: %d", cfg.StepMinutes)
	}

	step := time.Duration(cfg.StepMinutes) * time.Minute
	var times []model.TimeOfDay
	for t := start; !t.After(end); t = t.Add(step) {
		times = append(times, model.TimeOfDay(t.Format("15:04")))
	}
	return times, nil
}

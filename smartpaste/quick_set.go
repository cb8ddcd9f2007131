package smartpaste

import (
	"github.com/pkg/errors"

	"ptalk-server/models/venue"
)

// ErrInvalidDayType is returned when a target day is outside 1..7.
var ErrInvalidDayType = errors.New("day type must be between 1 and 7")

// QuickSet replaces the periods of every target day with the single period
// open-close and returns the new schedule.
func QuickSet(existing venue.WeekSchedule, days []venue.DayType, openTime, closeTime string) (venue.WeekSchedule, error) {
	for _, d := range days {
		if !d.Valid() {
			return nil, errors.Wrapf(ErrInvalidDayType, "got %d", d)
		}
	}
	seen := make(map[venue.DayType]bool, len(days))
	parsed := make([]venue.ParsedPeriod, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		parsed = append(parsed, venue.ParsedPeriod{
			DayType:    d,
			TimePeriod: venue.TimePeriod{OpenTime: openTime, CloseTime: closeTime},
		})
	}
	return ConvertToFormFormat(parsed, nil, existing)
}

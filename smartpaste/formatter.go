package smartpaste

import (
	"strings"

	"ptalk-server/models/venue"
)

const CLOSED_LABEL = "休息"

// FormatOutcome renders a parse outcome back to text that ParseOpeningHoursText
// reads as the same periods and closed days: a label line per day followed by
// one "HH:MM-HH:MM" line per period, or a closed marker.
func FormatOutcome(outcome venue.ParseOutcome) string {
	var b strings.Builder
	for _, d := range GetParsedDayTypes(outcome.RecognizedPeriods, outcome.ClosedDays) {
		if outcome.IsClosed(d) {
			writeDay(&b, d, nil)
			continue
		}
		writeDay(&b, d, outcome.PeriodsFor(d))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatWeekSchedule renders all seven days in the same layout as FormatOutcome.
func FormatWeekSchedule(week venue.WeekSchedule) string {
	var b strings.Builder
	for _, day := range week {
		writeDay(&b, day.DayType, day.Periods)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeDay(b *strings.Builder, d venue.DayType, periods []venue.TimePeriod) {
	b.WriteString(d.Label())
	b.WriteByte('\n')
	if len(periods) == 0 {
		b.WriteString(CLOSED_LABEL)
		b.WriteByte('\n')
		return
	}
	for _, p := range periods {
		b.WriteString(p.String())
		b.WriteByte('\n')
	}
}

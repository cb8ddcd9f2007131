// Package smartpaste turns free text pasted by merchants, usually copied from
// a map service listing, into structured opening hours and coordinates.
package smartpaste

import (
	"sort"

	"github.com/pkg/errors"

	"ptalk-server/models/venue"
)

const REASON_UNPARSABLE_TIME = "cannot parse time format"

var (
	// ErrEmptyText is returned when there is nothing to parse.
	ErrEmptyText = errors.New("opening hours text is empty")
	// ErrNoDayRecognized is returned when no line names a weekday.
	ErrNoDayRecognized = errors.New("no day information recognized")
)

type sectionResult struct {
	periods      []venue.TimePeriod
	closed       bool
	unrecognized []venue.UnrecognizedLine
}

// parseSection resolves one day's content. A closed marker anywhere in the
// section wins over every time range in it.
func parseSection(section DaySection) sectionResult {
	lines := section.lines()
	for _, line := range lines {
		if _, isHeader := IdentifyDayType(line); isHeader {
			continue
		}
		if IsClosedDay(line) {
			return sectionResult{closed: true}
		}
	}

	var res sectionResult
	for _, line := range lines {
		if _, isHeader := IdentifyDayType(line); isHeader {
			continue
		}
		if period, ok := ParseTimeRange(line); ok {
			res.periods = append(res.periods, period)
			continue
		}
		res.unrecognized = append(res.unrecognized, venue.UnrecognizedLine{
			Line:    line,
			Reason:  REASON_UNPARSABLE_TIME,
			Context: section.Content,
		})
	}
	return res
}

// ParseOpeningHoursText parses pasted opening hours. existingDays are the days
// that already hold periods; any of them touched by this parse is reported in
// ConflictDays. An error is returned only when the text is empty or contains
// no day header at all.
func ParseOpeningHoursText(text string, existingDays []venue.DayType) (venue.ParseOutcome, error) {
	outcome := venue.ParseOutcome{
		RecognizedPeriods: []venue.ParsedPeriod{},
		ClosedDays:        []venue.DayType{},
		UnrecognizedLines: []venue.UnrecognizedLine{},
		ConflictDays:      []venue.DayType{},
	}

	if trim(text) == "" {
		return outcome, ErrEmptyText
	}

	sections := SplitByDay(text)
	if len(sections) == 0 {
		return outcome, ErrNoDayRecognized
	}

	for _, section := range sections {
		dayType, ok := IdentifyDayType(section.Header)
		if !ok {
			continue
		}

		res := parseSection(section)
		if res.closed {
			if !containsDay(outcome.ClosedDays, dayType) {
				outcome.ClosedDays = append(outcome.ClosedDays, dayType)
			}
			continue
		}
		for _, p := range res.periods {
			outcome.RecognizedPeriods = append(outcome.RecognizedPeriods, venue.ParsedPeriod{DayType: dayType, TimePeriod: p})
		}
		outcome.UnrecognizedLines = append(outcome.UnrecognizedLines, res.unrecognized...)
	}

	existing := make(map[venue.DayType]bool, len(existingDays))
	for _, d := range existingDays {
		existing[d] = true
	}
	for _, d := range GetParsedDayTypes(outcome.RecognizedPeriods, outcome.ClosedDays) {
		if existing[d] {
			outcome.ConflictDays = append(outcome.ConflictDays, d)
		}
	}
	return outcome, nil
}

// ConvertToFormFormat merges parsed periods and closed days into a copy of
// existing. Every mentioned day is overwritten wholesale; closed days end up
// empty; other days are left as they were.
func ConvertToFormFormat(parsed []venue.ParsedPeriod, closedDays []venue.DayType, existing venue.WeekSchedule) (venue.WeekSchedule, error) {
	if err := existing.Validate(); err != nil {
		return nil, err
	}
	result := existing.Clone()

	grouped := make(map[venue.DayType][]venue.TimePeriod)
	for _, p := range parsed {
		grouped[p.DayType] = append(grouped[p.DayType], p.TimePeriod)
	}

	for i := range result {
		if periods, ok := grouped[result[i].DayType]; ok {
			result[i].Periods = periods
		}
		if containsDay(closedDays, result[i].DayType) {
			result[i].Periods = []venue.TimePeriod{}
		}
	}
	return result, nil
}

// GetParsedDayTypes returns every day touched by a parse, deduplicated and ascending.
func GetParsedDayTypes(parsed []venue.ParsedPeriod, closedDays []venue.DayType) []venue.DayType {
	seen := make(map[venue.DayType]bool)
	days := []venue.DayType{}
	add := func(d venue.DayType) {
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	for _, p := range parsed {
		add(p.DayType)
	}
	for _, d := range closedDays {
		add(d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

func containsDay(days []venue.DayType, d venue.DayType) bool {
	for _, x := range days {
		if x == d {
			return true
		}
	}
	return false
}

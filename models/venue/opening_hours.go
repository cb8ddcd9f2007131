package venue

import (
	"fmt"

	"github.com/pkg/errors"
)

// DayType is a weekday number, Monday=1 through Sunday=7.
type DayType int

const (
	MONDAY    DayType = 1
	TUESDAY   DayType = 2
	WEDNESDAY DayType = 3
	THURSDAY  DayType = 4
	FRIDAY    DayType = 5
	SATURDAY  DayType = 6
	SUNDAY    DayType = 7
)

const DEFAULT_OPEN_TIME = "09:00"
const DEFAULT_CLOSE_TIME = "18:00"

// AllDayTypes lists every weekday in schedule order.
var AllDayTypes = []DayType{MONDAY, TUESDAY, WEDNESDAY, THURSDAY, FRIDAY, SATURDAY, SUNDAY}

var dayTypeLabels = map[DayType]string{
	MONDAY:    "週一",
	TUESDAY:   "週二",
	WEDNESDAY: "週三",
	THURSDAY:  "週四",
	FRIDAY:    "週五",
	SATURDAY:  "週六",
	SUNDAY:    "週日",
}

// ErrIncompleteWeekSchedule is returned when a schedule does not hold each weekday exactly once.
var ErrIncompleteWeekSchedule = errors.New("week schedule must contain each day type exactly once")

func (d DayType) Valid() bool {
	return d >= MONDAY && d <= SUNDAY
}

// Label returns the short display label, e.g. 週二.
func (d DayType) Label() string {
	if l, ok := dayTypeLabels[d]; ok {
		return l
	}
	return fmt.Sprintf("day(%d)", int(d))
}

// TimePeriod is one open interval within a day. Times are "HH:MM".
type TimePeriod struct {
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

func (p TimePeriod) String() string {
	return p.OpenTime + "-" + p.CloseTime
}

// DailySchedule holds the periods of a single day. No periods means closed.
type DailySchedule struct {
	DayType DayType      `json:"dayType"`
	Periods []TimePeriod `json:"periods"`
}

func (d DailySchedule) IsClosed() bool {
	return len(d.Periods) == 0
}

// WeekSchedule is the persisted opening hours of a venue, one entry per day.
type WeekSchedule []DailySchedule

// DefaultWeekSchedule opens every day from 09:00 to 18:00.
func DefaultWeekSchedule() WeekSchedule {
	week := make(WeekSchedule, 0, len(AllDayTypes))
	for _, d := range AllDayTypes {
		week = append(week, DailySchedule{
			DayType: d,
			Periods: []TimePeriod{{OpenTime: DEFAULT_OPEN_TIME, CloseTime: DEFAULT_CLOSE_TIME}},
		})
	}
	return week
}

// Validate checks that every day type appears exactly once.
func (w WeekSchedule) Validate() error {
	if len(w) != len(AllDayTypes) {
		return errors.Wrapf(ErrIncompleteWeekSchedule, "got %d days", len(w))
	}
	seen := make(map[DayType]bool, len(w))
	for _, day := range w {
		if !day.DayType.Valid() {
			return errors.Wrapf(ErrIncompleteWeekSchedule, "invalid day type %d", day.DayType)
		}
		if seen[day.DayType] {
			return errors.Wrapf(ErrIncompleteWeekSchedule, "duplicate day type %d", day.DayType)
		}
		seen[day.DayType] = true
	}
	return nil
}

// Clone returns a deep copy.
func (w WeekSchedule) Clone() WeekSchedule {
	if w == nil {
		return nil
	}
	out := make(WeekSchedule, len(w))
	for i, day := range w {
		periods := make([]TimePeriod, len(day.Periods))
		copy(periods, day.Periods)
		out[i] = DailySchedule{DayType: day.DayType, Periods: periods}
	}
	return out
}

// Day returns the schedule entry for d.
func (w WeekSchedule) Day(d DayType) (DailySchedule, bool) {
	for _, day := range w {
		if day.DayType == d {
			return day, true
		}
	}
	return DailySchedule{}, false
}

// DaysWithPeriods returns the days currently holding at least one period, in schedule order.
func (w WeekSchedule) DaysWithPeriods() []DayType {
	var days []DayType
	for _, day := range w {
		if len(day.Periods) > 0 {
			days = append(days, day.DayType)
		}
	}
	return days
}

// ParsedPeriod is a period recognized for a given day by the smart paste parser.
type ParsedPeriod struct {
	DayType DayType `json:"dayType"`
	TimePeriod
}

// UnrecognizedLine is a content line that was neither a closed marker nor a time range.
type UnrecognizedLine struct {
	Line    string `json:"line"`
	Reason  string `json:"reason"`
	Context string `json:"context,omitempty"`
}

// ParseOutcome is the result of parsing pasted opening hours text.
type ParseOutcome struct {
	RecognizedPeriods []ParsedPeriod     `json:"recognizedPeriods"`
	ClosedDays        []DayType          `json:"closedDays"`
	UnrecognizedLines []UnrecognizedLine `json:"unrecognizedLines"`
	ConflictDays      []DayType          `json:"conflictDays"`
}

func (o ParseOutcome) HasConflicts() bool {
	return len(o.ConflictDays) > 0
}

// HasApplicableData reports whether merging the outcome would change anything.
func (o ParseOutcome) HasApplicableData() bool {
	return len(o.RecognizedPeriods) > 0 || len(o.ClosedDays) > 0
}

// PeriodsFor returns the recognized periods of a single day, in parse order.
func (o ParseOutcome) PeriodsFor(d DayType) []TimePeriod {
	var periods []TimePeriod
	for _, p := range o.RecognizedPeriods {
		if p.DayType == d {
			periods = append(periods, p.TimePeriod)
		}
	}
	return periods
}

func (o ParseOutcome) IsClosed(d DayType) bool {
	for _, c := range o.ClosedDays {
		if c == d {
			return true
		}
	}
	return false
}

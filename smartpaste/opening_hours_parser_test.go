package smartpaste

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptalk-server/models/venue"
)

const googleMapsSample = `星期二
11:30–14:30
16:30–22:30

星期三
休息`

func period(d venue.DayType, open, close string) venue.ParsedPeriod {
	return venue.ParsedPeriod{DayType: d, TimePeriod: venue.TimePeriod{OpenTime: open, CloseTime: close}}
}

func TestParseOpeningHoursText_GoogleMapsSample(t *testing.T) {
	outcome, err := ParseOpeningHoursText(googleMapsSample, nil)

	require.NoError(t, err)
	assert.Equal(t, []venue.ParsedPeriod{
		period(venue.TUESDAY, "11:30", "14:30"),
		period(venue.TUESDAY, "16:30", "22:30"),
	}, outcome.RecognizedPeriods)
	assert.Equal(t, []venue.DayType{venue.WEDNESDAY}, outcome.ClosedDays)
	assert.Empty(t, outcome.UnrecognizedLines)
	assert.Empty(t, outcome.ConflictDays)
	assert.False(t, outcome.HasConflicts())
	assert.True(t, outcome.HasApplicableData())
}

func TestParseOpeningHoursText_ClosedWinsOverTimeRanges(t *testing.T) {
	text := "Monday\n09:00-12:00\nclosed\n13:00-18:00\nTuesday\n10:00-20:00"

	outcome, err := ParseOpeningHoursText(text, nil)

	require.NoError(t, err)
	assert.Equal(t, []venue.DayType{venue.MONDAY}, outcome.ClosedDays)
	assert.Equal(t, []venue.ParsedPeriod{period(venue.TUESDAY, "10:00", "20:00")}, outcome.RecognizedPeriods)
	assert.Empty(t, outcome.UnrecognizedLines)
}

func TestParseOpeningHoursText_UnrecognizedLines(t *testing.T) {
	text := "週五\n11:00-14:00\n最後點餐 20:30\n週六\n請來電洽詢"

	outcome, err := ParseOpeningHoursText(text, nil)

	require.NoError(t, err)
	assert.Equal(t, []venue.ParsedPeriod{period(venue.FRIDAY, "11:00", "14:00")}, outcome.RecognizedPeriods)
	require.Len(t, outcome.UnrecognizedLines, 2)
	assert.Equal(t, venue.UnrecognizedLine{
		Line:    "最後點餐 20:30",
		Reason:  REASON_UNPARSABLE_TIME,
		Context: "11:00-14:00\n最後點餐 20:30",
	}, outcome.UnrecognizedLines[0])
	assert.Equal(t, "請來電洽詢", outcome.UnrecognizedLines[1].Line)
	assert.Empty(t, outcome.ClosedDays)
}

func TestParseOpeningHoursText_BodylessHeaderIsIgnored(t *testing.T) {
	outcome, err := ParseOpeningHoursText("星期一\n星期二\n9:00-18:00", []venue.DayType{venue.MONDAY})

	require.NoError(t, err)
	assert.Equal(t, []venue.ParsedPeriod{period(venue.TUESDAY, "09:00", "18:00")}, outcome.RecognizedPeriods)
	assert.Empty(t, outcome.ClosedDays)
	assert.Empty(t, outcome.UnrecognizedLines)
	assert.Empty(t, outcome.ConflictDays)
}

func TestParseOpeningHoursText_StructuralErrors(t *testing.T) {
	_, err := ParseOpeningHoursText("  \n ", nil)
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = ParseOpeningHoursText("11:30–14:30\n休息", nil)
	assert.ErrorIs(t, err, ErrNoDayRecognized)
}

func TestParseOpeningHoursText_ConflictDays(t *testing.T) {
	t.Run("overlap reported", func(t *testing.T) {
		outcome, err := ParseOpeningHoursText(googleMapsSample, []venue.DayType{venue.MONDAY, venue.TUESDAY})

		require.NoError(t, err)
		assert.Equal(t, []venue.DayType{venue.TUESDAY}, outcome.ConflictDays)
		assert.True(t, outcome.HasConflicts())
	})

	t.Run("closed day counts as overwrite", func(t *testing.T) {
		outcome, err := ParseOpeningHoursText(googleMapsSample, []venue.DayType{venue.WEDNESDAY, venue.TUESDAY})

		require.NoError(t, err)
		assert.Equal(t, []venue.DayType{venue.TUESDAY, venue.WEDNESDAY}, outcome.ConflictDays)
	})

	t.Run("disjoint days", func(t *testing.T) {
		outcome, err := ParseOpeningHoursText(googleMapsSample, []venue.DayType{venue.FRIDAY, venue.SUNDAY})

		require.NoError(t, err)
		assert.Empty(t, outcome.ConflictDays)
	})
}

func TestParseOpeningHoursText_RepeatedDay(t *testing.T) {
	text := "Mon\n9:00-12:00\nMonday\n13:00-17:00\nSat\nclosed\n週六\n休息"

	outcome, err := ParseOpeningHoursText(text, nil)

	require.NoError(t, err)
	assert.Equal(t, []venue.ParsedPeriod{
		period(venue.MONDAY, "09:00", "12:00"),
		period(venue.MONDAY, "13:00", "17:00"),
	}, outcome.RecognizedPeriods)
	assert.Equal(t, []venue.DayType{venue.SATURDAY}, outcome.ClosedDays)
}

func TestConvertToFormFormat(t *testing.T) {
	existing := venue.DefaultWeekSchedule()
	outcome, err := ParseOpeningHoursText(googleMapsSample, existing.DaysWithPeriods())
	require.NoError(t, err)

	merged, err := ConvertToFormFormat(outcome.RecognizedPeriods, outcome.ClosedDays, existing)

	require.NoError(t, err)
	require.NoError(t, merged.Validate())
	for i, day := range merged {
		switch day.DayType {
		case venue.TUESDAY:
			assert.Equal(t, []venue.TimePeriod{
				{OpenTime: "11:30", CloseTime: "14:30"},
				{OpenTime: "16:30", CloseTime: "22:30"},
			}, day.Periods)
		case venue.WEDNESDAY:
			assert.Empty(t, day.Periods)
			assert.True(t, day.IsClosed())
		default:
			assert.Equal(t, existing[i], day)
		}
	}
}

func TestConvertToFormFormat_DoesNotMutateExisting(t *testing.T) {
	existing := venue.DefaultWeekSchedule()
	before := existing.Clone()

	_, err := ConvertToFormFormat([]venue.ParsedPeriod{period(venue.MONDAY, "10:00", "11:00")}, []venue.DayType{venue.SUNDAY}, existing)

	require.NoError(t, err)
	assert.Equal(t, before, existing)
}

func TestConvertToFormFormat_ClosedOverridesPeriods(t *testing.T) {
	merged, err := ConvertToFormFormat(
		[]venue.ParsedPeriod{period(venue.FRIDAY, "10:00", "11:00")},
		[]venue.DayType{venue.FRIDAY},
		venue.DefaultWeekSchedule(),
	)

	require.NoError(t, err)
	friday, ok := merged.Day(venue.FRIDAY)
	require.True(t, ok)
	assert.Empty(t, friday.Periods)
}

func TestConvertToFormFormat_RejectsIncompleteSchedule(t *testing.T) {
	incomplete := venue.DefaultWeekSchedule()[:6]

	_, err := ConvertToFormFormat(nil, nil, incomplete)

	assert.ErrorIs(t, err, venue.ErrIncompleteWeekSchedule)
}

func TestGetParsedDayTypes(t *testing.T) {
	parsed := []venue.ParsedPeriod{
		period(venue.WEDNESDAY, "09:00", "12:00"),
		period(venue.MONDAY, "09:00", "12:00"),
		period(venue.WEDNESDAY, "13:00", "18:00"),
	}

	days := GetParsedDayTypes(parsed, []venue.DayType{venue.FRIDAY, venue.MONDAY})

	assert.Equal(t, []venue.DayType{venue.MONDAY, venue.WEDNESDAY, venue.FRIDAY}, days)
	assert.Empty(t, GetParsedDayTypes(nil, nil))
}

func TestFormatOutcome_RoundTrip(t *testing.T) {
	text := "星期一\n9:00 to 12:00\n13:00～18:00\n星期三\n公休\nSaturday\n10:00–22:00"
	first, err := ParseOpeningHoursText(text, nil)
	require.NoError(t, err)

	second, err := ParseOpeningHoursText(FormatOutcome(first), nil)

	require.NoError(t, err)
	assert.Equal(t, first.RecognizedPeriods, second.RecognizedPeriods)
	assert.Equal(t, first.ClosedDays, second.ClosedDays)
	assert.Empty(t, second.UnrecognizedLines)
}

func TestFormatWeekSchedule(t *testing.T) {
	week := venue.DefaultWeekSchedule()
	week[6].Periods = nil

	text := FormatWeekSchedule(week)

	assert.Contains(t, text, "週一\n09:00-18:00\n")
	assert.True(t, len(text) > 0 && text[len(text)-1] != '\n')
	outcome, err := ParseOpeningHoursText(text, nil)
	require.NoError(t, err)
	merged, err := ConvertToFormFormat(outcome.RecognizedPeriods, outcome.ClosedDays, venue.DefaultWeekSchedule())
	require.NoError(t, err)
	assert.Empty(t, merged[6].Periods)
	assert.Equal(t, week[:6], merged[:6])
}

func TestQuickSet(t *testing.T) {
	week, err := QuickSet(venue.DefaultWeekSchedule(), []venue.DayType{venue.SATURDAY, venue.SUNDAY, venue.SATURDAY}, "10:00", "22:00")

	require.NoError(t, err)
	sat, _ := week.Day(venue.SATURDAY)
	assert.Equal(t, []venue.TimePeriod{{OpenTime: "10:00", CloseTime: "22:00"}}, sat.Periods)
	mon, _ := week.Day(venue.MONDAY)
	assert.Equal(t, []venue.TimePeriod{{OpenTime: "09:00", CloseTime: "18:00"}}, mon.Periods)

	_, err = QuickSet(venue.DefaultWeekSchedule(), []venue.DayType{8}, "10:00", "22:00")
	assert.ErrorIs(t, err, ErrInvalidDayType)
}

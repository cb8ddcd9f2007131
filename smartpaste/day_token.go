package smartpaste

import (
	"strings"

	"ptalk-server/models/venue"
)

type dayAliases struct {
	dayType venue.DayType
	aliases []string
}

// dayAliasTable is scanned in order; the first alias contained in a line wins.
var dayAliasTable = []dayAliases{
	{venue.MONDAY, []string{"週一", "星期一", "周一", "禮拜一", "monday", "mon"}},
	{venue.TUESDAY, []string{"週二", "星期二", "周二", "禮拜二", "tuesday", "tue"}},
	{venue.WEDNESDAY, []string{"週三", "星期三", "周三", "禮拜三", "wednesday", "wed"}},
	{venue.THURSDAY, []string{"週四", "星期四", "周四", "禮拜四", "thursday", "thu"}},
	{venue.FRIDAY, []string{"週五", "星期五", "周五", "禮拜五", "friday", "fri"}},
	{venue.SATURDAY, []string{"週六", "星期六", "周六", "禮拜六", "saturday", "sat"}},
	{venue.SUNDAY, []string{"週日", "星期日", "星期天", "周日", "禮拜日", "禮拜天", "sunday", "sun"}},
}

// IdentifyDayType returns the weekday a line refers to, matching aliases as
// case-insensitive substrings.
func IdentifyDayType(line string) (venue.DayType, bool) {
	cleaned := strings.ToLower(trim(line))
	for _, entry := range dayAliasTable {
		for _, alias := range entry.aliases {
			if strings.Contains(cleaned, strings.ToLower(alias)) {
				return entry.dayType, true
			}
		}
	}
	return 0, false
}

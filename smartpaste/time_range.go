package smartpaste

import (
	"regexp"
	"strings"
	"unicode"

	"ptalk-server/models/venue"
)

// ws also covers the narrow and ideographic spaces map services paste.
const ws = `[\s\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

type timeRangeMatcher struct {
	name    string
	pattern *regexp.Regexp
}

// timeRangeMatchers are tried in order and the first match wins. Each pattern
// captures open hour, open minute, close hour, close minute.
var timeRangeMatchers = []timeRangeMatcher{
	{"dash", regexp.MustCompile(`(\d{1,2}):(\d{2})` + ws + `*[–—]` + ws + `*(\d{1,2}):(\d{2})`)},
	{"hyphen", regexp.MustCompile(`(\d{1,2}):(\d{2})` + ws + `*-` + ws + `*(\d{1,2}):(\d{2})`)},
	{"tilde", regexp.MustCompile(`(\d{1,2}):(\d{2})` + ws + `*[~～]` + ws + `*(\d{1,2}):(\d{2})`)},
	{"space", regexp.MustCompile(`(\d{1,2}):(\d{2})` + ws + `+(\d{1,2}):(\d{2})`)},
	{"word", regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})` + ws + `*(?:to|至|到)` + ws + `*(\d{1,2}):(\d{2})`)},
	{"fullwidth-colon", regexp.MustCompile(`(\d{1,2})：(\d{2})` + ws + `*[-–—~]` + ws + `*(\d{1,2})：(\d{2})`)},
}

func (m timeRangeMatcher) match(line string) (venue.TimePeriod, bool) {
	groups := m.pattern.FindStringSubmatch(line)
	if groups == nil {
		return venue.TimePeriod{}, false
	}
	return venue.TimePeriod{
		OpenTime:  padHour(groups[1]) + ":" + groups[2],
		CloseTime: padHour(groups[3]) + ":" + groups[4],
	}, true
}

// ParseTimeRange extracts the first time interval found in line. Hour and
// minute values are not range checked.
func ParseTimeRange(line string) (venue.TimePeriod, bool) {
	for _, m := range timeRangeMatchers {
		if period, ok := m.match(line); ok {
			return period, true
		}
	}
	return venue.TimePeriod{}, false
}

func padHour(h string) string {
	if len(h) < 2 {
		return "0" + h
	}
	return h
}

func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

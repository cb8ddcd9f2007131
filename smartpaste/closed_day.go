package smartpaste

import "strings"

var closedKeywords = []string{"休息", "公休", "休館", "不營業", "未營業", "休", "closed", "close"}

// IsClosedDay reports whether a line marks the day as closed.
func IsClosedDay(line string) bool {
	cleaned := strings.ToLower(trim(line))
	for _, keyword := range closedKeywords {
		if strings.Contains(cleaned, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

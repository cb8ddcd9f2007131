package smartpaste

import "strings"

// DaySection is a day header line and the non-blank lines that follow it.
type DaySection struct {
	Header  string
	Content string
}

func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// SplitByDay partitions text into sections starting at each day header.
// Lines before the first header are dropped.
func SplitByDay(text string) []DaySection {
	var sections []DaySection
	var current *DaySection

	for _, line := range strings.Split(trim(normalizeLineEndings(text)), "\n") {
		trimmed := trim(line)
		if trimmed == "" {
			continue
		}
		if _, ok := IdentifyDayType(trimmed); ok {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &DaySection{Header: trimmed}
			continue
		}
		if current == nil {
			continue
		}
		if current.Content != "" {
			current.Content += "\n"
		}
		current.Content += trimmed
	}
	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}

func (s DaySection) lines() []string {
	var out []string
	for _, line := range strings.Split(s.Content, "\n") {
		if trimmed := trim(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

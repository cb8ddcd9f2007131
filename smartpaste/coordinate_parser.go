package smartpaste

import (
	"regexp"
	"strconv"
	"strings"

	"ptalk-server/models/venue"
)

// ParseCoordinateText parses "lat, lon" or "lat lon" into a coordinate. The
// first number is always the latitude. Any failure yields ok == false and no
// partial result.
func ParseCoordinateText(text string) (venue.Coordinate, bool) {
	trimmed := trim(text)

	parts := strings.Split(trimmed, ",")
	for i := range parts {
		parts[i] = trim(parts[i])
	}
	if len(parts) != 2 {
		parts = strings.Fields(trimmed)
	}
	if len(parts) != 2 {
		return venue.Coordinate{}, false
	}

	lat, ok := parseFiniteFloat(parts[0])
	if !ok {
		return venue.Coordinate{}, false
	}
	lon, ok := parseFiniteFloat(parts[1])
	if !ok {
		return venue.Coordinate{}, false
	}

	c := venue.Coordinate{Latitude: lat, Longitude: lon}
	if !c.Valid() {
		return venue.Coordinate{}, false
	}
	return c, true
}

// decimalPattern is plain decimal with an optional exponent. Hex floats,
// digit separators, Inf and NaN are rejected before strconv sees them.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

func parseFiniteFloat(s string) (float64, bool) {
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

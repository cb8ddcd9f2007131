package smartpaste

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ptalk-server/models/venue"
)

func TestParseCoordinateText(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   venue.Coordinate
		wantOK bool
	}{
		{"comma separated", "25.0330, 121.5654", venue.Coordinate{Latitude: 25.0330, Longitude: 121.5654}, true},
		{"comma without space", "25.0330,121.5654", venue.Coordinate{Latitude: 25.0330, Longitude: 121.5654}, true},
		{"space separated", "25.0330 121.5654", venue.Coordinate{Latitude: 25.0330, Longitude: 121.5654}, true},
		{"surrounding whitespace", "  -33.8688,\t151.2093 \n", venue.Coordinate{Latitude: -33.8688, Longitude: 151.2093}, true},
		{"boundary values", "90, -180", venue.Coordinate{Latitude: 90, Longitude: -180}, true},
		{"latitude out of range", "91, 50", venue.Coordinate{}, false},
		{"longitude out of range", "25, 200", venue.Coordinate{}, false},
		{"not numbers", "abc, def", venue.Coordinate{}, false},
		{"trailing garbage", "25.03abc, 121.56", venue.Coordinate{}, false},
		{"NaN", "NaN, 1", venue.Coordinate{}, false},
		{"infinity", "Inf, 1", venue.Coordinate{}, false},
		{"exponent notation", "2.5e1, 1.215654E2", venue.Coordinate{Latitude: 25, Longitude: 121.5654}, true},
		{"leading dot and sign", "+.5, -.25", venue.Coordinate{Latitude: 0.5, Longitude: -0.25}, true},
		{"hex float", "0x1p4, 3", venue.Coordinate{}, false},
		{"digit separators", "2_5, 121", venue.Coordinate{}, false},
		{"exponent overflow", "1e999, 1", venue.Coordinate{}, false},
		{"single value", "25.0330", venue.Coordinate{}, false},
		{"three values", "1, 2, 3", venue.Coordinate{}, false},
		{"empty", "", venue.Coordinate{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got, ok := ParseCoordinateText(tt.input)

			// Assert
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

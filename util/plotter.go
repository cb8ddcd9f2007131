package util

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"ptalk-server/models/venue"
)

const VENUE_MAP_TITLE = "PTalk Venues"

// RenderVenueMap writes an HTML page plotting every venue as a scatter
// point, one series per business status.
func RenderVenueMap(w io.Writer, venues []venue.Venue) error {
	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: VENUE_MAP_TITLE,
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{Title: VENUE_MAP_TITLE}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "china",
			Silent: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	byStatus := make(map[venue.BusinessStatus][]opts.GeoData)
	for _, v := range venues {
		// Value is lon, lat as echarts expects.
		byStatus[v.Status] = append(byStatus[v.Status], opts.GeoData{
			Name:  v.Name,
			Value: []float64{v.Location.Longitude, v.Location.Latitude},
		})
	}

	for _, status := range []venue.BusinessStatus{venue.STATUS_ACTIVE, venue.STATUS_PENDING, venue.STATUS_INACTIVE, venue.STATUS_CLOSED} {
		points, ok := byStatus[status]
		if !ok {
			continue
		}
		geo.AddSeries(venue.BusinessStatusLabels[status], types.ChartScatter, points,
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
			}),
		)
	}

	return geo.Render(w)
}

package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ptalk-server/api/ptalk"
	"ptalk-server/models/venue"
	"ptalk-server/service/output"
	"ptalk-server/smartpaste"
	"ptalk-server/util"
)

const MAP_PAGE_SIZE = 100

func newVenuesCommand(deps Dependencies) *cobra.Command {
	venues := &cobra.Command{
		Use:   "venues",
		Short: "List venues and render them on a map.",
	}
	venues.AddCommand(newVenuesListCommand(deps))
	venues.AddCommand(newVenuesShowCommand(deps))
	venues.AddCommand(newVenuesUpdateCommand(deps))
	venues.AddCommand(newVenuesMapCommand(deps))
	return venues
}

func requireAPI(cmd *cobra.Command, deps Dependencies, format output.Format, outputPath string) error {
	if deps.API != nil {
		return nil
	}
	return emitError(cmd, format, outputPath, "PTALK_INVALID_ARGUMENT", fmt.Errorf("no API client configured"))
}

func newVenuesListCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var query ptalk.VenueQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List venues, filtered by status tab and keyword.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if err := requireAPI(cmd, deps, format, flags.Output); err != nil {
				return err
			}
			list, err := deps.API.ListVenues(query)
			if err != nil {
				return emitUpstreamError(cmd, format, flags.Output, err)
			}

			rows := make([][]string, 0, len(list.Items))
			for _, v := range list.Items {
				rows = append(rows, []string{
					v.ID,
					v.Name,
					venue.BusinessCategoryLabels[v.CategoryType],
					venue.BusinessStatusLabels[v.Status],
					v.Address,
				})
			}
			title := fmt.Sprintf("Venues (page %d/%d, total %d)", list.Pagination.Page, list.Pagination.TotalPages, list.Pagination.Total)
			table := output.RenderTable(title, []string{"ID", "NAME", "CATEGORY", "STATUS", "ADDRESS"}, rows)
			return writeResult(cmd, flags, format, table, list, nil)
		},
	}
	addGlobalFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVar(&query.Status, "status", "", "Status tab: all, active, pending or closed.")
	cmd.Flags().StringVar(&query.Keyword, "keyword", "", "Match against name and address.")
	cmd.Flags().IntVar(&query.Page, "page", 1, "Page number, starting at 1.")
	cmd.Flags().IntVar(&query.PageSize, "page-size", 10, "Venues per page.")
	return cmd
}

func buildVenueTable(v *venue.Venue) string {
	details := output.RenderTable(v.Name, []string{"FIELD", "VALUE"}, [][]string{
		{"id", v.ID},
		{"category", venue.BusinessCategoryLabels[v.CategoryType]},
		{"status", venue.BusinessStatusLabels[v.Status]},
		{"address", v.Address},
		{"location", fmt.Sprintf("%g, %g", v.Location.Latitude, v.Location.Longitude)},
	})
	return details + "\n\n" + smartpaste.FormatWeekSchedule(v.OpeningHours)
}

func newVenuesShowCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "show <venue-id>",
		Short: "Show one venue with its opening hours.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if err := requireAPI(cmd, deps, format, flags.Output); err != nil {
				return err
			}
			v, err := deps.API.GetVenue(args[0])
			if err != nil {
				return emitUpstreamError(cmd, format, flags.Output, err)
			}
			return writeResult(cmd, flags, format, buildVenueTable(v), v, nil)
		},
	}
	addGlobalFlags(cmd.Flags(), &flags)
	return cmd
}

func newVenuesUpdateCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var formPath string

	cmd := &cobra.Command{
		Use:   "update <venue-id>",
		Short: "Replace a venue's editable fields with a JSON edit form.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if err := requireAPI(cmd, deps, format, flags.Output); err != nil {
				return err
			}
			form, err := util.ReadVenueFormFromJSON(formPath)
			if err != nil {
				return emitError(cmd, format, flags.Output, "PTALK_INVALID_ARGUMENT", err)
			}
			v, err := deps.API.UpdateVenue(args[0], *form)
			if err != nil {
				return emitUpstreamError(cmd, format, flags.Output, err)
			}
			return writeResult(cmd, flags, format, buildVenueTable(v), v, nil)
		},
	}
	addGlobalFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVar(&formPath, "file", "", "JSON file holding the edit form.")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newVenuesMapCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var outPath string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Render every venue on an HTML map chart.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if err := requireAPI(cmd, deps, format, flags.Output); err != nil {
				return err
			}
			venues, err := fetchAllVenues(deps.API)
			if err != nil {
				return emitUpstreamError(cmd, format, flags.Output, err)
			}

			var buf bytes.Buffer
			if err := util.RenderVenueMap(&buf, venues); err != nil {
				return emitError(cmd, format, flags.Output, "PTALK_RENDER_ERROR", err)
			}
			if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
				return emitError(cmd, format, flags.Output, "PTALK_WRITE_ERROR", err)
			}

			table := fmt.Sprintf("Wrote %d venues to %s", len(venues), outPath)
			data := map[string]any{"path": outPath, "venues": len(venues)}
			return writeResult(cmd, flags, format, table, data, nil)
		},
	}
	addGlobalFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVar(&outPath, "out", "venues.html", "Where to write the HTML chart.")
	return cmd
}

// fetchAllVenues walks every list page and loads each venue with its location.
func fetchAllVenues(client ptalk.PTalkAPI) ([]venue.Venue, error) {
	var venues []venue.Venue
	for page := 1; ; page++ {
		list, err := client.ListVenues(ptalk.VenueQuery{Page: page, PageSize: MAP_PAGE_SIZE})
		if err != nil {
			return nil, err
		}
		for _, item := range list.Items {
			v, err := client.GetVenue(item.ID)
			if err != nil {
				return nil, err
			}
			venues = append(venues, *v)
		}
		if page >= list.Pagination.TotalPages {
			return venues, nil
		}
	}
}

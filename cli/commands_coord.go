package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ptalk-server/service/output"
	"ptalk-server/smartpaste"
)

func newCoordCommand(deps Dependencies) *cobra.Command {
	coord := &cobra.Command{
		Use:   "coord",
		Short: "Parse pasted coordinates.",
	}
	coord.AddCommand(newCoordParseCommand(deps))
	return coord
}

func newCoordParseCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "parse <lat, lon>",
		Short: `Parse "lat, lon" or "lat lon" text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			text, err := readInputText(deps, args, "", " ")
			if err != nil {
				return emitError(cmd, format, flags.Output, "PTALK_INVALID_ARGUMENT", err)
			}
			coord, ok := smartpaste.ParseCoordinateText(text)
			if !ok {
				return emitError(cmd, format, flags.Output, "PTALK_UNPARSABLE_TEXT", fmt.Errorf("cannot parse coordinate %q", text))
			}
			table := output.RenderTable("", []string{"LATITUDE", "LONGITUDE"}, [][]string{{
				strconv.FormatFloat(coord.Latitude, 'f', -1, 64),
				strconv.FormatFloat(coord.Longitude, 'f', -1, 64),
			}})
			return writeResult(cmd, flags, format, table, coord, nil)
		},
	}
	addGlobalFlags(cmd.Flags(), &flags)
	return cmd
}

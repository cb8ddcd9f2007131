package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ptalk-server/models/venue"
	"ptalk-server/service/output"
	"ptalk-server/smartpaste"
)

func newHoursCommand(deps Dependencies) *cobra.Command {
	hours := &cobra.Command{
		Use:   "hours",
		Short: "Parse opening hours pasted from a map listing.",
	}
	hours.AddCommand(newHoursParseCommand(deps))
	hours.AddCommand(newHoursFormatCommand(deps))
	return hours
}

type hoursParseFlags struct {
	globalFlags
	File     string
	Existing []int
	VenueID  string
}

func newHoursParseCommand(deps Dependencies) *cobra.Command {
	var flags hoursParseFlags

	cmd := &cobra.Command{
		Use:   "parse [text lines...]",
		Short: "Show the periods, closed days and unrecognized lines found in the text.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			text, err := readInputText(deps, args, flags.File, "\n")
			if err != nil {
				return emitError(cmd, format, flags.Output, "PTALK_INVALID_ARGUMENT", err)
			}

			var outcome venue.ParseOutcome
			if flags.VenueID != "" {
				if deps.API == nil {
					return emitError(cmd, format, flags.Output, "PTALK_INVALID_ARGUMENT", fmt.Errorf("no API client configured"))
				}
				preview, err := deps.API.PreviewOpeningHours(flags.VenueID, text)
				if err != nil {
					return emitUpstreamError(cmd, format, flags.Output, err)
				}
				outcome = *preview
			} else {
				existing := make([]venue.DayType, 0, len(flags.Existing))
				for _, d := range flags.Existing {
					existing = append(existing, venue.DayType(d))
				}
				outcome, err = smartpaste.ParseOpeningHoursText(text, existing)
				if err != nil {
					return emitError(cmd, format, flags.Output, "PTALK_UNPARSABLE_TEXT", err)
				}
			}

			data := map[string]any{
				"outcome":   outcome,
				"formatted": smartpaste.FormatOutcome(outcome),
			}
			return writeResult(cmd, flags.globalFlags, format, buildOutcomeTable(outcome), data, outcomeWarnings(outcome))
		},
	}
	addGlobalFlags(cmd.Flags(), &flags.globalFlags)
	cmd.Flags().StringVar(&flags.File, "file", "", "Read the text from this file instead of arguments or stdin.")
	cmd.Flags().IntSliceVar(&flags.Existing, "existing", nil, "Days (1=Mon..7=Sun) that already have hours, to report overwrites.")
	cmd.Flags().StringVar(&flags.VenueID, "venue", "", "Preview against this venue's current schedule through the API.")
	return cmd
}

func newHoursFormatCommand(deps Dependencies) *cobra.Command {
	var flags hoursParseFlags

	cmd := &cobra.Command{
		Use:   "format [text lines...]",
		Short: "Rewrite pasted opening hours in canonical form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			text, err := readInputText(deps, args, flags.File, "\n")
			if err != nil {
				return emitError(cmd, format, flags.Output, "PTALK_INVALID_ARGUMENT", err)
			}
			outcome, err := smartpaste.ParseOpeningHoursText(text, nil)
			if err != nil {
				return emitError(cmd, format, flags.Output, "PTALK_UNPARSABLE_TEXT", err)
			}
			formatted := smartpaste.FormatOutcome(outcome)
			return writeResult(cmd, flags.globalFlags, format, formatted, map[string]any{"formatted": formatted}, outcomeWarnings(outcome))
		},
	}
	addGlobalFlags(cmd.Flags(), &flags.globalFlags)
	cmd.Flags().StringVar(&flags.File, "file", "", "Read the text from this file instead of arguments or stdin.")
	return cmd
}

func dayLabels(days []venue.DayType) string {
	labels := make([]string, 0, len(days))
	for _, d := range days {
		labels = append(labels, d.Label())
	}
	return strings.Join(labels, ", ")
}

func outcomeWarnings(outcome venue.ParseOutcome) []string {
	var warnings []string
	if outcome.HasConflicts() {
		warnings = append(warnings, "existing hours would be overwritten for "+dayLabels(outcome.ConflictDays))
	}
	if n := len(outcome.UnrecognizedLines); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d line(s) not recognized", n))
	}
	return warnings
}

func buildOutcomeTable(outcome venue.ParseOutcome) string {
	rows := make([][]string, 0, len(outcome.RecognizedPeriods)+len(outcome.ClosedDays))
	for _, d := range smartpaste.GetParsedDayTypes(outcome.RecognizedPeriods, outcome.ClosedDays) {
		if outcome.IsClosed(d) {
			rows = append(rows, []string{d.Label(), smartpaste.CLOSED_LABEL, ""})
			continue
		}
		for _, p := range outcome.PeriodsFor(d) {
			rows = append(rows, []string{d.Label(), p.OpenTime, p.CloseTime})
		}
	}
	sections := []string{output.RenderTable("Opening hours", []string{"DAY", "OPEN", "CLOSE"}, rows)}

	if len(outcome.UnrecognizedLines) > 0 {
		lineRows := make([][]string, 0, len(outcome.UnrecognizedLines))
		for _, l := range outcome.UnrecognizedLines {
			lineRows = append(lineRows, []string{l.Line, l.Reason})
		}
		sections = append(sections, output.RenderTable("Unrecognized lines", []string{"LINE", "REASON"}, lineRows))
	}
	return strings.Join(sections, "\n\n")
}

package cli

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ptalk-server/api"
	"ptalk-server/service/output"
)

type globalFlags struct {
	Format string
	Output string
}

func addGlobalFlags(fs *pflag.FlagSet, flags *globalFlags) {
	fs.StringVar(&flags.Format, "format", "table", "Output format: table, json or yaml.")
	fs.StringVar(&flags.Output, "output", "", "Also write the rendered output to this file.")
}

func parseOutputFormat(format string) (output.Format, error) {
	return output.ParseFormat(format)
}

func writeTable(cmd *cobra.Command, text string, outputPath string) error {
	return output.WriteOutput(cmd.OutOrStdout(), text, outputPath)
}

func writeMachinePayload(cmd *cobra.Command, env output.Envelope, format output.Format, outputPath string) error {
	rendered, err := output.RenderPayload(env, format)
	if err != nil {
		return err
	}
	return output.WriteOutput(cmd.OutOrStdout(), rendered, outputPath)
}

// writeResult renders data as a table or as an envelope, depending on format.
func writeResult(cmd *cobra.Command, flags globalFlags, format output.Format, table string, data any, warnings []string) error {
	if format == output.FormatTable {
		text := table
		for _, w := range warnings {
			text += "\nwarning: " + w
		}
		return writeTable(cmd, text, flags.Output)
	}
	env := output.BuildEnvelope(cmd.CommandPath(), data, warnings, nil)
	return writeMachinePayload(cmd, env, format, flags.Output)
}

// emitError reports a failed command and exits with code 1.
func emitError(cmd *cobra.Command, format output.Format, outputPath string, code string, err error) error {
	if format == output.FormatTable {
		_, _ = io.WriteString(cmd.ErrOrStderr(), err.Error()+"\n")
		return &exitError{code: 1}
	}
	env := output.BuildEnvelope(cmd.CommandPath(), nil, nil, output.ErrorPayload(code, err))
	if werr := writeMachinePayload(cmd, env, format, outputPath); werr != nil {
		return werr
	}
	return &exitError{code: 1}
}

// emitUpstreamError uses the server's error code when there is one.
func emitUpstreamError(cmd *cobra.Command, format output.Format, outputPath string, err error) error {
	code := "PTALK_UPSTREAM_ERROR"
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		code = apiErr.Code
	}
	return emitError(cmd, format, outputPath, code, err)
}

// readInputText takes the text from --file, else from args joined by sep,
// else from stdin.
func readInputText(deps Dependencies, args []string, file string, sep string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrap(err, "read input file")
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, sep), nil
	}
	if deps.Stdin == nil {
		return "", nil
	}
	data, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	return string(data), nil
}

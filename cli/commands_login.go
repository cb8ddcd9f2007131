package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"ptalk-server/service/output"
)

func newLoginCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as a merchant and print the access token.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if err := requireAPI(cmd, deps, format, flags.Output); err != nil {
				return err
			}
			resp, err := deps.API.Login(email, password)
			if err != nil {
				return emitUpstreamError(cmd, format, flags.Output, err)
			}
			table := output.RenderTable("", []string{"FIELD", "VALUE"}, [][]string{
				{"access_token", resp.AccessToken},
				{"refresh_token", resp.RefreshToken},
				{"expires_in", formatSeconds(resp.ExpiresIn)},
			})
			return writeResult(cmd, flags, format, table, resp, nil)
		},
	}
	addGlobalFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVar(&email, "email", "", "Merchant email.")
	cmd.Flags().StringVar(&password, "password", "", "Merchant password.")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func formatSeconds(s int) string {
	return strconv.Itoa(s) + "s"
}

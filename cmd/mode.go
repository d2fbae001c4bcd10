package cmd

import (
	"github.com/spf13/cobra"
)

// modeCmd represents the mode command.
var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Show which backend and account are in use",
	Long: `Show whether data is read from the local store (mock mode) or the remote
database, which account is active, and how far seeding got.

The remote database is used only when CAREEROS_REMOTE_URL and
CAREEROS_REMOTE_KEY are both set and CAREEROS_USE_MOCK is not.

Examples:
  careeros mode
  careeros mode --format json
  CAREEROS_USE_MOCK=1 careeros mode`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := ctx.ModeInfo(cmd.Context())
		if err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintMode(info)
		}
		ctx.CLIFormatter().PrintMode(info)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
}

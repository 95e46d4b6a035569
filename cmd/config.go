package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage shiftsync configuration file values.",
	Long: `Create and display the shiftsync configuration file.

The configuration selects the schedule/shift store backend:
- store.backend (sqlite | mongo)
- store.sqlite_path
- store.mongo_uri / store.mongo_database`,
	Example: `
  # Create default config in $HOME/.shiftsync.yaml
  shiftsync config create

  # Show active config and source file
  shiftsync config show
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

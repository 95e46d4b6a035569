package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shiftsync/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  shiftsync config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded; showing defaults.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("store.backend: %s\n", cfg.Store.Backend)
		fmt.Printf("store.sqlite_path: %s\n", cfg.Store.SQLitePath)
		fmt.Printf("store.mongo_uri: %s\n", cfg.Store.MongoURI)
		fmt.Printf("store.mongo_database: %s\n", cfg.Store.MongoDatabase)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

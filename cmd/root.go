/*
Copyright © 2026 shiftsync authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shiftsync/config"
	"shiftsync/storage"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shiftsync",
	Short: "Reconcile time-clock attendance against scheduled nurse shifts.",
	Long: `shiftsync matches grouped time-clock punch data against the shift schedules
persisted by the ward scheduling system and writes the reconciled arrival and
departure times back onto each schedule.

Rows arrive one per user per calendar day, already grouped upstream from raw
device punches. A single punch is classified as arrival or departure against
the shift's configured boundary window; a first/last punch pair is assigned
to the nearest matching schedule when a user holds several shifts that day.

Schedules and shift master data live in a local SQLite database by default,
or in MongoDB when configured.`,
	Example: `
  # Create configuration file
  shiftsync config create

  # Seed schedules and shift definitions
  shiftsync import --schedules roster.csv --shifts shifts.csv

  # Reconcile a batch of grouped attendance rows
  shiftsync sync -i attendance-2024-03.csv

  # Export schedules with reconciled attendance
  shiftsync export --output ./schedules.xlsx
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.shiftsync.yaml, then ./.shiftsync.yaml)")

	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "sync", "import", "export":
		return true
	default:
		return false
	}
}

// openStore resolves the configured backend. A non-empty dbOverride forces
// the sqlite backend at that path, so one-off runs can bypass the config.
func openStore(ctx context.Context, dbOverride string) (storage.Store, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, err
	}

	backend := cfg.Store.Backend
	sqlitePath := cfg.Store.SQLitePath
	if strings.TrimSpace(dbOverride) != "" {
		backend = "sqlite"
		sqlitePath = dbOverride
	}

	return storage.Open(ctx, backend, sqlitePath, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".shiftsync" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".shiftsync")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: shiftsync config create")
	}
}

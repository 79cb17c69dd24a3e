package main

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edumarques81/avplayer-sdk/internal/config"
	"github.com/edumarques81/avplayer-sdk/internal/infra/logging"
)

var (
	// configFs is swapped for an in-memory filesystem in tests.
	configFs afero.Fs = afero.NewOsFs()

	settings config.Settings
)

func init() {
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "Minimum log level (verbose, debug, info, warning, error, none)")
	lo.Must0(viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")))

	rootCmd.PersistentFlags().Bool("json", false, "Log raw JSON lines")
	lo.Must0(viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json")))

	rootCmd.PersistentFlags().BoolP("remote", "r", false, "Validate the license with the licensing service")
	lo.Must0(viper.BindPFlag("license.remote", rootCmd.PersistentFlags().Lookup("remote")))

	rootCmd.AddCommand(validateCmd, errorsCmd, serveCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:           config.Name,
	Short:         "Reference host for the AV player SDK",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Setup(configFs, config.Paths()...); err != nil {
			return err
		}

		s, err := config.Load()
		if err != nil {
			return err
		}

		level, err := logging.ParseLevel(s.Log.Level)
		if err != nil {
			return err
		}
		logging.Setup(logging.Config{MinLevel: level, JSON: s.Log.JSON, Output: os.Stderr})

		settings = s
		return nil
	},
}

// fail prints err to the command's error stream and returns it, so Execute
// reports a non-zero status.
func fail(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
	return err
}

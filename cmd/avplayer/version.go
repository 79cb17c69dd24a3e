package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edumarques81/avplayer-sdk/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the SDK version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetInfo().String())
	},
}

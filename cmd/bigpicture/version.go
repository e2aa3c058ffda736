package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/bigpicture"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bigpicture",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bigpicture version %s\n", strings.TrimSpace(bigpicture.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

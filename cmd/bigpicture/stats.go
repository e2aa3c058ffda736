package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/bigpicture/internal/presentation/markdown"
	"github.com/aretw0/bigpicture/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <workshop-id>",
	Short: "Show workshop statistics",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, err := buildService(cmd)
		if err != nil {
			fmt.Printf("Error initializing bigpicture: %v\n", err)
			os.Exit(1)
		}

		res, err := svc.Statistics(context.Background(), args[0])
		if err != nil {
			fmt.Printf("Error computing statistics: %v\n", err)
			os.Exit(1)
		}

		doc := markdown.Statistics(res.Workshop, res.Statistics)

		render := tui.NewRenderer()
		out, err := render(doc)
		if err != nil {
			fmt.Print(doc)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/bigpicture/internal/presentation/markdown"
	"github.com/aretw0/bigpicture/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <workshop-id>",
	Short: "Show a workshop overview",
	Long:  `Renders the workshop overview (statistics, contexts and elements) as styled Markdown in the terminal.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, err := buildService(cmd)
		if err != nil {
			fmt.Printf("Error initializing bigpicture: %v\n", err)
			os.Exit(1)
		}

		ws, err := svc.Get(context.Background(), args[0])
		if err != nil {
			fmt.Printf("Error loading workshop: %v\n", err)
			os.Exit(1)
		}

		detail := markdown.DetailSummary
		if full, _ := cmd.Flags().GetBool("full"); full {
			detail = markdown.DetailFull
		}
		doc := markdown.WorkshopOverview(ws, detail)

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Print(doc)
			return
		}

		tui.PrintBanner()
		render := tui.NewRenderer()
		out, err := render(doc)
		if err != nil {
			// Fall back to the plain document when the terminal
			// renderer is unavailable.
			fmt.Print(doc)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("full", false, "Show full element details instead of the summary view")
	showCmd.Flags().Bool("raw", false, "Print raw Markdown without terminal styling")
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/bigpicture/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <workshop-id>",
	Short: "Export the workshop graph visualization",
	Long:  `Inspects the workshop and outputs a Mermaid diagram (graph TD) of its trigger relationships.`,
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

		// Generate and print Mermaid graph
		output := graph.GenerateMermaid(ws)
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

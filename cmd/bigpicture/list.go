package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored workshops",
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, err := buildService(cmd)
		if err != nil {
			fmt.Printf("Error initializing bigpicture: %v\n", err)
			os.Exit(1)
		}

		summaries, err := svc.List(context.Background())
		if err != nil {
			fmt.Printf("Error listing workshops: %v\n", err)
			os.Exit(1)
		}

		if len(summaries) == 0 {
			fmt.Println("No workshops found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDOMAIN\tELEMENTS\tCONTEXTS\tUPDATED")
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
				s.ID, s.Name, s.Domain, s.ElementCount, s.ContextCount, s.UpdatedAt)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

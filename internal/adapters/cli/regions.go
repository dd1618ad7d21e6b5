package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewRegionsCommand creates the regions command
func NewRegionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the known market regions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.logger.Sync()

			regions, err := app.regions.AllRegions()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "REGION ID\tNAME")
			for _, region := range regions {
				fmt.Fprintf(w, "%d\t%s\n", region.ID, region.Name)
			}
			return w.Flush()
		},
	}
}

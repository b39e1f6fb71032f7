package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the discovered stage alternates",
	Long:  `Builds the archive from the configured listing and prints every stage record with its alternates. Outputs a table by default or JSON with --json flag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		rt, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		records := rt.alts.CatalogView()
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STAGE\tFORM\tALT\tSLOT\tWIFI SAFE")
		for _, rec := range records {
			name := rec.Label
			if name == "" {
				name = rec.Name.String()
			}
			for i, alt := range rec.Alternates {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%t\n", name, rec.Form, i+1, alt.Slot, alt.WifiSafe)
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}

		rt.logger.Info("Catalog listed",
			zap.Int("records", len(records)),
			zap.Int("alternates", rt.alts.Manager().Catalog().Total()),
		)
		return nil
	},
}

func init() {
	catalogCmd.Flags().Bool("json", false, "Output the catalog as JSON")
	RootCmd.AddCommand(catalogCmd)
}

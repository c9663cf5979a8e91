package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/scriptpm/internal/script"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scripts available in the catalog",
	Long: `Fetches the catalog and prints every script with the number used by
'scriptpm install'. Installed scripts are marked with '*'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		catalog, err := client.Catalog(cmd.Context())
		if err != nil {
			return err
		}

		if len(catalog) == 0 {
			info("The catalog is empty.")
			return nil
		}

		printCatalog(catalog, client.Installed())
		return nil
	},
}

// printCatalog prints a 1-based numbered catalog table.
func printCatalog(catalog, installed []script.Record) {
	fmt.Println(styled(headerStyle, fmt.Sprintf("%4s  %-30s %-12s %s", "#", "NAME", "VERSION", "INSTALLED")))
	for i, rec := range catalog {
		mark := ""
		if cur, ok := script.Find(installed, rec.ID); ok {
			mark = "* " + cur.Version
		}
		fmt.Printf("%4d  %-30s %-12s %s\n", i+1, rec.Name, rec.Version, mark)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}

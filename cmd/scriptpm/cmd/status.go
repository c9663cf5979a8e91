package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusOffline bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of installed scripts",
	Long: `Shows each installed script with its installed version, the catalog
version and its state (current, outdated, orphaned, missing, modified).

With --offline the catalog is not fetched and only the files on disk are
checked against the installed state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		statuses, err := client.Status(cmd.Context(), statusOffline)
		if err != nil {
			return err
		}

		if len(statuses) == 0 {
			info("No scripts installed.")
			return nil
		}

		fmt.Println(styled(headerStyle, fmt.Sprintf("%-30s %-12s %-12s %s", "NAME", "INSTALLED", "AVAILABLE", "STATE")))
		for _, s := range statuses {
			available := s.Available
			if available == "" {
				available = "-"
			}
			fmt.Printf("%-30s %-12s %-12s %s\n", s.Record.Name, s.Record.Version, available, renderState(s.State))
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusOffline, "offline", false, "skip the catalog and check local files only")
	rootCmd.AddCommand(statusCmd)
}

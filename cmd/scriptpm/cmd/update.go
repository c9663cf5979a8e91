package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/scriptpm/pkg/scriptpm"
)

var updateDryRun bool

var updateCmd = &cobra.Command{
	Use:   "update [id-or-name...]",
	Short: "Update installed scripts to the catalog version",
	Long: `Fetches the catalog and replaces every installed script whose catalog
version differs from the installed one. If ids or names are provided,
only those scripts are considered.

A script whose download fails or does not match its catalog hash is
restored to its previous version; the others are still updated. The
installed state is saved once at the end, and the command exits non-zero
if any script failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.Update(cmd.Context(), scriptpm.UpdateOptions{
			DryRun: updateDryRun,
			Only:   args,
		})
		if result != nil {
			printUpdate(result)
		}
		if err != nil {
			return err
		}

		if len(result.Failed) > 0 {
			return fmt.Errorf("%d script(s) failed to update", len(result.Failed))
		}
		return nil
	},
}

func printUpdate(result *scriptpm.UpdateResult) {
	for _, c := range result.Pending {
		info("  %-30s %s -> %s (pending)", c.Before.Name, c.Before.Version, c.After.Version)
	}
	for _, c := range result.Updated {
		info("  %-30s %s -> %s", c.Before.Name, c.Before.Version, c.After.Version)
		detail("sha256:%s", shortHash(c.After.Hash))
	}
	for _, f := range result.Failed {
		errorf("%s", styled(failStyle, f.Error()))
	}
	for _, rec := range result.Orphaned {
		detail("%s: no longer in the catalog", rec.Name)
	}
	for _, rec := range result.Skipped {
		detail("%s: skipped", rec.Name)
	}

	switch {
	case updateDryRun:
		info("\nDry run: %d update(s) pending, nothing written.", len(result.Pending))
	case len(result.Updated) == 0 && len(result.Failed) == 0:
		info("All scripts are up to date.")
	default:
		info("\n%d updated, %d failed, %d current.", len(result.Updated), len(result.Failed), len(result.Current))
	}
}

func init() {
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "show what would change without downloading")
	rootCmd.AddCommand(updateCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/scriptpm/internal/script"
)

var registerVersion string

var registerCmd = &cobra.Command{
	Use:   "register <file>",
	Short: "Print a catalog record for a local script",
	Long: `Computes a catalog record for a local file: a new random id, the file's
base name, the given version and the sha256 of its contents. The record
is printed as JSON, ready to add to the catalog manifest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := script.Register(args[0], registerVersion)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(rec, "", "    ")
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerVersion, "version", script.DefaultVersion, "version to record")
	rootCmd.AddCommand(registerCmd)
}

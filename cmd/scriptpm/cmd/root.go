package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath string
	homeDir    string
	scriptDir  string
	catalogURL string
	verbose    bool
	quiet      bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "scriptpm",
	Short: "Install and update scripts from a remote catalog",
	Long: `scriptpm installs scripts published in a remote catalog into a local
script directory and keeps them at the catalog's current version. Each
update is hash-verified and rolled back if the download fails, so a bad
network never leaves a script half-replaced.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scriptpm %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "directory holding installed-script.json")
	rootCmd.PersistentFlags().StringVar(&scriptDir, "script-dir", "", "directory scripts are installed into")
	rootCmd.PersistentFlags().StringVar(&catalogURL, "catalog-url", "", "base URL of the script catalog")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

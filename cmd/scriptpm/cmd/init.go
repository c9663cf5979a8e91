package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default scriptpm.yaml scaffold.
const initTemplate = `# scriptpm configuration
version: 1

catalog:
  url: https://fzed51.github.io/python-library
  # manifest: scripts-catalog.json
  # scripts_path: library/scripts

# Both directories must already exist. SCRIPTPM_HOME / SCRIPTPM_SCRIPTS
# (or PYHOME / PYSCRIPTS) override these.
# home: /path/to/home
# script_dir: /path/to/scripts

# update:
#   verify_hash: true

# http:
#   timeout: 30s
#   max_size: 0
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter scriptpm.yaml configuration",
	Long: `Creates a scriptpm.yaml file at the --config path (default: the user
config directory) with the default catalog and documented settings for
the home and script directories.

Use --force to overwrite an existing configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, err := filepath.Abs(resolvedConfigPath())
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		if err := os.WriteFile(outPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Set home and script_dir to existing directories")
		info("  2. Run 'scriptpm list' to browse the catalog")
		info("  3. Run 'scriptpm install <number>' to install a script")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}

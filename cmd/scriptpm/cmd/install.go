package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [number]",
	Short: "Install a script from the catalog",
	Long: `Installs the catalog script with the given number (as shown by
'scriptpm list'). Without an argument the catalog is printed and the
number is read from standard input.

The download is verified against the catalog hash before it replaces any
existing file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		catalog, err := client.Catalog(cmd.Context())
		if err != nil {
			return err
		}

		var choice string
		if len(args) == 1 {
			choice = args[0]
		} else {
			printCatalog(catalog, client.Installed())
			choice, err = prompt(os.Stdin, "\nScript number: ")
			if err != nil {
				return err
			}
		}

		number, err := parseNumber(choice)
		if err != nil {
			return err
		}

		result, err := client.InstallFrom(cmd.Context(), catalog, number-1)
		if err != nil {
			return err
		}

		rec := result.Record
		switch prev := result.Previous; {
		case prev == nil:
			info("Installed %s %s", rec.Name, rec.Version)
		case prev.SameVersion(rec):
			info("Reinstalled %s %s", rec.Name, rec.Version)
		default:
			info("Installed %s %s (was %s)", rec.Name, rec.Version, prev.Version)
		}
		detail("sha256:%s", rec.Hash)
		return nil
	},
}

// prompt prints question and returns the next trimmed input line.
func prompt(in io.Reader, question string) (string, error) {
	fmt.Print(question)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", fmt.Errorf("no script number given")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// parseNumber parses a 1-based script number.
func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid script number %q", s)
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(installCmd)
}

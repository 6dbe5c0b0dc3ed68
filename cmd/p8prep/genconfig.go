package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/p8prep/pkg/config"
)

var genconfigCmd = &cobra.Command{
	Use:     "gen-config",
	Aliases: []string{"genconfig"},
	Short:   "Print a default config file to stdout",
	Long: `Prints the built-in defaults as a TOML document. Redirect it to
.p8prep.toml in your project directory and edit from there.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.DefaultToolTOML()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

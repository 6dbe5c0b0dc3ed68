package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
	"github.com/arthur-debert/p8prep/pkg/system"
)

var discoverCmd = &cobra.Command{
	Use:   "discover VOLUME_DIR",
	Short: "Find the bootable system file in a volume directory",
	Long: `Discover looks for exactly one bootable system file: first by the
.SYSTEM or .SYS filename extension, then by a ProDOS file type tag of
ff. Zero candidates or more than one is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tg := prodosmeta.Detect(args[0])
		found, err := system.Discover(args[0], tg)
		if err != nil {
			return err
		}
		pterm.Println(found)
		return nil
	},
}

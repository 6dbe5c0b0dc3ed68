package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/p8prep/pkg/config"
	"github.com/arthur-debert/p8prep/pkg/rearrange"
)

var (
	rearrangeRoot   string
	rearrangeConfig string
	rearrangeDryRun bool
)

var rearrangeCmd = &cobra.Command{
	Use:   "rearrange",
	Short: "Rearrange a volume tree from a mapping config",
	Long: `Rearrange expands the glob mappings in the config file against the
tree root and performs the resulting moves as one validated batch: if
any source is missing or any destination already exists, nothing moves.`,
	Example: `  p8prep rearrange --root volumes/EDASM --mappings rearrange.json
  p8prep rearrange --root volumes/EDASM --mappings rearrange.json --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mappings, err := config.LoadRearrangeConfig(rearrangeConfig)
		if err != nil {
			return err
		}
		moves, err := rearrange.Expand(rearrangeRoot, mappings)
		if err != nil {
			return err
		}
		if len(moves) == 0 {
			pterm.Info.Println("No files matched any mapping")
			return nil
		}

		if rearrangeDryRun {
			for _, mv := range moves {
				pterm.Printfln("%s -> %s", mv.Source, mv.Destination)
			}
			return nil
		}

		if err := rearrange.Rearrange(rearrangeRoot, moves); err != nil {
			return err
		}
		pterm.Success.Printfln("Moved %d file(s)", len(moves))
		return nil
	},
}

func init() {
	rearrangeCmd.Flags().StringVar(&rearrangeRoot, "root", "", "Root of the tree to rearrange")
	rearrangeCmd.Flags().StringVar(&rearrangeConfig, "mappings", "", "JSON mapping file")
	rearrangeCmd.Flags().BoolVar(&rearrangeDryRun, "dry-run", false, "Print the expanded moves without performing them")
	_ = rearrangeCmd.MarkFlagRequired("root")
	_ = rearrangeCmd.MarkFlagRequired("mappings")
}

package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/p8prep/pkg/cadius"
	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
)

var (
	retagKeepNames bool
	retagLowercase bool
	retagOverwrite bool
)

var retagCmd = &cobra.Command{
	Use:   "retag",
	Short: "Convert between cadius filename suffixes and ProDOS tags",
}

var retagToTagsCmd = &cobra.Command{
	Use:   "to-tags DIR...",
	Short: "Convert NAME#TTAAAA filename suffixes to ProDOS tags",
	Long: `For every file under each directory whose name carries a cadius
NAME#TTAAAA suffix, the encoded file type and aux type are written as
ProDOS tags and the suffix is stripped from the filename (unless
--keep-names is given).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, dir := range args {
			tg := prodosmeta.Detect(dir)
			if err := cadius.ConvertToXattrs(dir, tg, retagKeepNames); err != nil {
				return err
			}
			pterm.Success.Printfln("Retagged %s", dir)
		}
		return nil
	},
}

var retagToSuffixesCmd = &cobra.Command{
	Use:   "to-suffixes DIR...",
	Short: "Encode ProDOS tags back into cadius filename suffixes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, dir := range args {
			tg := prodosmeta.Detect(dir)
			if err := cadius.ConvertToSuffixes(dir, tg, !retagLowercase, retagOverwrite); err != nil {
				return err
			}
			pterm.Success.Printfln("Renamed files under %s", dir)
		}
		return nil
	},
}

func init() {
	retagToTagsCmd.Flags().BoolVar(&retagKeepNames, "keep-names", false, "Tag files but keep the suffixed filenames")
	retagToSuffixesCmd.Flags().BoolVar(&retagLowercase, "lowercase", false, "Use lowercase hex in suffixes")
	retagToSuffixesCmd.Flags().BoolVar(&retagOverwrite, "overwrite", false, "Replace an existing suffix when it disagrees with the tags")
	retagCmd.AddCommand(retagToTagsCmd)
	retagCmd.AddCommand(retagToSuffixesCmd)
}

package main

import (
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/p8prep/pkg/convert"
	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
	"github.com/arthur-debert/p8prep/pkg/textconv"
)

var (
	convertLossy  bool
	convertAccess string
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE...",
	Short: "Convert text files to ProDOS conventions in place",
	Long: `Convert rewrites each file in place: line endings become CR, the
content is checked (or forced, with --lossy) to be ASCII, and the file
is tagged as a ProDOS text file. Conversion is atomic per file; a file
that fails is left byte for byte as it was.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := textconv.Strict
		if convertLossy {
			mode = textconv.Lossy
		}
		access := convertAccess
		if access == "" {
			access = toolConfig.Access
		}

		for _, path := range args {
			tg := prodosmeta.Detect(filepath.Dir(path))
			if err := convert.FileInPlace(path, mode, access, tg); err != nil {
				return err
			}
			pterm.Success.Printfln("Converted %s", path)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().BoolVar(&convertLossy, "lossy", false, "Replace non-ASCII bytes with '?' instead of failing")
	convertCmd.Flags().StringVar(&convertAccess, "access", "", "ProDOS access string to tag files with")
}

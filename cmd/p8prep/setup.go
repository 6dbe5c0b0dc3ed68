package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/p8prep/pkg/setup"
)

var setupOpts setup.Options

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Extract, rearrange, and import files, then run the emulator",
	Long: `Setup runs the full preparation pipeline: extract the disk image with
cadius, convert cadius filename metadata to ProDOS tags, rearrange the
extracted tree from a mapping config, import host text files, discover
the bootable system file, and launch the emulator.

Stages are skipped when their inputs are absent: no --rearrange-config
means no rearrangement, no --text means no import, --skip-extract reuses
an existing volume directory, --no-run stops before the emulator.`,
	Example: `  p8prep setup --disk-image disks/edasm.2mg
  p8prep setup --skip-extract --text src/main.asm:SRC/MAIN.ASM --no-run
  p8prep setup --disk-image disks/edasm.2mg --rearrange-config rearrange.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Unset flags fall back to the tool config.
		if !cmd.Flags().Changed("cadius") {
			setupOpts.Cadius = toolConfig.Cadius
		}
		if !cmd.Flags().Changed("runner") {
			setupOpts.Runner = toolConfig.Runner
		}
		if !cmd.Flags().Changed("volume-name") {
			setupOpts.VolumeName = toolConfig.VolumeName
		}
		if !cmd.Flags().Changed("access") {
			setupOpts.Access = toolConfig.Access
		}
		if !cmd.Flags().Changed("lossy-text") {
			setupOpts.LossyText = toolConfig.LossyText
		}

		result, err := setup.Run(setupOpts)
		if err != nil {
			return err
		}

		pterm.Success.Printfln("Volume ready at %s", result.VolumeDir)
		pterm.Info.Printfln("System file: %s", result.SystemFile)
		return nil
	},
}

func init() {
	f := setupCmd.Flags()
	f.StringVar(&setupOpts.WorkDir, "work-dir", ".", "Working directory for volumes")
	f.StringVar(&setupOpts.VolumeRoot, "volume-root", "", "Volume root directory (default: <work-dir>/volumes)")
	f.StringVar(&setupOpts.VolumeName, "volume-name", "", "Volume name under the volume root")
	f.StringVar(&setupOpts.DiskImage, "disk-image", "", "Disk image (.2mg) to extract")
	f.BoolVar(&setupOpts.SkipExtract, "skip-extract", false, "Reuse an already extracted volume directory")
	f.StringVar(&setupOpts.Cadius, "cadius", "", "Path to or name of the cadius binary")
	f.StringVar(&setupOpts.ExtractCmd, "extract-cmd", "", "Extraction command template ({cadius}, {image}, {out})")
	f.StringVar(&setupOpts.RearrangeConfig, "rearrange-config", "", "JSON mapping file for rearrangement")
	f.StringArrayVar(&setupOpts.TextMappings, "text", nil, "Host text file to import, as SRC[:DEST] (repeatable)")
	f.BoolVar(&setupOpts.LossyText, "lossy-text", false, "Replace non-ASCII bytes with '?' instead of failing")
	f.StringVar(&setupOpts.Access, "access", "", "ProDOS access string for imported text files")
	f.StringVar(&setupOpts.SystemFile, "system-file", "", "System file relative to the volume (default: discovered)")
	f.BoolVar(&setupOpts.NoRun, "no-run", false, "Prepare the volume but do not run the emulator")
	f.StringVar(&setupOpts.Runner, "runner", "", "Path to the emulator runner binary")
	f.StringVar(&setupOpts.ROM, "rom", "", "ROM image passed to the runner")
	f.BoolVar(&setupOpts.Debug, "debug", false, "Run the emulator with debug tracing")
	f.Int64Var(&setupOpts.MaxInstructions, "max-instructions", 0, "Instruction limit for the emulator run (0 = unlimited)")
}

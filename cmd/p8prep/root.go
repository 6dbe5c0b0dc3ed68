package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/p8prep/pkg/config"
	"github.com/arthur-debert/p8prep/pkg/logging"
)

var (
	verbosity  int
	configPath string
	toolConfig *config.Tool

	rootCmd = &cobra.Command{
		Use:   "p8prep",
		Short: "Prepare host files for the ProDOS 8 emulator",
		Long: `p8prep prepares host-filesystem assets for a ProDOS 8 emulator run:
it extracts disk images with cadius, converts cadius filename metadata to
ProDOS tags, rearranges extracted volume trees from a declarative mapping,
and imports host text files with CR/ASCII conversion.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			cfg, err := config.LoadTool(configPath)
			if err != nil {
				return err
			}
			toolConfig = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Tool config file (default: ./.p8prep.toml)")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(rearrangeCmd)
	rootCmd.AddCommand(retagCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(genconfigCmd)
	rootCmd.AddCommand(versionCmd)
}

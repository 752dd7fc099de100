package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "vectool",
		Short: "Inspect, convert and archive vector documents",
		Long: `vectool works with vectors in the vecmath text format.

Local commands (inspect, convert, dot) read files directly. Archive commands
(put, get, list, rm) use the blob store described by the configuration file.

Examples:
  vectool inspect a.vec b.vec
  vectool dot a.vec b.vec
  vectool convert --to lz4 a.vec a.lz4
  vectool --config vectool.yaml put embeddings/a a.vec
  vectool --config vectool.yaml get embeddings/a`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "vectool.yaml",
		"path to the yaml configuration file")

	cmd.AddCommand(
		newInspectCmd(),
		newConvertCmd(),
		newDotCmd(),
		newPutCmd(flags),
		newGetCmd(flags),
		newListCmd(flags),
		newRemoveCmd(flags),
	)
	return cmd
}

// archiveConfig loads the configuration named by --config. The file is
// required only when the flag was set explicitly.
func (f *rootFlags) archiveConfig(cmd *cobra.Command) (Config, error) {
	return loadConfig(f.configPath, cmd.Flags().Changed("config"))
}

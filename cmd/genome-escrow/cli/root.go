package cli

import (
	"github.com/spf13/cobra"

	"github.com/NightRunnerEB/Genome-sub000/pkg"
)

// config path used when neither --config nor GENOME_CONFIG is given
const defaultConfigPath = "config/config-local.yml"

var cfgPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "genome-escrow",
		Short:        "Tournament escrow engine",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(
		&cfgPath, "config", pkg.Getenv("GENOME_CONFIG", defaultConfigPath),
		"path to the yaml config file (env GENOME_CONFIG)",
	)
	cmd.AddCommand(
		StartServerCmd(),
		InitializeCmd(),
		DumpStateCmd(),
	)
	return cmd
}

// Setup builds the command tree and executes it.
func Setup() error {
	return newRootCmd().Execute()
}

func GetConfigPath() string {
	return cfgPath
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexsphere/wgpeer/internal/agent"
)

func newDefaultConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default-config",
		Short: "Print a default config file",
		Long:  "Print a config file holding every default, suitable for " + agent.DefaultConfigPath + ".",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), agent.GenerateDefaultConfig())
			return err
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexsphere/wgpeer/internal/wireguard"
)

type statusOptions struct {
	iface string
}

// statusReport is printed by the status command.
type statusReport struct {
	Interface string                  `json:"interface"`
	Up        bool                    `json:"up"`
	Peers     []wireguard.RuntimePeer `json:"peers,omitempty"`
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	o := &statusOptions{}
	c := &cobra.Command{
		Use:   "status",
		Short: "Show whether an interface is up and its live peers",
		Long: "Query the interface state and, when it is up, read the peers the\n" +
			"running device reports. The config file is not consulted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, g, o)
		},
	}
	c.Flags().StringVarP(&o.iface, "interface", "i", "", "WireGuard interface name (default from config)")
	return c
}

func runStatus(cmd *cobra.Command, g *globalOptions, o *statusOptions) error {
	e, err := g.setup(cmd)
	if err != nil {
		return fmt.Errorf("wgpeer status: %w", err)
	}
	iface := e.iface(o.iface)

	ctx, stop := signalContext(cmd)
	defer stop()

	up, err := e.ctrl.IsUp(ctx, iface)
	if err != nil {
		return fmt.Errorf("wgpeer status: %w", err)
	}

	report := statusReport{Interface: iface, Up: up}
	if up {
		peers, err := runtimePeers(iface)
		if err != nil {
			// Not every up link is a WireGuard device we can read.
			e.logger.Warn("live peers unavailable", "interface", iface, "error", err)
		} else {
			report.Peers = peers
		}
	}
	return writeJSON(cmd.OutOrStdout(), report)
}

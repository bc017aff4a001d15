package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"

	"github.com/plexsphere/wgpeer/internal/wgconf"
)

type listOptions struct {
	iface string
}

// listedPeer is a config file peer annotated with key validity.
type listedPeer struct {
	wgconf.Peer
	ValidKey bool `json:"valid_key"`
}

func newListCmd(g *globalOptions) *cobra.Command {
	o := &listOptions{}
	c := &cobra.Command{
		Use:   "list",
		Short: "List the peers in an interface config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, g, o)
		},
	}
	c.Flags().StringVarP(&o.iface, "interface", "i", "", "WireGuard interface name (default from config)")
	return c
}

func runList(cmd *cobra.Command, g *globalOptions, o *listOptions) error {
	e, err := g.setup(cmd)
	if err != nil {
		return fmt.Errorf("wgpeer list: %w", err)
	}
	iface := e.iface(o.iface)

	text, err := e.store.Read(iface)
	if err != nil {
		return fmt.Errorf("wgpeer list: %w", err)
	}

	peers := wgconf.Peers(text)
	out := make([]listedPeer, 0, len(peers))
	for _, p := range peers {
		_, keyErr := wgtypes.ParseKey(p.PublicKey)
		if keyErr != nil {
			e.logger.Warn("peer public key is not a valid WireGuard key",
				"interface", iface,
				"public_key", p.PublicKey,
			)
		}
		out = append(out, listedPeer{Peer: p, ValidKey: keyErr == nil})
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

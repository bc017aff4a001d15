package cmd

import (
	"github.com/spf13/cobra"

	"github.com/plexsphere/wgpeer/internal/wireguard"
)

type applyOptions struct {
	iface      string
	publicKey  string
	allowedIPs []string
	comment    string
	state      string
	check      bool
}

func newApplyCmd(g *globalOptions) *cobra.Command {
	o := &applyOptions{}
	c := &cobra.Command{
		Use:   "apply",
		Short: "Add or remove one peer",
		Long: "Ensure a peer is present in or absent from an interface's config file.\n" +
			"Prints the result as JSON. Adding a peer whose public key is already\n" +
			"in the file fails without touching the interface.",
		Example: "  wgpeer apply -i wg0 --public-key K1 --allowed-ips 10.0.0.2/32 --comment alice\n" +
			"  wgpeer apply -i wg0 --public-key K1 --state absent",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd, g, o)
		},
	}

	f := c.Flags()
	f.StringVarP(&o.iface, "interface", "i", "", "WireGuard interface name (default from config)")
	f.StringVar(&o.publicKey, "public-key", "", "peer public key")
	f.StringSliceVar(&o.allowedIPs, "allowed-ips", nil, "allowed IPs, comma separated or repeated")
	f.StringVar(&o.comment, "comment", "", "comment written below the peer entry")
	f.StringVar(&o.state, "state", string(wireguard.StatePresent), "desired state: present or absent")
	f.BoolVar(&o.check, "check", false, "report the outcome without changing anything")
	_ = c.MarkFlagRequired("public-key")
	return c
}

func runApply(cmd *cobra.Command, g *globalOptions, o *applyOptions) error {
	e, err := g.setup(cmd)
	if err != nil {
		return reportFailure(cmd, err.Error())
	}

	state, err := wireguard.ParseState(o.state)
	if err != nil {
		return reportFailure(cmd, err.Error())
	}

	req := wireguard.Request{
		Interface:  e.iface(o.iface),
		PublicKey:  o.publicKey,
		AllowedIPs: o.allowedIPs,
		State:      state,
		DryRun:     o.check,
	}
	if cmd.Flags().Changed("comment") {
		comment := o.comment
		req.Comment = &comment
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	res, err := e.manager.Apply(ctx, req)
	if err != nil {
		e.logger.Error("apply failed",
			"interface", req.Interface,
			"state", string(req.State),
			"error", err,
		)
		return reportFailure(cmd, wireguard.FailureMessage(res, err))
	}
	return writeJSON(cmd.OutOrStdout(), res)
}

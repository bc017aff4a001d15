package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plexsphere/wgpeer/internal/wireguard"
)

type batchOptions struct {
	file  string
	check bool
}

func newBatchCmd(g *globalOptions) *cobra.Command {
	o := &batchOptions{}
	c := &cobra.Command{
		Use:   "batch",
		Short: "Apply a YAML manifest of peers",
		Long: "Apply every peer in a manifest file. Removals run before additions.\n" +
			"A failing entry does not stop the others; the command exits non-zero\n" +
			"if any entry failed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, g, o)
		},
	}

	f := c.Flags()
	f.StringVarP(&o.file, "file", "f", "", "manifest file path")
	f.BoolVar(&o.check, "check", false, "report the outcome without changing anything")
	_ = c.MarkFlagRequired("file")
	return c
}

func runBatch(cmd *cobra.Command, g *globalOptions, o *batchOptions) error {
	e, err := g.setup(cmd)
	if err != nil {
		return reportFailure(cmd, err.Error())
	}

	data, err := os.ReadFile(o.file)
	if err != nil {
		return reportFailure(cmd, fmt.Sprintf("read manifest: %v", err))
	}
	m, err := wireguard.ParseManifest(data)
	if err != nil {
		return reportFailure(cmd, err.Error())
	}
	reqs, err := m.Requests(e.cfg.WireGuard.InterfaceName, o.check)
	if err != nil {
		return reportFailure(cmd, err.Error())
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	outcomes, applyErr := wireguard.ApplyAll(ctx, e.manager, reqs)
	if err := writeJSON(cmd.OutOrStdout(), outcomes); err != nil {
		return err
	}
	if applyErr != nil {
		e.logger.Error("batch finished with failures", "error", applyErr)
		return errReported
	}
	e.logger.Info("batch applied", "requests", len(reqs))
	return nil
}

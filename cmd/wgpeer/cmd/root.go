// Package cmd implements the wgpeer CLI commands.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plexsphere/wgpeer/internal/agent"
)

// errReported is returned by commands that already wrote a failure
// document to stdout.
var errReported = errors.New("failure reported")

// Build info set from main.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// globalOptions holds the persistent flags shared by all subcommands.
type globalOptions struct {
	configFile string
	logLevel   string
	configDir  string
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	root := &cobra.Command{
		Use:   "wgpeer",
		Short: "wgpeer edits WireGuard peer entries in wg-quick config files",
		Long: "wgpeer adds and removes [Peer] entries in wg-quick configuration files.\n" +
			"Every edit takes the interface down, rewrites its config file, and brings\n" +
			"it back up so the running device matches the file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configFile, "config", agent.DefaultConfigPath, "config file path")
	pf.StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")
	pf.StringVar(&g.configDir, "config-dir", "", "wg-quick config directory (overrides config)")

	root.AddCommand(
		newApplyCmd(g),
		newBatchCmd(g),
		newListCmd(g),
		newStatusCmd(g),
		newDefaultConfigCmd(),
	)

	root.Version = buildVersion
	root.SetVersionTemplate(versionTemplate())
	return root
}

func versionTemplate() string {
	return fmt.Sprintf("wgpeer version {{.Version}}\ncommit: %s\nbuilt: %s\n", buildCommit, buildDate)
}

// SetVersionInfo sets the version info from build-time ldflags.
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(versionTemplate())
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/plexsphere/wgpeer/internal/agent"
	"github.com/plexsphere/wgpeer/internal/command"
	"github.com/plexsphere/wgpeer/internal/wgconf"
	"github.com/plexsphere/wgpeer/internal/wireguard"
)

// newRunner and runtimePeers are replaced in tests.
var (
	newRunner = func(cfg command.Config, logger *slog.Logger) command.Runner {
		return command.NewExecRunner(cfg, logger)
	}
	runtimePeers = wireguard.RuntimePeers
)

// env is the wired object graph a subcommand works with.
type env struct {
	cfg     *agent.Config
	logger  *slog.Logger
	store   *wgconf.FileStore
	ctrl    wireguard.LinkController
	manager *wireguard.Manager
}

func (g *globalOptions) setup(cmd *cobra.Command) (*env, error) {
	// A missing file at the default location means "use defaults"; an
	// explicitly named file must exist.
	cfg, err := agent.LoadConfig(g.configFile, g.configFile == agent.DefaultConfigPath)
	if err != nil {
		return nil, err
	}

	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.configDir != "" {
		cfg.WireGuard.ConfigDir = g.configDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	runner := newRunner(cfg.Command, logger)
	ctrl, err := wireguard.NewLinkController(cfg.WireGuard, runner, logger)
	if err != nil {
		return nil, err
	}
	store := wgconf.NewFileStore(cfg.WireGuard.ConfigDir, cfg.WireGuard.FileMode)

	return &env{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		ctrl:    ctrl,
		manager: wireguard.NewManager(ctrl, store, cfg.WireGuard, logger),
	}, nil
}

// iface returns name, or the configured default interface when empty.
func (e *env) iface(name string) string {
	if name != "" {
		return name
	}
	return e.cfg.WireGuard.InterfaceName
}

// signalContext derives a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func setupLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// failure is the document printed on stdout when a command fails.
type failure struct {
	Failed  bool   `json:"failed"`
	Changed bool   `json:"changed"`
	Msg     string `json:"msg"`
}

// reportFailure prints msg as a failure document and returns errReported.
func reportFailure(cmd *cobra.Command, msg string) error {
	if err := writeJSON(cmd.OutOrStdout(), failure{Failed: true, Msg: msg}); err != nil {
		return err
	}
	return errReported
}

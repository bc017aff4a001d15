package wireguard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plexsphere/wgpeer/internal/command"
)

// LinkController abstracts interface state queries and wg-quick transitions
// for testability.
type LinkController interface {
	// IsUp reports whether the named interface currently exists.
	IsUp(ctx context.Context, name string) (bool, error)
	// BringDown tears the interface down via its configuration file.
	BringDown(ctx context.Context, name string) error
	// BringUp brings the interface up from its configuration file.
	BringUp(ctx context.Context, name string) error
}

// QuickController implements LinkController with the ip and wg-quick
// command-line tools.
type QuickController struct {
	runner command.Runner
	logger *slog.Logger
}

// NewQuickController returns a QuickController that runs commands through runner.
func NewQuickController(runner command.Runner, logger *slog.Logger) *QuickController {
	return &QuickController{
		runner: runner,
		logger: logger.With("component", "wireguard"),
	}
}

// IsUp runs `ip link show <name>`. Exit status 0 means the link exists.
func (c *QuickController) IsUp(ctx context.Context, name string) (bool, error) {
	res, err := c.runner.Run(ctx, "ip", "link", "show", name)
	if err != nil {
		return false, fmt.Errorf("wireguard: link status %s: %w", name, err)
	}
	up := res.ExitCode == 0
	c.logger.Debug("link status queried", "interface", name, "up", up)
	return up, nil
}

// BringDown runs `wg-quick down <name>`.
func (c *QuickController) BringDown(ctx context.Context, name string) error {
	return c.quick(ctx, "down", name)
}

// BringUp runs `wg-quick up <name>`.
func (c *QuickController) BringUp(ctx context.Context, name string) error {
	return c.quick(ctx, "up", name)
}

func (c *QuickController) quick(ctx context.Context, action, name string) error {
	res, err := c.runner.Run(ctx, "wg-quick", action, name)
	if err != nil {
		return &TransitionError{Interface: name, Action: action, ExitCode: -1, Err: err}
	}
	if res.ExitCode != 0 {
		return &TransitionError{
			Interface: name,
			Action:    action,
			ExitCode:  res.ExitCode,
			Output:    res.Output(),
		}
	}
	c.logger.Info("interface transitioned", "interface", name, "action", action)
	return nil
}

// NewLinkController returns the LinkController selected by cfg.LinkQuery
// and cfg.Transition.
func NewLinkController(cfg Config, runner command.Runner, logger *slog.Logger) (LinkController, error) {
	quick := NewQuickController(runner, logger)

	var query LinkController
	switch cfg.LinkQuery {
	case "", LinkQueryIP:
		query = quick
	case LinkQueryNetlink:
		nl, err := newNetlinkController(quick, logger)
		if err != nil {
			return nil, err
		}
		query = nl
	default:
		return nil, fmt.Errorf("wireguard: unknown link query %q", cfg.LinkQuery)
	}

	switch cfg.Transition {
	case "", TransitionWgQuick:
		return query, nil
	case TransitionSystemd:
		return NewSystemdController(query, runner, logger), nil
	default:
		return nil, fmt.Errorf("wireguard: unknown transition %q", cfg.Transition)
	}
}

package wireguard

import (
	"context"
	"log/slog"

	"github.com/plexsphere/wgpeer/internal/command"
)

// SystemdController transitions interfaces through the wg-quick@.service
// template unit so systemd keeps tracking the interface. State queries are
// delegated to query.
type SystemdController struct {
	query  LinkController
	runner command.Runner
	logger *slog.Logger
}

// NewSystemdController returns a SystemdController answering IsUp with query.
func NewSystemdController(query LinkController, runner command.Runner, logger *slog.Logger) *SystemdController {
	return &SystemdController{
		query:  query,
		runner: runner,
		logger: logger.With("component", "wireguard"),
	}
}

// UnitName returns the wg-quick template unit instance for iface.
func UnitName(iface string) string {
	return "wg-quick@" + iface + ".service"
}

// IsUp reports the interface state from the underlying query controller.
func (c *SystemdController) IsUp(ctx context.Context, name string) (bool, error) {
	return c.query.IsUp(ctx, name)
}

// BringDown runs `systemctl stop wg-quick@<name>.service`.
func (c *SystemdController) BringDown(ctx context.Context, name string) error {
	return c.systemctl(ctx, "down", "stop", name)
}

// BringUp runs `systemctl start wg-quick@<name>.service`.
func (c *SystemdController) BringUp(ctx context.Context, name string) error {
	return c.systemctl(ctx, "up", "start", name)
}

func (c *SystemdController) systemctl(ctx context.Context, action, verb, name string) error {
	unit := UnitName(name)
	res, err := c.runner.Run(ctx, "systemctl", verb, unit)
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
	c.logger.Info("interface transitioned", "interface", name, "action", action, "unit", unit)
	return nil
}

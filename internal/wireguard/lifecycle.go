package wireguard

import (
	"context"
	"log/slog"
)

// Lifecycle stops and starts an interface around a configuration edit.
type Lifecycle struct {
	ctrl   LinkController
	logger *slog.Logger
}

// NewLifecycle returns a Lifecycle driving ctrl.
func NewLifecycle(ctrl LinkController, logger *slog.Logger) *Lifecycle {
	return &Lifecycle{ctrl: ctrl, logger: logger}
}

// Stop brings the interface down if it is up. It reports whether the
// interface was up.
func (l *Lifecycle) Stop(ctx context.Context, name string) (bool, error) {
	up, err := l.ctrl.IsUp(ctx, name)
	if err != nil {
		return false, err
	}
	if !up {
		l.logger.Debug("interface already down", "interface", name)
		return false, nil
	}
	if err := l.ctrl.BringDown(ctx, name); err != nil {
		return false, err
	}
	return true, nil
}

// Start brings the interface up if it is down. It reports whether a start
// was needed.
func (l *Lifecycle) Start(ctx context.Context, name string) (bool, error) {
	up, err := l.ctrl.IsUp(ctx, name)
	if err != nil {
		return false, err
	}
	if up {
		l.logger.Debug("interface already up", "interface", name)
		return false, nil
	}
	if err := l.ctrl.BringUp(ctx, name); err != nil {
		return false, err
	}
	return true, nil
}

package wireguard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/plexsphere/wgpeer/internal/wgconf"
)

// ConfigStore reads and writes interface configuration files.
// *wgconf.FileStore satisfies it.
type ConfigStore interface {
	Read(iface string) (string, error)
	Write(iface, text string) error
	Lock(iface string) (func() error, error)
}

// Manager applies peer requests to configuration files, cycling the
// interface around every edit.
type Manager struct {
	ctrl   LinkController
	store  ConfigStore
	cfg    Config
	logger *slog.Logger
}

// NewManager creates a new Manager. Config defaults are applied automatically.
func NewManager(ctrl LinkController, store ConfigStore, cfg Config, logger *slog.Logger) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		ctrl:   ctrl,
		store:  store,
		cfg:    cfg,
		logger: logger.With("component", "wireguard"),
	}
}

// Apply brings the configuration file of req.Interface to req.State.
//
// A present request for an identity already in the file fails with
// ErrPeerExists before any side effect; the returned Result carries
// MsgPeerExists. Every other successful request reports Changed.
//
// A dry-run request reports the intended Result without querying or
// transitioning the interface. Only the present duplicate check reads the
// config file.
func (m *Manager) Apply(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	logger := m.logger.With(
		"interface", req.Interface,
		"state", string(req.State),
		"dry_run", req.DryRun,
	)

	if m.cfg.LockConfig {
		unlock, err := m.store.Lock(req.Interface)
		if err != nil {
			return Result{}, fmt.Errorf("wireguard: apply: %w", err)
		}
		defer func() {
			if err := unlock(); err != nil {
				logger.Warn("failed to release config lock", "error", err)
			}
		}()
	}

	switch req.State {
	case StatePresent:
		return m.present(ctx, req, logger)
	default:
		return m.absent(ctx, req, logger)
	}
}

func (m *Manager) present(ctx context.Context, req Request, logger *slog.Logger) (Result, error) {
	text, err := m.store.Read(req.Interface)
	if err != nil {
		return Result{}, fmt.Errorf("wireguard: add peer: %w", err)
	}
	if wgconf.HasPeer(text, req.PublicKey) {
		logger.Info("peer already present")
		return Result{Message: MsgPeerExists}, ErrPeerExists
	}

	res := Result{Changed: true, Message: "Peer added to " + req.Interface}
	if req.DryRun {
		logger.Info("would add peer", "public_key", req.PublicKey)
		return res, nil
	}

	err = m.cycle(ctx, req, logger, func(text string) (string, bool) {
		return wgconf.AddPeer(text, req.PublicKey, req.AllowedIPs, req.Comment), true
	})
	if err != nil {
		return Result{}, fmt.Errorf("wireguard: add peer: %w", err)
	}
	return res, nil
}

func (m *Manager) absent(ctx context.Context, req Request, logger *slog.Logger) (Result, error) {
	res := Result{Changed: true, Message: "Peer removed from " + req.Interface}
	if req.DryRun {
		logger.Info("would remove peer", "public_key", req.PublicKey)
		return res, nil
	}

	err := m.cycle(ctx, req, logger, func(text string) (string, bool) {
		return wgconf.RemovePeer(text, req.PublicKey)
	})
	if err != nil {
		return Result{}, fmt.Errorf("wireguard: remove peer: %w", err)
	}
	return res, nil
}

// cycle stops the interface, rewrites its configuration with edit and
// starts it again. edit reports whether the text changed; unchanged text
// is not written back.
func (m *Manager) cycle(ctx context.Context, req Request, logger *slog.Logger, edit func(string) (string, bool)) error {
	lc := NewLifecycle(m.ctrl, logger)

	if _, err := lc.Stop(ctx, req.Interface); err != nil {
		return err
	}

	if err := m.rewrite(req, logger, edit); err != nil {
		if m.cfg.RestartOnFailure {
			if _, serr := lc.Start(ctx, req.Interface); serr != nil {
				err = errors.Join(err, fmt.Errorf("restart after failed edit: %w", serr))
			}
		}
		return err
	}

	_, err := lc.Start(ctx, req.Interface)
	return err
}

func (m *Manager) rewrite(req Request, logger *slog.Logger, edit func(string) (string, bool)) error {
	text, err := m.store.Read(req.Interface)
	if err != nil {
		return err
	}
	updated, changed := edit(text)
	if !changed {
		logger.Info("no matching peer in config")
		return nil
	}
	if err := m.store.Write(req.Interface, updated); err != nil {
		return err
	}
	logger.Info("config rewritten", "public_key", req.PublicKey)
	return nil
}

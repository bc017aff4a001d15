//go:build !linux

package wireguard

import (
	"errors"
	"log/slog"
)

func newNetlinkController(_ *QuickController, _ *slog.Logger) (LinkController, error) {
	return nil, errors.New("wireguard: netlink link query is only supported on linux")
}

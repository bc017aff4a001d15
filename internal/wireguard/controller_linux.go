//go:build linux

package wireguard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vishvananda/netlink"
)

// NetlinkController answers state queries from the kernel link table and
// delegates transitions to wg-quick.
type NetlinkController struct {
	*QuickController
	logger *slog.Logger

	// linkByName is swapped in tests.
	linkByName func(name string) (netlink.Link, error)
}

// NewNetlinkController returns a NetlinkController that transitions
// interfaces through quick.
func NewNetlinkController(quick *QuickController, logger *slog.Logger) *NetlinkController {
	return &NetlinkController{
		QuickController: quick,
		logger:          logger.With("component", "wireguard"),
		linkByName:      netlink.LinkByName,
	}
}

func newNetlinkController(quick *QuickController, logger *slog.Logger) (LinkController, error) {
	return NewNetlinkController(quick, logger), nil
}

// IsUp reports whether a link with the given name exists. A missing link is
// not an error.
func (c *NetlinkController) IsUp(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	link, err := c.linkByName(name)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			c.logger.Debug("link not found", "interface", name)
			return false, nil
		}
		return false, fmt.Errorf("wireguard: link status %s: %w", name, err)
	}
	c.logger.Debug("link found",
		"interface", name,
		"type", link.Type(),
		"oper_state", link.Attrs().OperState.String(),
	)
	return true, nil
}

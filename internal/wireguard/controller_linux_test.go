//go:build linux

package wireguard

import (
	"context"
	"errors"
	"testing"

	"github.com/vishvananda/netlink"
)

// Compile-time check that NetlinkController implements LinkController.
var _ LinkController = (*NetlinkController)(nil)

func newTestNetlinkController(lookup func(string) (netlink.Link, error)) (*NetlinkController, *fakeRunner) {
	r := &fakeRunner{}
	c := NewNetlinkController(NewQuickController(r, discardLogger()), discardLogger())
	c.linkByName = lookup
	return c, r
}

func TestNetlinkController_IsUp(t *testing.T) {
	c, r := newTestNetlinkController(func(name string) (netlink.Link, error) {
		return &netlink.GenericLink{LinkAttrs: netlink.LinkAttrs{Name: name}, LinkType: "wireguard"}, nil
	})

	up, err := c.IsUp(context.Background(), "wg0")
	if err != nil {
		t.Fatalf("IsUp() error = %v", err)
	}
	if !up {
		t.Error("IsUp() = false, want true")
	}
	if len(r.calls) != 0 {
		t.Errorf("runner called %d times, want 0", len(r.calls))
	}
}

func TestNetlinkController_IsUpMissingLink(t *testing.T) {
	c, _ := newTestNetlinkController(func(name string) (netlink.Link, error) {
		return nil, netlink.LinkNotFoundError{}
	})

	up, err := c.IsUp(context.Background(), "wg0")
	if err != nil {
		t.Fatalf("IsUp() error = %v", err)
	}
	if up {
		t.Error("IsUp() = true, want false")
	}
}

func TestNetlinkController_IsUpError(t *testing.T) {
	c, _ := newTestNetlinkController(func(name string) (netlink.Link, error) {
		return nil, errors.New("operation not permitted")
	})

	if _, err := c.IsUp(context.Background(), "wg0"); err == nil {
		t.Fatal("IsUp() = nil error, want error")
	}
}

func TestNetlinkController_TransitionsUseWgQuick(t *testing.T) {
	c, r := newTestNetlinkController(func(string) (netlink.Link, error) { return nil, netlink.LinkNotFoundError{} })

	if err := c.BringUp(context.Background(), "wg0"); err != nil {
		t.Fatalf("BringUp() error = %v", err)
	}
	if len(r.calls) != 1 || r.calls[0][0] != "wg-quick" || r.calls[0][1] != "up" {
		t.Errorf("runner calls = %v, want wg-quick up", r.calls)
	}
}

func TestNewLinkController_Netlink(t *testing.T) {
	ctrl, err := NewLinkController(Config{LinkQuery: LinkQueryNetlink}, &fakeRunner{}, discardLogger())
	if err != nil {
		t.Fatalf("NewLinkController(netlink) error = %v", err)
	}
	if _, ok := ctrl.(*NetlinkController); !ok {
		t.Errorf("NewLinkController(netlink) = %T, want *NetlinkController", ctrl)
	}
}

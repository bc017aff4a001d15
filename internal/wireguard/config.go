package wireguard

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/plexsphere/wgpeer/internal/fsutil"
	"github.com/plexsphere/wgpeer/internal/wgconf"
)

// Config holds the configuration for peer management on a wg-quick interface.
// Config is passed as a constructor argument; this package never reads it from disk.
type Config struct {
	// InterfaceName is the interface used when a request names none.
	// Default: "wg0"
	InterfaceName string `yaml:"interface_name"`

	// ConfigDir is the directory holding <interface>.conf files.
	// Default: /etc/wireguard
	ConfigDir string `yaml:"config_dir"`

	// LinkQuery selects how interface state is queried: "ip" runs
	// `ip link show`, "netlink" asks the kernel directly (linux only).
	// Default: "ip"
	LinkQuery string `yaml:"link_query"`

	// Transition selects how the interface is brought down and up:
	// "wg-quick" runs wg-quick directly, "systemd" stops and starts the
	// wg-quick@<interface> unit.
	// Default: "wg-quick"
	Transition string `yaml:"transition"`

	// LockConfig serializes the read-modify-write of a configuration file
	// with an advisory lock. Only supported where flock(2) is available.
	LockConfig bool `yaml:"lock_config"`

	// RestartOnFailure brings the interface back up when an edit fails after
	// the interface was stopped. The edit error is still returned.
	RestartOnFailure bool `yaml:"restart_on_failure"`

	// FileMode is the permission used for newly created configuration files.
	// Default: wgconf.DefaultFileMode (0600)
	FileMode os.FileMode `yaml:"file_mode"`
}

// DefaultInterfaceName is the default WireGuard interface name.
const DefaultInterfaceName = "wg0"

// DefaultConfigDir is the default wg-quick configuration directory.
const DefaultConfigDir = "/etc/wireguard"

// Link query modes.
const (
	LinkQueryIP      = "ip"
	LinkQueryNetlink = "netlink"
)

// Transition modes.
const (
	TransitionWgQuick = "wg-quick"
	TransitionSystemd = "systemd"
)

// maxInterfaceNameLen is IFNAMSIZ minus the trailing NUL.
const maxInterfaceNameLen = 15

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.InterfaceName == "" {
		c.InterfaceName = DefaultInterfaceName
	}
	if c.ConfigDir == "" {
		c.ConfigDir = DefaultConfigDir
	}
	if c.LinkQuery == "" {
		c.LinkQuery = LinkQueryIP
	}
	if c.Transition == "" {
		c.Transition = TransitionWgQuick
	}
	if c.FileMode == 0 {
		c.FileMode = wgconf.DefaultFileMode
	}
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if err := ValidateInterfaceName(c.InterfaceName); err != nil {
		return fmt.Errorf("wireguard: config: InterfaceName: %w", err)
	}
	if c.ConfigDir == "" {
		return errors.New("wireguard: config: ConfigDir is required")
	}
	if c.LinkQuery != LinkQueryIP && c.LinkQuery != LinkQueryNetlink {
		return fmt.Errorf("wireguard: config: invalid LinkQuery %q (must be %q or %q)", c.LinkQuery, LinkQueryIP, LinkQueryNetlink)
	}
	if c.Transition != TransitionWgQuick && c.Transition != TransitionSystemd {
		return fmt.Errorf("wireguard: config: invalid Transition %q (must be %q or %q)", c.Transition, TransitionWgQuick, TransitionSystemd)
	}
	if c.LockConfig && !fsutil.LockSupported {
		return errors.New("wireguard: config: LockConfig is not supported on this platform")
	}
	if c.FileMode&^os.ModePerm != 0 {
		return fmt.Errorf("wireguard: config: FileMode %o has non-permission bits", c.FileMode)
	}
	return nil
}

// ValidateInterfaceName checks that name is usable both as a kernel link
// name and as a file name under the configuration directory.
func ValidateInterfaceName(name string) error {
	switch {
	case name == "":
		return errors.New("interface name is required")
	case len(name) > maxInterfaceNameLen:
		return fmt.Errorf("interface name %q too long (max %d)", name, maxInterfaceNameLen)
	case name == "." || name == "..":
		return fmt.Errorf("invalid interface name %q", name)
	case strings.ContainsAny(name, "/\\ \t\r\n"):
		return fmt.Errorf("interface name %q contains invalid characters", name)
	}
	return nil
}

package agent

import (
	"fmt"

	"github.com/plexsphere/wgpeer/internal/command"
	"github.com/plexsphere/wgpeer/internal/wireguard"
)

// GenerateDefaultConfig produces a config.yaml that parses to DefaultConfig.
// Opt-in settings are written as comments.
func GenerateDefaultConfig() string {
	return fmt.Sprintf(`# wgpeer configuration
log_level: %s

wireguard:
  interface_name: %s
  config_dir: %s
  # ip or netlink
  link_query: %s
  # wg-quick or systemd
  transition: %s
  # lock_config: true
  # restart_on_failure: true
  # file_mode: 0o600

command:
  timeout: %s
  max_output_bytes: %d
`,
		DefaultLogLevel,
		wireguard.DefaultInterfaceName,
		wireguard.DefaultConfigDir,
		wireguard.LinkQueryIP,
		wireguard.TransitionWgQuick,
		command.DefaultTimeout,
		command.DefaultMaxOutputBytes,
	)
}

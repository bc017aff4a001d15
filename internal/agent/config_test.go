package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plexsphere/wgpeer/internal/wgconf"
	"github.com/plexsphere/wgpeer/internal/wireguard"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.WireGuard.InterfaceName != wireguard.DefaultInterfaceName {
		t.Errorf("WireGuard.InterfaceName = %q, want %q", cfg.WireGuard.InterfaceName, wireguard.DefaultInterfaceName)
	}
	if cfg.Command.Timeout != 30*time.Second {
		t.Errorf("Command.Timeout = %v, want 30s", cfg.Command.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestConfig_Validate_InvalidLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestParseConfig_ValidYAML(t *testing.T) {
	yaml := `
log_level: debug
wireguard:
  interface_name: wg1
  config_dir: /tmp/wireguard
  link_query: netlink
  lock_config: true
  restart_on_failure: true
  transition: systemd
command:
  timeout: 5s
  max_output_bytes: 4096
`
	cfg, err := ParseConfig(writeTemp(t, yaml))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	wg := cfg.WireGuard
	if wg.InterfaceName != "wg1" || wg.ConfigDir != "/tmp/wireguard" || wg.LinkQuery != "netlink" {
		t.Errorf("WireGuard = %+v", wg)
	}
	if !wg.LockConfig || !wg.RestartOnFailure {
		t.Errorf("WireGuard flags = %+v, want both set", wg)
	}
	if wg.Transition != wireguard.TransitionSystemd {
		t.Errorf("Transition = %q, want %q", wg.Transition, wireguard.TransitionSystemd)
	}
	if wg.FileMode != wgconf.DefaultFileMode {
		t.Errorf("FileMode = %o, want default", wg.FileMode)
	}
	if cfg.Command.Timeout != 5*time.Second {
		t.Errorf("Command.Timeout = %v, want 5s", cfg.Command.Timeout)
	}
	if cfg.Command.MaxOutputBytes != 4096 {
		t.Errorf("Command.MaxOutputBytes = %d, want 4096", cfg.Command.MaxOutputBytes)
	}
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig(writeTemp(t, ""))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.WireGuard.ConfigDir != wireguard.DefaultConfigDir {
		t.Errorf("ConfigDir = %q, want %q", cfg.WireGuard.ConfigDir, wireguard.DefaultConfigDir)
	}
}

func TestParseConfig_InvalidYAML(t *testing.T) {
	_, err := ParseConfig(writeTemp(t, "log_level: [broken"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "agent: config: parse") {
		t.Errorf("error = %q, want parse error", err.Error())
	}
}

func TestParseConfig_ValidationError(t *testing.T) {
	_, err := ParseConfig(writeTemp(t, "wireguard:\n  link_query: proc\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestParseConfig_MissingFile(t *testing.T) {
	if _, err := ParseConfig("/nonexistent/wgpeer.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfig_OptionalMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig(optional) error = %v", err)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want default", cfg.LogLevel)
	}

	if _, err := LoadConfig(path, false); err == nil {
		t.Error("LoadConfig(required) = nil error, want error")
	}
}

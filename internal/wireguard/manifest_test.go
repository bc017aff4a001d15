package wireguard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testManifest = `
interface: wg1
check_mode: true
peers:
  - public_key: K1
    allowed_ips: [10.0.0.2/32, 10.0.1.0/24]
    comment: user1
  - public_key: K2
    state: absent
  - interface: wg2
    public_key: K3
    allowed_ips: [10.0.0.4/32]
    state: present
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(testManifest))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}

	reqs, err := m.Requests("wg0", false)
	if err != nil {
		t.Fatalf("Requests() error = %v", err)
	}

	want := []Request{
		{Interface: "wg1", PublicKey: "K1", AllowedIPs: []string{"10.0.0.2/32", "10.0.1.0/24"}, Comment: strPtr("user1"), State: StatePresent, DryRun: true},
		{Interface: "wg1", PublicKey: "K2", State: StateAbsent, DryRun: true},
		{Interface: "wg2", PublicKey: "K3", AllowedIPs: []string{"10.0.0.4/32"}, State: StatePresent, DryRun: true},
	}
	if diff := cmp.Diff(want, reqs); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestManifest_DefaultInterface(t *testing.T) {
	m, err := ParseManifest([]byte("peers:\n  - public_key: K1\n    state: absent\n"))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	reqs, err := m.Requests("wg0", true)
	if err != nil {
		t.Fatalf("Requests() error = %v", err)
	}
	if reqs[0].Interface != "wg0" || !reqs[0].DryRun {
		t.Errorf("request = %+v, want wg0 dry run", reqs[0])
	}
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid yaml", data: "peers: [unclosed"},
		{name: "no peers", data: "interface: wg0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(tt.data)); err == nil {
				t.Error("ParseManifest() = nil error, want error")
			}
		})
	}
}

func TestManifest_RequestsValidate(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "bad state", data: "peers:\n  - public_key: K1\n    allowed_ips: [10.0.0.2/32]\n    state: gone\n"},
		{name: "missing allowed ips", data: "peers:\n  - public_key: K1\n"},
		{name: "missing key", data: "peers:\n  - allowed_ips: [10.0.0.2/32]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseManifest() error = %v", err)
			}
			if _, err := m.Requests("wg0", false); !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("Requests() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

package wireguard

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is a batch of peer requests for one or more interfaces.
type Manifest struct {
	// Interface applies to peers that name none.
	Interface string         `yaml:"interface"`
	CheckMode bool           `yaml:"check_mode"`
	Peers     []ManifestPeer `yaml:"peers"`
}

// ManifestPeer is one manifest entry.
type ManifestPeer struct {
	Interface  string   `yaml:"interface"`
	PublicKey  string   `yaml:"public_key"`
	AllowedIPs []string `yaml:"allowed_ips"`
	Comment    *string  `yaml:"comment"`
	State      string   `yaml:"state"`
}

// ParseManifest parses YAML manifest bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("wireguard: parse manifest: %w", err)
	}
	if len(m.Peers) == 0 {
		return nil, errors.New("wireguard: parse manifest: no peers")
	}
	return &m, nil
}

// Requests converts the manifest into validated requests. defaultIface is
// used when neither the entry nor the manifest names an interface; dryRun
// is ORed with the manifest's check_mode.
func (m *Manifest) Requests(defaultIface string, dryRun bool) ([]Request, error) {
	reqs := make([]Request, 0, len(m.Peers))
	for i, p := range m.Peers {
		state, err := ParseState(p.State)
		if err != nil {
			return nil, fmt.Errorf("wireguard: manifest peer %d: %w", i, err)
		}
		iface := p.Interface
		if iface == "" {
			iface = m.Interface
		}
		if iface == "" {
			iface = defaultIface
		}
		r := Request{
			Interface:  iface,
			PublicKey:  p.PublicKey,
			AllowedIPs: p.AllowedIPs,
			Comment:    p.Comment,
			State:      state,
			DryRun:     dryRun || m.CheckMode,
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("wireguard: manifest peer %d: %w", i, err)
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

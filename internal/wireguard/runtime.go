package wireguard

import (
	"fmt"
	"time"

	"golang.zx2c4.com/wireguard/wgctrl"
	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

// RuntimePeer is a peer as the running device reports it.
type RuntimePeer struct {
	PublicKey     string    `json:"public_key"`
	Endpoint      string    `json:"endpoint,omitempty"`
	AllowedIPs    []string  `json:"allowed_ips"`
	LastHandshake time.Time `json:"last_handshake"`
	ReceiveBytes  int64     `json:"rx_bytes"`
	TransmitBytes int64     `json:"tx_bytes"`
}

// RuntimePeers reads the peer list of the running device iface.
// It is read-only and never consulted by Apply.
func RuntimePeers(iface string) ([]RuntimePeer, error) {
	client, err := wgctrl.New()
	if err != nil {
		return nil, fmt.Errorf("wireguard: runtime peers: open wgctrl: %w", err)
	}
	defer client.Close()

	dev, err := client.Device(iface)
	if err != nil {
		return nil, fmt.Errorf("wireguard: runtime peers: %w", err)
	}
	return runtimePeersFromDevice(dev), nil
}

func runtimePeersFromDevice(dev *wgtypes.Device) []RuntimePeer {
	peers := make([]RuntimePeer, 0, len(dev.Peers))
	for _, p := range dev.Peers {
		rp := RuntimePeer{
			PublicKey:     p.PublicKey.String(),
			AllowedIPs:    make([]string, 0, len(p.AllowedIPs)),
			LastHandshake: p.LastHandshakeTime,
			ReceiveBytes:  p.ReceiveBytes,
			TransmitBytes: p.TransmitBytes,
		}
		if p.Endpoint != nil {
			rp.Endpoint = p.Endpoint.String()
		}
		for _, n := range p.AllowedIPs {
			rp.AllowedIPs = append(rp.AllowedIPs, n.String())
		}
		peers = append(peers, rp)
	}
	return peers
}

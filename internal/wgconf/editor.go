package wgconf

import (
	"strings"
)

// Peer summarizes one [Peer] block.
type Peer struct {
	PublicKey  string   `json:"public_key"`
	AllowedIPs []string `json:"allowed_ips"`
	Comment    string   `json:"comment,omitempty"`
}

// HasPeer reports whether any line of text contains identity. It uses the
// same substring policy as Block.ContainsIdentity but needs no block parse.
func HasPeer(text, identity string) bool {
	if identity == "" {
		return false
	}
	for _, line := range splitLines(text) {
		if strings.Contains(line, identity) {
			return true
		}
	}
	return false
}

// PeerBlock renders a new [Peer] block. The comment line is omitted when
// comment is nil.
func PeerBlock(identity string, allowedIPs []string, comment *string) Block {
	var sb strings.Builder
	sb.WriteString("[Peer]\n")
	sb.WriteString("PublicKey=" + identity + "\n")
	sb.WriteString("AllowedIPs=" + strings.Join(allowedIPs, ","))
	if comment != nil {
		sb.WriteString("\n# " + *comment)
	}
	return Block{Raw: sb.String()}
}

// AddPeer appends a new peer block to text, separated from the existing
// content by one blank line. It does not check for an existing peer with the
// same identity; callers use HasPeer first.
func AddPeer(text, identity string, allowedIPs []string, comment *string) string {
	block := PeerBlock(identity, allowedIPs, comment).String()
	existing := strings.TrimRight(text, " \t\r\n")
	if existing == "" {
		return block
	}
	return existing + "\n\n" + block
}

// RemovePeer drops every block containing identity and rejoins the rest.
// If no block matches, text is returned unchanged and removed is false.
func RemovePeer(text, identity string) (result string, removed bool) {
	blocks := Split(text)
	var kept []Block
	for _, b := range blocks {
		if b.ContainsIdentity(identity) {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	if !removed {
		return text, false
	}
	return Join(kept), true
}

// Peers returns a summary of every [Peer] block in text, in file order.
func Peers(text string) []Peer {
	var peers []Peer
	for _, b := range Split(text) {
		if !b.IsPeer() {
			continue
		}
		peers = append(peers, Peer{
			PublicKey:  b.PublicKey(),
			AllowedIPs: b.AllowedIPs(),
			Comment:    b.Comment(),
		})
	}
	return peers
}

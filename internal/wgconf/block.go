// Package wgconf reads and edits wg-quick style configuration text.
//
// The text is handled as an ordered list of section blocks rather than as
// key/value data, so everything outside the edited block survives verbatim.
package wgconf

import (
	"strings"
)

// Block is one configuration section: a header line such as [Interface] or
// [Peer] and every line up to the next header. Raw is stored with leading
// and trailing whitespace removed.
type Block struct {
	Raw string
}

// Split breaks text into blocks. A line starting with '[' opens a new block
// once the current block has content. Lines before the first header belong to
// the first block; no separate preamble block is produced. Blocks that are
// empty after trimming are dropped, so blank input yields no blocks.
func Split(text string) []Block {
	var blocks []Block
	var cur strings.Builder

	flush := func() {
		if raw := strings.TrimSpace(cur.String()); raw != "" {
			blocks = append(blocks, Block{Raw: raw})
		}
		cur.Reset()
	}

	for _, line := range splitLines(text) {
		if strings.HasPrefix(line, "[") && cur.Len() > 0 {
			flush()
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	flush()

	return blocks
}

// Join renders blocks separated by exactly one blank line. Non-empty output
// ends with a single newline.
func Join(blocks []Block) string {
	if len(blocks) == 0 {
		return ""
	}
	raws := make([]string, len(blocks))
	for i, b := range blocks {
		raws[i] = b.Raw
	}
	return strings.Join(raws, "\n\n") + "\n"
}

// ContainsIdentity reports whether identity occurs anywhere in the block.
//
// The match is a plain substring test, not a parse of the PublicKey line: a
// key that is a prefix of a longer key, or that appears in a comment, still
// matches. Existence checks and removal both rely on this behavior. An empty
// identity never matches.
func (b Block) ContainsIdentity(identity string) bool {
	return identity != "" && strings.Contains(b.Raw, identity)
}

// String returns the block text followed by a newline.
func (b Block) String() string {
	return b.Raw + "\n"
}

// Header returns the first line of the block.
func (b Block) Header() string {
	header, _, _ := strings.Cut(b.Raw, "\n")
	return strings.TrimSpace(header)
}

// IsPeer reports whether the block is a [Peer] section.
func (b Block) IsPeer() bool {
	return strings.EqualFold(b.Header(), "[Peer]")
}

// PublicKey returns the value of the first PublicKey entry, or "" if the
// block has none.
func (b Block) PublicKey() string {
	for _, kv := range b.entries() {
		if strings.EqualFold(kv[0], "PublicKey") {
			return kv[1]
		}
	}
	return ""
}

// AllowedIPs returns every AllowedIPs value in the block, in order.
// Multiple AllowedIPs lines are concatenated.
func (b Block) AllowedIPs() []string {
	var ips []string
	for _, kv := range b.entries() {
		if !strings.EqualFold(kv[0], "AllowedIPs") {
			continue
		}
		for _, ip := range strings.Split(kv[1], ",") {
			if ip = strings.TrimSpace(ip); ip != "" {
				ips = append(ips, ip)
			}
		}
	}
	return ips
}

// Comment returns the text of the first '#' line in the block.
func (b Block) Comment() string {
	for _, line := range splitLines(b.Raw) {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}

// entries returns the key = value lines of the block with both sides trimmed.
func (b Block) entries() [][2]string {
	var kvs [][2]string
	for _, line := range splitLines(b.Raw) {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || line[0] == '[' {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		kvs = append(kvs, [2]string{strings.TrimSpace(key), strings.TrimSpace(value)})
	}
	return kvs
}

// splitLines splits text on newlines, dropping a trailing '\r' from each line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

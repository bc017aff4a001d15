package wireguard

import (
	"fmt"
	"strings"
)

// State is the desired presence of a peer in a configuration file.
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// ParseState parses s into a State. The empty string means present.
func ParseState(s string) (State, error) {
	switch State(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatePresent:
		return StatePresent, nil
	case StateAbsent:
		return StateAbsent, nil
	default:
		return "", fmt.Errorf("%w: unknown state %q (must be %q or %q)", ErrInvalidRequest, s, StatePresent, StateAbsent)
	}
}

// Request describes one peer edit.
type Request struct {
	Interface  string
	PublicKey  string
	AllowedIPs []string
	// Comment is written as a "# " line when non-nil.
	Comment *string
	State   State
	// DryRun reports the outcome without writing files or transitioning
	// the interface.
	DryRun bool
}

// Result is the outcome of an applied request.
type Result struct {
	Changed bool   `json:"changed"`
	Message string `json:"message"`
}

// Validate checks the request before any side effect happens.
func (r Request) Validate() error {
	if err := ValidateInterfaceName(r.Interface); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if strings.TrimSpace(r.PublicKey) == "" {
		return fmt.Errorf("%w: public key is required", ErrInvalidRequest)
	}
	if strings.ContainsAny(r.PublicKey, "\r\n") {
		return fmt.Errorf("%w: public key must be a single line", ErrInvalidRequest)
	}
	switch r.State {
	case StatePresent:
		if len(r.AllowedIPs) == 0 {
			return fmt.Errorf("%w: at least one allowed IP is required", ErrInvalidRequest)
		}
		for _, ip := range r.AllowedIPs {
			if strings.TrimSpace(ip) == "" || strings.ContainsAny(ip, "\r\n") {
				return fmt.Errorf("%w: invalid allowed IP %q", ErrInvalidRequest, ip)
			}
		}
		if r.Comment != nil && strings.ContainsAny(*r.Comment, "\r\n") {
			return fmt.Errorf("%w: comment must be a single line", ErrInvalidRequest)
		}
	case StateAbsent:
	default:
		return fmt.Errorf("%w: unknown state %q", ErrInvalidRequest, r.State)
	}
	return nil
}

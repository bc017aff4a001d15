package wireguard

import (
	"errors"
	"fmt"
)

// MsgPeerExists is the message reported when a present request names an
// identity already found in the configuration file.
const MsgPeerExists = "Peer already exists with this public key"

// ErrPeerExists is returned by a present request whose identity is already
// in the configuration file. No side effects have happened.
var ErrPeerExists = errors.New("wireguard: peer already exists")

// ErrInvalidRequest is wrapped by request validation failures.
var ErrInvalidRequest = errors.New("wireguard: invalid request")

// TransitionError reports a failed interface up or down command.
type TransitionError struct {
	Interface string
	// Action is "up" or "down".
	Action   string
	ExitCode int
	// Output is the command's captured diagnostic text.
	Output string
	// Err is set when the command could not run to completion.
	Err error
}

func (e *TransitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wireguard: failed to bring %s %s: %v", e.Action, e.Interface, e.Err)
	}
	return fmt.Sprintf("wireguard: failed to bring %s %s: %s", e.Action, e.Interface, e.Output)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

package wireguard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApplyAll_RemovalsRunFirst(t *testing.T) {
	text := ifaceOnly + "\n[Peer]\nPublicKey=K1\nAllowedIPs=10.0.0.2/32\n# old\n"
	store := newMemStore(map[string]string{"wg0": text})
	mgr := NewManager(newMockController("wg0"), store, Config{}, discardLogger())

	replacement := presentReq("K1")
	replacement.Comment = strPtr("new")
	reqs := []Request{replacement, absentReq("K1")}

	outcomes, err := ApplyAll(context.Background(), mgr, reqs)
	if err != nil {
		t.Fatalf("ApplyAll() error = %v", err)
	}

	var states []State
	for _, o := range outcomes {
		states = append(states, o.State)
	}
	if diff := cmp.Diff([]State{StateAbsent, StatePresent}, states); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	got := store.files["wg0"]
	if strings.Contains(got, "# old") || !strings.Contains(got, "# new") {
		t.Errorf("peer not replaced:\n%s", got)
	}
}

func TestApplyAll_ContinuesAfterFailure(t *testing.T) {
	text := ifaceOnly + "\n[Peer]\nPublicKey=K1\nAllowedIPs=10.0.0.2/32\n"
	store := newMemStore(map[string]string{"wg0": text})
	mgr := NewManager(newMockController("wg0"), store, Config{}, discardLogger())

	k2 := presentReq("K2")
	k2.AllowedIPs = []string{"10.0.0.3/32"}
	outcomes, err := ApplyAll(context.Background(), mgr, []Request{presentReq("K1"), k2})
	if !errors.Is(err, ErrPeerExists) {
		t.Fatalf("ApplyAll() error = %v, want ErrPeerExists", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("len(outcomes) = %d, want 2", len(outcomes))
	}
	if !outcomes[0].Failed || outcomes[0].Error != MsgPeerExists {
		t.Errorf("outcomes[0] = %+v, want failed with %q", outcomes[0], MsgPeerExists)
	}
	if outcomes[1].Failed || !outcomes[1].Changed {
		t.Errorf("outcomes[1] = %+v, want changed", outcomes[1])
	}
	if !strings.Contains(store.files["wg0"], "PublicKey=K2") {
		t.Error("K2 not added")
	}
}

func TestApplyAll_CancelledContext(t *testing.T) {
	store := newMemStore(map[string]string{"wg0": ifaceOnly})
	mgr := NewManager(newMockController("wg0"), store, Config{}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := ApplyAll(ctx, mgr, []Request{presentReq("K1")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ApplyAll() error = %v, want context.Canceled", err)
	}
	if len(outcomes) != 0 {
		t.Errorf("len(outcomes) = %d, want 0", len(outcomes))
	}
	if len(store.writes) != 0 {
		t.Errorf("writes = %d, want 0", len(store.writes))
	}
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		err  error
		want string
	}{
		{
			name: "peer exists",
			res:  Result{Message: MsgPeerExists},
			err:  ErrPeerExists,
			want: MsgPeerExists,
		},
		{
			name: "transition",
			err:  &TransitionError{Interface: "wg0", Action: "down", ExitCode: 1, Output: "not permitted"},
			want: "Failed to bring down wg0: not permitted",
		},
		{
			name: "other",
			err:  errors.New("wgconf: read /etc/wireguard/wg0.conf: permission denied"),
			want: "wgconf: read /etc/wireguard/wg0.conf: permission denied",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FailureMessage(tt.res, tt.err); got != tt.want {
				t.Errorf("FailureMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

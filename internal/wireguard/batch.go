package wireguard

import (
	"context"
	"errors"
	"fmt"
)

// Outcome is the per-request record of a batch run.
type Outcome struct {
	Interface string `json:"interface"`
	PublicKey string `json:"public_key"`
	State     State  `json:"state"`
	Result
	Failed bool   `json:"failed,omitempty"`
	Error  string `json:"msg,omitempty"`
}

// ApplyAll applies reqs through mgr. Removals run before additions so a
// batch can replace a peer's entry. Requests are otherwise applied in the
// given order. A failing request does not stop the batch; all errors are
// returned joined. Context cancellation stops the batch between requests.
func ApplyAll(ctx context.Context, mgr *Manager, reqs []Request) ([]Outcome, error) {
	ordered := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		if r.State == StateAbsent {
			ordered = append(ordered, r)
		}
	}
	for _, r := range reqs {
		if r.State != StateAbsent {
			ordered = append(ordered, r)
		}
	}

	outcomes := make([]Outcome, 0, len(ordered))
	var errs []error
	for _, r := range ordered {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("wireguard: batch: %w", err))
			break
		}

		res, err := mgr.Apply(ctx, r)
		o := Outcome{
			Interface: r.Interface,
			PublicKey: r.PublicKey,
			State:     r.State,
			Result:    res,
		}
		if err != nil {
			o.Failed = true
			o.Error = FailureMessage(res, err)
			errs = append(errs, fmt.Errorf("peer %s: %w", r.PublicKey, err))
			mgr.logger.Error("batch request failed",
				"interface", r.Interface,
				"public_key", r.PublicKey,
				"error", err,
			)
		}
		outcomes = append(outcomes, o)
	}

	return outcomes, errors.Join(errs...)
}

// FailureMessage returns the human-readable reason for a failed Apply.
func FailureMessage(res Result, err error) string {
	if errors.Is(err, ErrPeerExists) && res.Message != "" {
		return res.Message
	}
	var te *TransitionError
	if errors.As(err, &te) {
		if te.Err != nil {
			return fmt.Sprintf("Failed to bring %s %s: %v", te.Action, te.Interface, te.Err)
		}
		return fmt.Sprintf("Failed to bring %s %s: %s", te.Action, te.Interface, te.Output)
	}
	return err.Error()
}

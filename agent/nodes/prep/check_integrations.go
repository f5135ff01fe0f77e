package prepnode

import (
	"context"
	"errors"

	contractx "github.com/salesloop/prepagent/agent/contract"
)

var errNilGraphState = errors.New("graph state is nil")

// CheckIntegrations snapshots the user's integration status for this run
// only. The snapshot steers which lookups are attempted; it is discarded
// with the run so a later connect or revoke is always observed.
func CheckIntegrations(ctx context.Context, in *GraphState, checker contractx.StatusChecker) (*GraphState, error) {
	if in == nil {
		return nil, errNilGraphState
	}
	in.Integrations = checker.Check(ctx, in.UserID)
	return in, nil
}

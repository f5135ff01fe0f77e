package integration

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/salesloop/prepagent/agent/contract"
)

// Checker derives a user's integration status straight from storage. Nothing
// is cached: a user can connect or revoke an integration between any two
// requests, and a stale "connected" answer after a revoke is a correctness
// bug.
type Checker struct {
	store contractx.Store
	now   func() time.Time
}

func NewChecker(store contractx.Store) *Checker {
	return &Checker{store: store, now: time.Now}
}

// Check reads each integration kind independently and concurrently. A failed
// or slow read for one kind degrades that kind to not-connected without
// blocking the others.
func (c *Checker) Check(ctx context.Context, userID string) contractx.IntegrationStatus {
	kinds := []contractx.IntegrationKind{
		contractx.KindCalendar,
		contractx.KindCRM,
		contractx.KindEmail,
	}

	now := c.now().UTC()
	connected := make([]bool, len(kinds))

	var wg sync.WaitGroup
	for i, kind := range kinds {
		wg.Add(1)
		go func(i int, kind contractx.IntegrationKind) {
			defer wg.Done()
			rec, err := c.store.GetIntegration(ctx, userID, kind)
			if err != nil {
				log.Warn().Err(err).
					Str("user_id", userID).
					Str("kind", string(kind)).
					Msg("integration lookup failed, reporting not connected")
				return
			}
			connected[i] = rec.Connected(now)
		}(i, kind)
	}
	wg.Wait()

	return contractx.IntegrationStatus{
		HasCalendar: connected[0],
		HasCRM:      connected[1],
		HasEmail:    connected[2],
	}
}

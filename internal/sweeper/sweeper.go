package sweeper

import (
	"context"
)

// Sweeper is a periodic background check over persisted ledger state, run by cmd/sweeper
type Sweeper interface {
	// Start runs sweep cycles until ctx is canceled or Stop is called
	Start(ctx context.Context) error
	// Stop waits for the running cycle to finish
	Stop(ctx context.Context) error
	// Name identifies the sweeper in logs
	Name() string
}

package ports

import "context"

// IngestLoop is a long-running consume loop. Run blocks until the context is
// cancelled or the loop fails unrecoverably.
type IngestLoop interface {
	Run(ctx context.Context) error
}

package channels

import "context"

// Provisioner creates and removes the per-match Discord channels.
type Provisioner interface {
	Provision(ctx context.Context, req Request, dryRun bool) (ChannelSet, error)
	Teardown(ctx context.Context, set ChannelSet, dryRun bool) error
}

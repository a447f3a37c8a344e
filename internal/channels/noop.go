package channels

import (
	"context"

	"github.com/charmbracelet/log"
)

// NoopProvisioner is used when no Discord guild is configured.
type NoopProvisioner struct{}

var _ Provisioner = NoopProvisioner{}

func (NoopProvisioner) Provision(ctx context.Context, req Request, dryRun bool) (ChannelSet, error) {
	log.Debug("Channel provisioning disabled", "match_id", req.MatchID)
	return ChannelSet{}, nil
}

func (NoopProvisioner) Teardown(ctx context.Context, set ChannelSet, dryRun bool) error {
	return nil
}

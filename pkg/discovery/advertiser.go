package discovery

import (
	"context"
	"time"
)

// Advertiser announces the simulator service.
type Advertiser interface {
	// Advertise starts announcing the service, replacing any previous
	// announcement.
	Advertise(ctx context.Context, info *ServiceInfo) error

	// Stop withdraws the announcement. Stopping when not advertising is a
	// no-op.
	Stop() error
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{TTL: 120 * time.Second}
}

// Announce advertises info until ctx is done, then withdraws it.
func Announce(ctx context.Context, adv Advertiser, info *ServiceInfo) error {
	if err := adv.Advertise(ctx, info); err != nil {
		return err
	}
	<-ctx.Done()
	return adv.Stop()
}

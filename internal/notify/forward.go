// Package notify fans selection changes out to external consumers.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/i474232898/city-weather/internal/weather"
)

// Publisher is satisfied by *NATSPublisher.
type Publisher interface {
	PublishSelection(ctx context.Context, city weather.ResolvedCity) error
}

// Forward publishes every city received on updates until ctx is done or
// updates is closed. Publish failures are logged and skipped.
func Forward(ctx context.Context, updates <-chan weather.ResolvedCity, pub Publisher, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case city, ok := <-updates:
			if !ok {
				return
			}
			if err := pub.PublishSelection(ctx, city); err != nil {
				logger.Warn("publish selection change failed", zap.String("key", city.Key()), zap.Error(err))
			}
		}
	}
}

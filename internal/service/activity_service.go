package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-auth/internal/events"
	"github.com/spec-kit/marketplace-auth/internal/persistence"
)

const activityCounterTTL = 30 * 24 * time.Hour

// ActivityService keeps daily signup/login counters in Redis. Counting is
// best-effort; a Redis outage never fails an auth request.
type ActivityService struct {
	dispatcher events.Dispatcher
	redis      *persistence.Redis
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, redis *persistence.Redis, logger *zap.Logger) *ActivityService {
	return &ActivityService{dispatcher: dispatcher, redis: redis, logger: logger}
}

// RegisterHandlers subscribes to auth events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, func(ctx context.Context, event events.Event) error {
		a.increment(ctx, "signup", event.Timestamp)
		return nil
	})
	a.dispatcher.Subscribe(events.EventUserLoggedIn, func(ctx context.Context, event events.Event) error {
		a.increment(ctx, "login", event.Timestamp)
		return nil
	})
}

func (a *ActivityService) increment(ctx context.Context, kind string, at time.Time) {
	if a.redis == nil || a.redis.Client == nil {
		return
	}
	key := "auth:activity:" + kind + ":" + at.UTC().Format("2006-01-02")
	pipe := a.redis.Client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, activityCounterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		a.logger.Warn("activity counter update failed", zap.String("key", key), zap.Error(err))
	}
}

package worker

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/srihari7072/golfzon-dashboard/internal/kafka"
	"github.com/srihari7072/golfzon-dashboard/internal/metrics"
	redisx "github.com/srihari7072/golfzon-dashboard/internal/redis"
)

// tablePrefixes maps an upstream table to the cache prefixes built from it.
// An unknown table invalidates the whole dashboard namespace.
var tablePrefixes = map[string][]string{
	"payment_infos":   {"dashboard:sales", "dashboard:performance"},
	"time_table":      {"dashboard:reservations", "dashboard:heatmap", "dashboard:composition", "dashboard:today", "dashboard:performance"},
	"booking_info":    {"dashboard:reservations", "dashboard:heatmap", "dashboard:composition", "dashboard:today"},
	"visit_customers": {"dashboard:visitors"},
	"golfzon_person":  {"dashboard:age_groups"},
}

// Invalidator consumes upstream change events and drops the affected cache
// entries. Bad or unprocessable messages go to the DLQ for inspection.
type Invalidator struct {
	log        *zap.Logger
	cache      *redisx.Cache
	c          *kafkax.Consumer
	dlq        *kafkax.Producer
	maxWorkers int
}

func NewInvalidator(log *zap.Logger, cache *redisx.Cache, c *kafkax.Consumer, dlq *kafkax.Producer, maxWorkers int) *Invalidator {
	return &Invalidator{
		log:        log,
		cache:      cache,
		c:          c,
		dlq:        dlq,
		maxWorkers: maxWorkers,
	}
}

func (i *Invalidator) Run(ctx context.Context) error {
	sem := make(chan struct{}, i.maxWorkers) // concurrency limit

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			m, err := i.c.Fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				i.log.Error("failed to read message", zap.Error(err))
				continue
			}

			sem <- struct{}{}
			go func(m kafka.Message) {
				defer func() { <-sem }()

				if err := i.handleMessage(ctx, m); err != nil {
					i.log.Error("failed to handle message", zap.Error(err))
					metrics.InvalidationFailures.Inc()
					_ = i.dlq.Publish(ctx, m.Key, m.Value)
					_ = i.c.Commit(ctx, m)
				} else {
					metrics.CacheInvalidations.Inc()
					_ = i.c.Commit(ctx, m)
				}
			}(m)
		}
	}
}

func (i *Invalidator) handleMessage(ctx context.Context, m kafka.Message) error {
	ev, err := kafkax.ParseChangeEvent(m.Value)
	if err != nil {
		return err
	}

	prefixes, ok := tablePrefixes[ev.Table]
	if !ok {
		prefixes = []string{"dashboard:"}
	}
	for _, p := range prefixes {
		if err := i.cache.InvalidatePrefix(ctx, p); err != nil {
			return err
		}
	}
	i.log.Info("cache invalidated",
		zap.String("table", ev.Table),
		zap.Strings("prefixes", prefixes),
	)
	return nil
}

package worker

import (
	"context"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"stockroom/internal/api/services"
	"stockroom/internal/domain"
	r "stockroom/internal/redis"
	"stockroom/internal/repository"
)

// OverdueWorker periodically flips deployed assets whose expected checkin
// date has passed to overdue. Status changes invalidate the stats cache the
// same way mutating handlers do; rdb may be nil.
type OverdueWorker struct {
	store           repository.Store
	checkoutService *services.CheckoutService
	rdb             *goredis.Client
	ticker          *time.Ticker
}

func NewOverdueWorker(store repository.Store, checkoutService *services.CheckoutService, interval time.Duration, rdb *goredis.Client) *OverdueWorker {
	return &OverdueWorker{
		store:           store,
		checkoutService: checkoutService,
		rdb:             rdb,
		ticker:          time.NewTicker(interval),
	}
}

func (w *OverdueWorker) StartWorker(ctx context.Context) {
	defer w.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OverdueWorker) sweep(ctx context.Context) {
	deployed, err := w.store.Assets().ListByStatus(ctx, domain.AssetStatusDeployed)
	if err != nil {
		log.Printf("[OverdueWorker] list deployed assets: %v", err)
		return
	}

	now := time.Now().UTC()
	marked := 0
	for _, asset := range deployed {
		if asset.ExpectedCheckinDate == nil || !asset.ExpectedCheckinDate.Before(now) {
			continue
		}
		if _, err := w.checkoutService.MarkOverdue(ctx, asset.ID); err != nil {
			log.Printf("[OverdueWorker] mark asset %d overdue: %v", asset.ID, err)
			continue
		}
		marked++
	}

	if marked > 0 {
		log.Printf("[OverdueWorker] marked %d assets overdue", marked)
		if w.rdb != nil {
			if err := r.StatsCache(w.rdb).Invalidate(ctx); err != nil {
				log.Printf("[OverdueWorker] invalidate stats cache: %v", err)
			}
		}
	}
}

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"stockroom/internal/api/ws"
	"stockroom/internal/domain"
	"stockroom/internal/metrics"
	"stockroom/internal/repository"
)

// ActivityService is the audit recorder. Record is called exactly once per
// committed state change; an append failure is surfaced to the caller, never
// swallowed, because the trail must reflect every committed mutation.
type ActivityService struct {
	store repository.Store
	hub   *ws.Hub
}

func NewActivityService(store repository.Store, hub *ws.Hub) *ActivityService {
	return &ActivityService{store: store, hub: hub}
}

func (s *ActivityService) Record(ctx context.Context, action domain.Action, itemType domain.ItemType, itemID int64, userID *int64, notes string) error {
	activity := &domain.Activity{
		Action:    action,
		ItemType:  itemType,
		ItemID:    itemID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Notes:     notes,
	}

	if err := s.store.Activities().Append(ctx, activity); err != nil {
		log.Printf("audit append failed for %s %s/%d: %v", action, itemType, itemID, err)
		return fmt.Errorf("append activity for %s %s/%d: %w", action, itemType, itemID, err)
	}

	metrics.ActivitiesRecorded.WithLabelValues(string(action), string(itemType)).Inc()

	if s.hub != nil {
		s.hub.Broadcast(ws.Message{Type: "activity", Data: activity})
	}
	return nil
}

func (s *ActivityService) List(ctx context.Context) ([]*domain.Activity, error) {
	return s.store.Activities().List(ctx)
}

func (s *ActivityService) ListByUser(ctx context.Context, userID int64) ([]*domain.Activity, error) {
	if _, err := s.store.Users().Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.Activities().ListByUser(ctx, userID)
}

func (s *ActivityService) ListByItem(ctx context.Context, itemType domain.ItemType, itemID int64) ([]*domain.Activity, error) {
	return s.store.Activities().ListByItem(ctx, itemType, itemID)
}

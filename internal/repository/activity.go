package repository

import (
	"context"

	"stockroom/internal/domain"
)

type pgActivities struct {
	q querier
}

func (r *pgActivities) List(ctx context.Context) ([]*domain.Activity, error) {
	query := `
		SELECT id, action, item_type, item_id, user_id, timestamp, notes
		FROM activities
		ORDER BY timestamp, id
	`

	activities := []*domain.Activity{}
	if err := r.q.SelectContext(ctx, &activities, query); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *pgActivities) ListByUser(ctx context.Context, userID int64) ([]*domain.Activity, error) {
	query := `
		SELECT id, action, item_type, item_id, user_id, timestamp, notes
		FROM activities
		WHERE user_id = $1
		ORDER BY timestamp, id
	`

	activities := []*domain.Activity{}
	if err := r.q.SelectContext(ctx, &activities, query, userID); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *pgActivities) ListByItem(ctx context.Context, itemType domain.ItemType, itemID int64) ([]*domain.Activity, error) {
	query := `
		SELECT id, action, item_type, item_id, user_id, timestamp, notes
		FROM activities
		WHERE item_type = $1 AND item_id = $2
		ORDER BY timestamp, id
	`

	activities := []*domain.Activity{}
	if err := r.q.SelectContext(ctx, &activities, query, itemType, itemID); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *pgActivities) Append(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (action, item_type, item_id, user_id, timestamp, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return r.q.QueryRowxContext(ctx, query,
		activity.Action, activity.ItemType, activity.ItemID, activity.UserID,
		activity.Timestamp, activity.Notes,
	).Scan(&activity.ID)
}

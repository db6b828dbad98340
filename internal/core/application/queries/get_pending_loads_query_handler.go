package queries

import (
	"context"
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingLoadsQueryHandler lists undelivered loads ordered by date and time of day.
type GetPendingLoadsQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingLoadsQueryHandler(db *gorm.DB) GetPendingLoadsQueryHandler {
	return GetPendingLoadsQueryHandler{db: db}
}

func (h GetPendingLoadsQueryHandler) Handle(ctx context.Context, query GetPendingLoadsQuery) ([]PendingLoad, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	loads := make([]PendingLoad, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.agu_cui,
			a.name,
			l.date,
			l.time_of_day,
			l.amount,
			l.is_manual,
			l.is_confirmed
		FROM scheduled_loads l
		JOIN agus a ON a.cui = l.agu_cui
		WHERE l.unload_timestamp IS NULL AND l.date >= ?
		ORDER BY l.date,
			CASE l.time_of_day WHEN 'MORNING' THEN 1 WHEN 'AFTERNOON' THEN 2 WHEN 'NIGHT' THEN 3 ELSE 4 END
	`, query.From()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pending PendingLoad
		var id uuid.UUID
		var cui, timeOfDay string
		var date time.Time

		err = rows.Scan(
			&id,
			&cui,
			&pending.AGUName,
			&date,
			&timeOfDay,
			&pending.Amount,
			&pending.IsManual,
			&pending.IsConfirmed,
		)
		if err != nil {
			return nil, err
		}

		if pending.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if pending.AGUCui, err = kernel.NewCUI(cui); err != nil {
			return nil, err
		}
		if pending.TimeOfDay, err = load.ParseTimeOfDay(timeOfDay); err != nil {
			return nil, err
		}
		pending.Date = load.Day(date)
		loads = append(loads, pending)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return loads, nil
}

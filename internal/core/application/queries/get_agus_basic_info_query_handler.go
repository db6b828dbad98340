package queries

import (
	"context"
	"database/sql"

	"agu/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetAGUsBasicInfoQueryHandler answers GetAGUsBasicInfoQuery with a single SQL statement.
// Favourites come first, then AGUs by name.
type GetAGUsBasicInfoQueryHandler struct {
	db *gorm.DB
}

func NewGetAGUsBasicInfoQueryHandler(db *gorm.DB) GetAGUsBasicInfoQueryHandler {
	return GetAGUsBasicInfoQueryHandler{db: db}
}

func (h GetAGUsBasicInfoQueryHandler) Handle(
	ctx context.Context,
	query GetAGUsBasicInfoQuery,
) ([]AGUBasicInfo, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	agus := make([]AGUBasicInfo, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.cui,
			a.name,
			d.name,
			a.is_favourite,
			a.is_active,
			a.location_name,
			a.location_latitude,
			a.location_longitude,
			a.critical_level,
			latest.level
		FROM agus a
		JOIN dnos d ON d.id = a.dno_id
		LEFT JOIN LATERAL (
			SELECT AVG(t.level)::double precision AS level
			FROM (
				SELECT DISTINCT ON (g.tank_number) g.level
				FROM gas_measures g
				WHERE g.agu_cui = a.cui
				ORDER BY g.tank_number, g.timestamp DESC
			) t
		) latest ON true
		ORDER BY a.is_favourite DESC, a.name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var info AGUBasicInfo
		var cui, locationName string
		var latitude, longitude float64
		var level sql.NullFloat64

		err = rows.Scan(
			&cui,
			&info.Name,
			&info.DNOName,
			&info.IsFavourite,
			&info.IsActive,
			&locationName,
			&latitude,
			&longitude,
			&info.CriticalLevel,
			&level,
		)
		if err != nil {
			return nil, err
		}

		if info.CUI, err = kernel.NewCUI(cui); err != nil {
			return nil, err
		}
		if info.Location, err = kernel.NewLocation(locationName, latitude, longitude); err != nil {
			return nil, err
		}
		info.Level, info.HasLevel = level.Float64, level.Valid
		agus = append(agus, info)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return agus, nil
}

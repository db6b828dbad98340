// Package queries contains read models served straight from the database.
// They skip the aggregates and the unit of work, so they never mutate state.
package queries

import (
	"errors"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/guard"
)

var (
	ErrGetAGUsBasicInfoQueryIsNotConstructed = errors.New(
		"GetAGUsBasicInfoQuery must be created via NewGetAGUsBasicInfoQuery constructor",
	)
)

// GetAGUsBasicInfoQuery lists every AGU with the data the overview screen needs.
//
// Example:
//
//	handler := NewGetAGUsBasicInfoQueryHandler(db)
//	agus, err := handler.Handle(ctx, NewGetAGUsBasicInfoQuery())
type GetAGUsBasicInfoQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAGUsBasicInfoQuery() GetAGUsBasicInfoQuery {
	return GetAGUsBasicInfoQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAGUsBasicInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetAGUsBasicInfoQueryIsNotConstructed)
}

// AGUBasicInfo is one row of the overview. Level is the mean of the newest
// reading of every tank and is only meaningful when HasLevel is true.
type AGUBasicInfo struct {
	CUI           kernel.CUI
	Name          string
	DNOName       string
	IsFavourite   bool
	IsActive      bool
	Location      kernel.Location
	CriticalLevel int
	Level         float64
	HasLevel      bool
}

// IsCritical reports whether the last known level is at or below the critical level.
func (i AGUBasicInfo) IsCritical() bool {
	return i.HasLevel && i.Level <= float64(i.CriticalLevel)
}

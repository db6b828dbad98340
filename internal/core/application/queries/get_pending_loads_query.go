package queries

import (
	"errors"
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"
	"agu/internal/pkg/errs"
	"agu/internal/pkg/guard"
)

var (
	ErrGetPendingLoadsQueryIsNotConstructed = errors.New(
		"GetPendingLoadsQuery must be created via NewGetPendingLoadsQuery constructor",
	)
)

// GetPendingLoadsQuery retrieves loads scheduled on or after a day that have no delivery yet.
type GetPendingLoadsQuery struct {
	from  time.Time
	guard guard.ConstructorGuard
}

// NewGetPendingLoadsQuery truncates from to its calendar day.
func NewGetPendingLoadsQuery(from time.Time) (GetPendingLoadsQuery, error) {
	if from.IsZero() {
		return GetPendingLoadsQuery{}, errs.NewValueIsRequiredError("from")
	}
	return GetPendingLoadsQuery{from: load.Day(from), guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingLoadsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingLoadsQueryIsNotConstructed)
}

func (q GetPendingLoadsQuery) From() time.Time {
	return q.from
}

// PendingLoad is a scheduled load joined with the name of its AGU.
type PendingLoad struct {
	ID          kernel.UUID
	AGUCui      kernel.CUI
	AGUName     string
	Date        time.Time
	TimeOfDay   load.TimeOfDay
	Amount      int
	IsManual    bool
	IsConfirmed bool
}

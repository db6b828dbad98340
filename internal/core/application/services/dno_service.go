package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"agu/internal/core/application/tx"
	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/validation"
	"agu/internal/core/ports"
	"agu/internal/pkg/either"
)

// DNOCreationError enumerates CreateDNO failures.
type DNOCreationError int

const (
	DNOCreationInvalidName DNOCreationError = iota + 1
	DNOCreationAlreadyExists
)

var dnoCreationKinds = []kind{
	{"InvalidName", CategoryInvalid},
	{"DNOAlreadyExists", CategoryConflict},
}

func (e DNOCreationError) String() string     { return lookup(dnoCreationKinds, int(e)).name }
func (e DNOCreationError) Category() Category { return lookup(dnoCreationKinds, int(e)).category }

// DNOLookupError enumerates GetDNOByID and GetDNOByName failures.
type DNOLookupError int

const (
	DNOLookupNotFound DNOLookupError = iota + 1
)

var dnoLookupKinds = []kind{
	{"DNONotFound", CategoryNotFound},
}

func (e DNOLookupError) String() string     { return lookup(dnoLookupKinds, int(e)).name }
func (e DNOLookupError) Category() Category { return lookup(dnoLookupKinds, int(e)).category }

// DNODeletionError enumerates DeleteDNO failures.
type DNODeletionError int

const (
	DNODeletionNotFound DNODeletionError = iota + 1
	DNODeletionInUse
)

var dnoDeletionKinds = []kind{
	{"DNONotFound", CategoryNotFound},
	{"DNOInUse", CategoryConflict},
}

func (e DNODeletionError) String() string     { return lookup(dnoDeletionKinds, int(e)).name }
func (e DNODeletionError) Category() Category { return lookup(dnoDeletionKinds, int(e)).category }

type (
	DNOCreationResult = either.Either[DNOCreationError, *company.DNO]
	DNOLookupResult   = either.Either[DNOLookupError, *company.DNO]
	DNODeletionResult = either.Either[DNODeletionError, struct{}]
)

// DNOService manages distribution network operators.
type DNOService struct {
	tx     *tx.Manager
	logger *slog.Logger
}

func NewDNOService(m *tx.Manager, logger *slog.Logger) *DNOService {
	return &DNOService{tx: m, logger: logger.With("component", "DNOService")}
}

// CreateDNO validates the name, rejects duplicates (case-insensitive) and stores the DNO.
func (s *DNOService) CreateDNO(ctx context.Context, name, region string) (DNOCreationResult, error) {
	left := either.Left[DNOCreationError, *company.DNO]

	if !validation.IsNameValid(name) {
		return left(DNOCreationInvalidName), nil
	}
	name = strings.TrimSpace(name)

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (DNOCreationResult, error) {
		repo := uow.DNORepository()

		exists, err := repo.ExistsByName(ctx, name)
		if err != nil {
			return DNOCreationResult{}, fmt.Errorf("check dno name: %w", err)
		}
		if exists {
			return left(DNOCreationAlreadyExists), nil
		}

		dno, err := company.NewDNO(kernel.NewUUID(), name, region)
		if err != nil {
			return left(DNOCreationInvalidName), nil
		}
		if err := repo.Add(ctx, dno); err != nil {
			return DNOCreationResult{}, fmt.Errorf("add dno: %w", err)
		}

		s.logger.InfoContext(ctx, "dno created", "id", dno.ID().String(), "name", dno.Name())
		return either.Right[DNOCreationError](dno), nil
	})
}

func (s *DNOService) GetDNOByID(ctx context.Context, id kernel.UUID) (DNOLookupResult, error) {
	return s.lookup(ctx, func(ctx context.Context, repo ports.DNORepository) (*company.DNO, error) {
		return repo.Get(ctx, id)
	})
}

func (s *DNOService) GetDNOByName(ctx context.Context, name string) (DNOLookupResult, error) {
	return s.lookup(ctx, func(ctx context.Context, repo ports.DNORepository) (*company.DNO, error) {
		return repo.GetByName(ctx, strings.TrimSpace(name))
	})
}

func (s *DNOService) lookup(
	ctx context.Context,
	get func(context.Context, ports.DNORepository) (*company.DNO, error),
) (DNOLookupResult, error) {
	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (DNOLookupResult, error) {
		dno, err := get(ctx, uow.DNORepository())
		if isNotFound(err) {
			return either.Left[DNOLookupError, *company.DNO](DNOLookupNotFound), nil
		}
		if err != nil {
			return DNOLookupResult{}, fmt.Errorf("get dno: %w", err)
		}
		return either.Right[DNOLookupError](dno), nil
	})
}

// GetAll returns every DNO ordered by name.
func (s *DNOService) GetAll(ctx context.Context) ([]*company.DNO, error) {
	return tx.Execute(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) ([]*company.DNO, error) {
		return uow.DNORepository().GetAll(ctx)
	})
}

// DeleteDNO removes a DNO that no AGU references.
func (s *DNOService) DeleteDNO(ctx context.Context, id kernel.UUID) (DNODeletionResult, error) {
	left := either.Left[DNODeletionError, struct{}]

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (DNODeletionResult, error) {
		inUse, err := uow.AGURepository().ExistsByDNO(ctx, id)
		if err != nil {
			return DNODeletionResult{}, fmt.Errorf("check dno usage: %w", err)
		}
		if inUse {
			return left(DNODeletionInUse), nil
		}

		deleted, err := uow.DNORepository().Delete(ctx, id)
		if err != nil {
			return DNODeletionResult{}, fmt.Errorf("delete dno: %w", err)
		}
		if !deleted {
			return left(DNODeletionNotFound), nil
		}
		return either.Right[DNODeletionError](struct{}{}), nil
	})
}

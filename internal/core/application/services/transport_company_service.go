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

// TransportCompanyCreationError enumerates CreateTransportCompany failures.
type TransportCompanyCreationError int

const (
	TransportCompanyCreationInvalidName TransportCompanyCreationError = iota + 1
	TransportCompanyCreationAlreadyExists
)

var transportCompanyCreationKinds = []kind{
	{"InvalidName", CategoryInvalid},
	{"TransportCompanyAlreadyExists", CategoryConflict},
}

func (e TransportCompanyCreationError) String() string {
	return lookup(transportCompanyCreationKinds, int(e)).name
}

func (e TransportCompanyCreationError) Category() Category {
	return lookup(transportCompanyCreationKinds, int(e)).category
}

// TransportCompanyDeletionError enumerates DeleteTransportCompany failures.
type TransportCompanyDeletionError int

const (
	TransportCompanyDeletionNotFound TransportCompanyDeletionError = iota + 1
)

var transportCompanyDeletionKinds = []kind{
	{"TransportCompanyNotFound", CategoryNotFound},
}

func (e TransportCompanyDeletionError) String() string {
	return lookup(transportCompanyDeletionKinds, int(e)).name
}

func (e TransportCompanyDeletionError) Category() Category {
	return lookup(transportCompanyDeletionKinds, int(e)).category
}

// AGUCompaniesError enumerates GetByAGU failures.
type AGUCompaniesError int

const (
	AGUCompaniesAGUNotFound AGUCompaniesError = iota + 1
)

var aguCompaniesKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
}

func (e AGUCompaniesError) String() string     { return lookup(aguCompaniesKinds, int(e)).name }
func (e AGUCompaniesError) Category() Category { return lookup(aguCompaniesKinds, int(e)).category }

// AssociationError enumerates AddToAGU and RemoveFromAGU failures.
type AssociationError int

const (
	AssociationAGUNotFound AssociationError = iota + 1
	AssociationTransportCompanyNotFound
)

var associationKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
	{"TransportCompanyNotFound", CategoryNotFound},
}

func (e AssociationError) String() string     { return lookup(associationKinds, int(e)).name }
func (e AssociationError) Category() Category { return lookup(associationKinds, int(e)).category }

type (
	TransportCompanyCreationResult = either.Either[TransportCompanyCreationError, *company.TransportCompany]
	TransportCompanyDeletionResult = either.Either[TransportCompanyDeletionError, struct{}]
	AGUCompaniesResult             = either.Either[AGUCompaniesError, []*company.TransportCompany]
	AssociationResult              = either.Either[AssociationError, struct{}]
)

// TransportCompanyService manages transport companies and their AGU associations.
type TransportCompanyService struct {
	tx     *tx.Manager
	logger *slog.Logger
}

func NewTransportCompanyService(m *tx.Manager, logger *slog.Logger) *TransportCompanyService {
	return &TransportCompanyService{tx: m, logger: logger.With("component", "TransportCompanyService")}
}

func (s *TransportCompanyService) CreateTransportCompany(
	ctx context.Context,
	name string,
) (TransportCompanyCreationResult, error) {
	left := either.Left[TransportCompanyCreationError, *company.TransportCompany]

	if !validation.IsNameValid(name) {
		return left(TransportCompanyCreationInvalidName), nil
	}
	name = strings.TrimSpace(name)

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (TransportCompanyCreationResult, error) {
		repo := uow.TransportCompanyRepository()

		exists, err := repo.ExistsByName(ctx, name)
		if err != nil {
			return TransportCompanyCreationResult{}, fmt.Errorf("check transport company name: %w", err)
		}
		if exists {
			return left(TransportCompanyCreationAlreadyExists), nil
		}

		tc, err := company.NewTransportCompany(kernel.NewUUID(), name)
		if err != nil {
			return left(TransportCompanyCreationInvalidName), nil
		}
		if err := repo.Add(ctx, tc); err != nil {
			return TransportCompanyCreationResult{}, fmt.Errorf("add transport company: %w", err)
		}

		s.logger.InfoContext(ctx, "transport company created", "id", tc.ID().String(), "name", tc.Name())
		return either.Right[TransportCompanyCreationError](tc), nil
	})
}

func (s *TransportCompanyService) GetAll(ctx context.Context) ([]*company.TransportCompany, error) {
	return tx.Execute(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) ([]*company.TransportCompany, error) {
		return uow.TransportCompanyRepository().GetAll(ctx)
	})
}

// GetByAGU lists the companies delivering to the AGU.
func (s *TransportCompanyService) GetByAGU(ctx context.Context, rawCUI string) (AGUCompaniesResult, error) {
	left := either.Left[AGUCompaniesError, []*company.TransportCompany]

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(AGUCompaniesAGUNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (AGUCompaniesResult, error) {
		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return AGUCompaniesResult{}, fmt.Errorf("check agu: %w", err)
		}
		if !exists {
			return left(AGUCompaniesAGUNotFound), nil
		}

		companies, err := uow.TransportCompanyRepository().GetByAGU(ctx, cui)
		if err != nil {
			return AGUCompaniesResult{}, fmt.Errorf("get transport companies: %w", err)
		}
		return either.Right[AGUCompaniesError](companies), nil
	})
}

func (s *TransportCompanyService) DeleteTransportCompany(
	ctx context.Context,
	id kernel.UUID,
) (TransportCompanyDeletionResult, error) {
	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (TransportCompanyDeletionResult, error) {
		deleted, err := uow.TransportCompanyRepository().Delete(ctx, id)
		if err != nil {
			return TransportCompanyDeletionResult{}, fmt.Errorf("delete transport company: %w", err)
		}
		if !deleted {
			return either.Left[TransportCompanyDeletionError, struct{}](TransportCompanyDeletionNotFound), nil
		}
		return either.Right[TransportCompanyDeletionError](struct{}{}), nil
	})
}

// AddToAGU associates the company with the AGU. Associating twice is not an error.
func (s *TransportCompanyService) AddToAGU(ctx context.Context, rawCUI string, id kernel.UUID) (AssociationResult, error) {
	return s.associate(ctx, rawCUI, id, func(ctx context.Context, repo ports.TransportCompanyRepository, cui kernel.CUI) error {
		return repo.AddToAGU(ctx, cui, id)
	})
}

// RemoveFromAGU drops the association. Removing a missing association is not an error.
func (s *TransportCompanyService) RemoveFromAGU(ctx context.Context, rawCUI string, id kernel.UUID) (AssociationResult, error) {
	return s.associate(ctx, rawCUI, id, func(ctx context.Context, repo ports.TransportCompanyRepository, cui kernel.CUI) error {
		_, err := repo.RemoveFromAGU(ctx, cui, id)
		return err
	})
}

func (s *TransportCompanyService) associate(
	ctx context.Context,
	rawCUI string,
	id kernel.UUID,
	apply func(context.Context, ports.TransportCompanyRepository, kernel.CUI) error,
) (AssociationResult, error) {
	left := either.Left[AssociationError, struct{}]

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(AssociationAGUNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (AssociationResult, error) {
		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return AssociationResult{}, fmt.Errorf("check agu: %w", err)
		}
		if !exists {
			return left(AssociationAGUNotFound), nil
		}

		repo := uow.TransportCompanyRepository()
		if _, err := repo.Get(ctx, id); err != nil {
			if isNotFound(err) {
				return left(AssociationTransportCompanyNotFound), nil
			}
			return AssociationResult{}, fmt.Errorf("get transport company: %w", err)
		}

		if err := apply(ctx, repo, cui); err != nil {
			return AssociationResult{}, fmt.Errorf("update association: %w", err)
		}
		return either.Right[AssociationError](struct{}{}), nil
	})
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"agu/internal/core/application/tx"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/validation"
	"agu/internal/core/ports"
	"agu/internal/pkg/either"
)

// ContactCreationError enumerates AddContact failures.
type ContactCreationError int

const (
	ContactCreationAGUNotFound ContactCreationError = iota + 1
	ContactCreationInvalidName
	ContactCreationInvalidPhone
	ContactCreationInvalidType
	ContactCreationAlreadyExists
)

var contactCreationKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
	{"InvalidName", CategoryInvalid},
	{"InvalidPhone", CategoryInvalid},
	{"InvalidContactType", CategoryInvalid},
	{"ContactAlreadyExists", CategoryConflict},
}

func (e ContactCreationError) String() string     { return lookup(contactCreationKinds, int(e)).name }
func (e ContactCreationError) Category() Category { return lookup(contactCreationKinds, int(e)).category }

// ContactDeletionError enumerates DeleteContact failures.
type ContactDeletionError int

const (
	ContactDeletionAGUNotFound ContactDeletionError = iota + 1
	ContactDeletionNotFound
)

var contactDeletionKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
	{"ContactNotFound", CategoryNotFound},
}

func (e ContactDeletionError) String() string     { return lookup(contactDeletionKinds, int(e)).name }
func (e ContactDeletionError) Category() Category { return lookup(contactDeletionKinds, int(e)).category }

type (
	ContactCreationResult = either.Either[ContactCreationError, *agu.Contact]
	ContactDeletionResult = either.Either[ContactDeletionError, struct{}]
	ContactsResult        = either.Either[AGULookupError, []*agu.Contact]
)

// ContactService manages the contacts of an AGU.
type ContactService struct {
	tx     *tx.Manager
	logger *slog.Logger
}

func NewContactService(m *tx.Manager, logger *slog.Logger) *ContactService {
	return &ContactService{tx: m, logger: logger.With("component", "ContactService")}
}

// AddContact checks name, phone and type, then the AGU, then (phone, type) uniqueness.
func (s *ContactService) AddContact(ctx context.Context, rawCUI string, c ContactCreation) (ContactCreationResult, error) {
	left := either.Left[ContactCreationError, *agu.Contact]

	if !validation.IsNameValid(c.Name) {
		return left(ContactCreationInvalidName), nil
	}
	if !validation.IsPhoneValid(c.Phone) {
		return left(ContactCreationInvalidPhone), nil
	}
	contactType, err := agu.ParseContactType(c.Type)
	if err != nil {
		return left(ContactCreationInvalidType), nil
	}
	contact, err := agu.NewContact(kernel.NewUUID(), strings.TrimSpace(c.Name), c.Phone, contactType)
	if err != nil {
		return left(ContactCreationInvalidName), nil
	}

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(ContactCreationAGUNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (ContactCreationResult, error) {
		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return ContactCreationResult{}, fmt.Errorf("check agu: %w", err)
		}
		if !exists {
			return left(ContactCreationAGUNotFound), nil
		}

		repo := uow.ContactRepository()
		duplicated, err := repo.Exists(ctx, cui, c.Phone, contactType)
		if err != nil {
			return ContactCreationResult{}, fmt.Errorf("check contact: %w", err)
		}
		if duplicated {
			return left(ContactCreationAlreadyExists), nil
		}
		if err := repo.Add(ctx, cui, contact); err != nil {
			return ContactCreationResult{}, fmt.Errorf("add contact: %w", err)
		}
		return either.Right[ContactCreationError](contact), nil
	})
}

func (s *ContactService) DeleteContact(ctx context.Context, rawCUI string, id kernel.UUID) (ContactDeletionResult, error) {
	left := either.Left[ContactDeletionError, struct{}]

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(ContactDeletionAGUNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (ContactDeletionResult, error) {
		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return ContactDeletionResult{}, fmt.Errorf("check agu: %w", err)
		}
		if !exists {
			return left(ContactDeletionAGUNotFound), nil
		}

		deleted, err := uow.ContactRepository().Delete(ctx, cui, id)
		if err != nil {
			return ContactDeletionResult{}, fmt.Errorf("delete contact: %w", err)
		}
		if !deleted {
			return left(ContactDeletionNotFound), nil
		}
		return either.Right[ContactDeletionError](struct{}{}), nil
	})
}

func (s *ContactService) GetContacts(ctx context.Context, rawCUI string) (ContactsResult, error) {
	left := either.Left[AGULookupError, []*agu.Contact]

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(AGULookupNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (ContactsResult, error) {
		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return ContactsResult{}, fmt.Errorf("check agu: %w", err)
		}
		if !exists {
			return left(AGULookupNotFound), nil
		}

		contacts, err := uow.ContactRepository().GetByAGU(ctx, cui)
		if err != nil {
			return ContactsResult{}, fmt.Errorf("get contacts: %w", err)
		}
		return either.Right[AGULookupError](contacts), nil
	})
}

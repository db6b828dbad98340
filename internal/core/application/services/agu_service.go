package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"agu/internal/core/application/queries"
	"agu/internal/core/application/tx"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/measure"
	"agu/internal/core/domain/validation"
	"agu/internal/core/ports"
	"agu/internal/pkg/either"

	"github.com/cenkalti/backoff/v4"
)

// DefaultProviderFrequency is used for providers registered without a frequency.
const DefaultProviderFrequency = time.Hour

// AGUCreationError enumerates CreateAGU failures, in the order they are checked.
type AGUCreationError int

const (
	AGUCreationInvalidCUI AGUCreationError = iota + 1
	AGUCreationInvalidEIC
	AGUCreationInvalidName
	AGUCreationInvalidLevels
	AGUCreationInvalidLoadVolume
	AGUCreationInvalidCorrectionFactor
	AGUCreationInvalidCoordinates
	AGUCreationDNONotFound
	AGUCreationAlreadyExists
	AGUCreationInvalidTank
	AGUCreationDuplicateTankNumber
	AGUCreationInvalidContact
	AGUCreationDuplicateContact
	AGUCreationInvalidProvider
	AGUCreationProviderRegistrationFailed
)

var aguCreationKinds = []kind{
	{"InvalidCUI", CategoryInvalid},
	{"InvalidEIC", CategoryInvalid},
	{"InvalidName", CategoryInvalid},
	{"InvalidLevels", CategoryInvalid},
	{"InvalidLoadVolume", CategoryInvalid},
	{"InvalidCorrectionFactor", CategoryInvalid},
	{"InvalidCoordinates", CategoryInvalid},
	{"DNONotFound", CategoryNotFound},
	{"AGUAlreadyExists", CategoryConflict},
	{"InvalidTank", CategoryInvalid},
	{"DuplicateTankNumber", CategoryConflict},
	{"InvalidContact", CategoryInvalid},
	{"DuplicateContact", CategoryConflict},
	{"InvalidProvider", CategoryInvalid},
	{"ProviderRegistrationFailed", CategoryUnavailable},
}

func (e AGUCreationError) String() string     { return lookup(aguCreationKinds, int(e)).name }
func (e AGUCreationError) Category() Category { return lookup(aguCreationKinds, int(e)).category }

// AGULookupError enumerates failures of operations that only need the AGU to exist.
type AGULookupError int

const (
	AGULookupNotFound AGULookupError = iota + 1
)

var aguLookupKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
}

func (e AGULookupError) String() string     { return lookup(aguLookupKinds, int(e)).name }
func (e AGULookupError) Category() Category { return lookup(aguLookupKinds, int(e)).category }

// AGUUpdateError enumerates failures of the AGU update operations.
type AGUUpdateError int

const (
	AGUUpdateNotFound AGUUpdateError = iota + 1
	AGUUpdateInvalidLevels
)

var aguUpdateKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
	{"InvalidLevels", CategoryInvalid},
}

func (e AGUUpdateError) String() string     { return lookup(aguUpdateKinds, int(e)).name }
func (e AGUUpdateError) Category() Category { return lookup(aguUpdateKinds, int(e)).category }

// MeasuresError enumerates failures of the measure history operations.
type MeasuresError int

const (
	MeasuresAGUNotFound MeasuresError = iota + 1
	MeasuresInvalidDays
)

var measuresKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
	{"InvalidDays", CategoryInvalid},
}

func (e MeasuresError) String() string     { return lookup(measuresKinds, int(e)).name }
func (e MeasuresError) Category() Category { return lookup(measuresKinds, int(e)).category }

// AGUDetails is the AGU aggregate with the entities it references.
type AGUDetails struct {
	AGU                *agu.AGU
	DNO                *company.DNO
	Providers          []*measure.Provider
	TransportCompanies []*company.TransportCompany
}

type (
	AGUCreationResult         = either.Either[AGUCreationError, *agu.AGU]
	AGUDetailsResult          = either.Either[AGULookupError, AGUDetails]
	AGUUpdateResult           = either.Either[AGUUpdateError, struct{}]
	AGUDeletionResult         = either.Either[AGULookupError, struct{}]
	GasMeasuresResult         = either.Either[MeasuresError, []measure.GasMeasure]
	TemperatureMeasuresResult = either.Either[MeasuresError, []measure.TemperatureMeasure]
	LatestLevelsResult        = either.Either[AGULookupError, []measure.GasMeasure]
)

// BasicInfoReader serves the AGU list read model.
type BasicInfoReader interface {
	Handle(ctx context.Context, query queries.GetAGUsBasicInfoQuery) ([]queries.AGUBasicInfo, error)
}

// AGUService manages AGUs and the providers feeding them.
type AGUService struct {
	tx               *tx.Manager
	scheduler        ports.ProviderScheduler
	basicInfo        BasicInfoReader
	clock            Clock
	backOff          func() backoff.BackOff
	defaultFrequency time.Duration
	logger           *slog.Logger
}

// AGUServiceOption customizes an AGUService.
type AGUServiceOption func(*AGUService)

// WithClock replaces the wall clock.
func WithClock(clock Clock) AGUServiceOption {
	return func(s *AGUService) { s.clock = clock }
}

// WithRegistrationBackOff replaces the retry policy used when registering providers.
func WithRegistrationBackOff(newBackOff func() backoff.BackOff) AGUServiceOption {
	return func(s *AGUService) { s.backOff = newBackOff }
}

// WithDefaultFrequency sets the fetch frequency of providers registered without one.
func WithDefaultFrequency(d time.Duration) AGUServiceOption {
	return func(s *AGUService) {
		if d > 0 {
			s.defaultFrequency = d
		}
	}
}

func NewAGUService(
	m *tx.Manager,
	scheduler ports.ProviderScheduler,
	basicInfo BasicInfoReader,
	logger *slog.Logger,
	opts ...AGUServiceOption,
) *AGUService {
	s := &AGUService{
		tx:               m,
		scheduler:        scheduler,
		basicInfo:        basicInfo,
		clock:            SystemClock,
		backOff:          defaultRegistrationBackOff,
		defaultFrequency: DefaultProviderFrequency,
		logger:           logger.With("component", "AGUService"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultRegistrationBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 10 * time.Second
	return backoff.WithMaxRetries(b, 4)
}

// CreateAGU stores the AGU with its tanks, contacts and providers in one
// transaction, then registers every provider with the scheduler. Any failure
// leaves nothing stored and nothing registered.
func (s *AGUService) CreateAGU(ctx context.Context, c AGUCreation) (AGUCreationResult, error) {
	left := either.Left[AGUCreationError, *agu.AGU]

	a, failure := s.buildAGU(c)
	if failure != 0 {
		return left(failure), nil
	}
	cui := a.CUI()

	var registered []*measure.Provider
	res, err := tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (AGUCreationResult, error) {
		if _, err := uow.DNORepository().Get(ctx, c.DNOID); err != nil {
			if isNotFound(err) {
				return left(AGUCreationDNONotFound), nil
			}
			return AGUCreationResult{}, fmt.Errorf("get dno: %w", err)
		}

		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return AGUCreationResult{}, fmt.Errorf("check agu: %w", err)
		}
		if exists {
			return left(AGUCreationAlreadyExists), nil
		}

		if err := uow.AGURepository().Add(ctx, a); err != nil {
			return AGUCreationResult{}, fmt.Errorf("add agu: %w", err)
		}

		for _, tc := range c.Tanks {
			tank, err := newTank(tc.Number, tc.MinLevel, tc.MaxLevel, tc.CriticalLevel,
				tc.LoadVolume, tc.Capacity, tc.CorrectionFactor)
			if err != nil {
				return left(AGUCreationInvalidTank), nil
			}
			if err := a.AddTank(tank); err != nil {
				return left(AGUCreationDuplicateTankNumber), nil
			}
			if err := uow.TankRepository().Add(ctx, cui, tank); err != nil {
				return AGUCreationResult{}, fmt.Errorf("add tank %d: %w", tank.Number(), err)
			}
		}

		for _, cc := range c.Contacts {
			contact, err := newContact(cc)
			if err != nil {
				return left(AGUCreationInvalidContact), nil
			}
			if err := a.AddContact(contact); err != nil {
				return left(AGUCreationDuplicateContact), nil
			}
			if err := uow.ContactRepository().Add(ctx, cui, contact); err != nil {
				return AGUCreationResult{}, fmt.Errorf("add contact: %w", err)
			}
		}

		providers := make([]*measure.Provider, 0, len(c.Providers))
		for _, pc := range c.Providers {
			provider, err := s.newProvider(cui, pc)
			if err != nil {
				return left(AGUCreationInvalidProvider), nil
			}
			if err := uow.ProviderRepository().Add(ctx, provider); err != nil {
				return AGUCreationResult{}, fmt.Errorf("add provider: %w", err)
			}
			providers = append(providers, provider)
		}

		for _, provider := range providers {
			if err := s.register(ctx, provider); err != nil {
				s.logger.ErrorContext(ctx, "provider registration failed",
					"cui", cui.String(), "provider", provider.ID().String(), "error", err)
				s.unregister(registered)
				registered = nil
				return left(AGUCreationProviderRegistrationFailed), nil
			}
			registered = append(registered, provider)
		}

		return either.Right[AGUCreationError](a), nil
	})
	if err != nil {
		s.unregister(registered)
		return AGUCreationResult{}, err
	}

	if res.IsRight() {
		s.logger.InfoContext(ctx, "agu created", "cui", cui.String(),
			"tanks", len(c.Tanks), "contacts", len(c.Contacts), "providers", len(registered))
	}
	return res, nil
}

// buildAGU runs the pure validations of CreateAGU in their documented order.
func (s *AGUService) buildAGU(c AGUCreation) (*agu.AGU, AGUCreationError) {
	if !validation.IsCUIValid(c.CUI) {
		return nil, AGUCreationInvalidCUI
	}
	if !validation.IsEICValid(c.EIC) {
		return nil, AGUCreationInvalidEIC
	}
	if !validation.IsNameValid(c.Name) {
		return nil, AGUCreationInvalidName
	}
	levels, err := kernel.NewGasLevels(c.MinLevel, c.MaxLevel, c.CriticalLevel)
	if err != nil {
		return nil, AGUCreationInvalidLevels
	}
	if !validation.IsPercentageValid(c.LoadVolume) {
		return nil, AGUCreationInvalidLoadVolume
	}
	if c.CorrectionFactor < 0 {
		return nil, AGUCreationInvalidCorrectionFactor
	}
	if !validation.AreCoordinatesValid(c.Latitude, c.Longitude) {
		return nil, AGUCreationInvalidCoordinates
	}

	locationName := c.LocationName
	if strings.TrimSpace(locationName) == "" {
		locationName = c.Name
	}
	location, err := kernel.NewLocation(locationName, c.Latitude, c.Longitude)
	if err != nil {
		return nil, AGUCreationInvalidCoordinates
	}
	if c.DNOID.Validate() != nil {
		return nil, AGUCreationDNONotFound
	}

	a, err := agu.NewAGU(kernel.MustCUI(c.CUI), c.EIC, c.Name, levels, c.LoadVolume,
		c.CorrectionFactor, location, c.DNOID)
	if err != nil {
		return nil, AGUCreationInvalidName
	}
	a.SetFavourite(c.IsFavourite)
	a.SetNotes(c.Notes)
	a.SetImage(c.Image)
	return a, 0
}

func (s *AGUService) newProvider(cui kernel.CUI, pc ProviderCreation) (*measure.Provider, error) {
	providerType, err := measure.ParseProviderType(pc.Type)
	if err != nil {
		return nil, err
	}

	frequency := s.defaultFrequency
	if strings.TrimSpace(pc.Frequency) != "" {
		if frequency, err = validation.ParseFrequency(pc.Frequency); err != nil {
			return nil, err
		}
	}

	return measure.NewProvider(kernel.NewUUID(), providerType, cui, pc.URL, frequency)
}

func (s *AGUService) register(ctx context.Context, provider *measure.Provider) error {
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := s.scheduler.Register(ctx, provider)
		if err != nil {
			s.logger.WarnContext(ctx, "provider registration attempt failed",
				"provider", provider.ID().String(), "attempt", attempt, "error", err)
		}
		return err
	}, backoff.WithContext(s.backOff(), ctx))
}

func (s *AGUService) unregister(providers []*measure.Provider) {
	for _, p := range providers {
		s.scheduler.Unregister(p.ID())
	}
}

// GetAGUByCUI returns the AGU with its DNO, providers and transport companies.
func (s *AGUService) GetAGUByCUI(ctx context.Context, rawCUI string) (AGUDetailsResult, error) {
	left := either.Left[AGULookupError, AGUDetails]

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(AGULookupNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (AGUDetailsResult, error) {
		a, err := uow.AGURepository().Get(ctx, cui)
		if isNotFound(err) {
			return left(AGULookupNotFound), nil
		}
		if err != nil {
			return AGUDetailsResult{}, fmt.Errorf("get agu: %w", err)
		}

		details := AGUDetails{AGU: a}
		if details.DNO, err = uow.DNORepository().Get(ctx, a.DNOID()); err != nil && !isNotFound(err) {
			return AGUDetailsResult{}, fmt.Errorf("get dno: %w", err)
		}
		if details.Providers, err = uow.ProviderRepository().GetByAGU(ctx, cui); err != nil {
			return AGUDetailsResult{}, fmt.Errorf("get providers: %w", err)
		}
		if details.TransportCompanies, err = uow.TransportCompanyRepository().GetByAGU(ctx, cui); err != nil {
			return AGUDetailsResult{}, fmt.Errorf("get transport companies: %w", err)
		}

		return either.Right[AGULookupError](details), nil
	})
}

// GetAGUsBasicInfo returns the list view of every AGU.
func (s *AGUService) GetAGUsBasicInfo(ctx context.Context) ([]queries.AGUBasicInfo, error) {
	return s.basicInfo.Handle(ctx, queries.NewGetAGUsBasicInfoQuery())
}

func (s *AGUService) UpdateFavouriteState(ctx context.Context, rawCUI string, isFavourite bool) (AGUUpdateResult, error) {
	return s.update(ctx, rawCUI, func(a *agu.AGU) AGUUpdateError {
		a.SetFavourite(isFavourite)
		return 0
	})
}

func (s *AGUService) UpdateActiveState(ctx context.Context, rawCUI string, isActive bool) (AGUUpdateResult, error) {
	return s.update(ctx, rawCUI, func(a *agu.AGU) AGUUpdateError {
		a.SetActive(isActive)
		return 0
	})
}

func (s *AGUService) UpdateNotes(ctx context.Context, rawCUI, notes string) (AGUUpdateResult, error) {
	return s.update(ctx, rawCUI, func(a *agu.AGU) AGUUpdateError {
		a.SetNotes(notes)
		return 0
	})
}

// UpdateGasLevels replaces the AGU levels. The AGU must exist before the levels are checked.
func (s *AGUService) UpdateGasLevels(
	ctx context.Context,
	rawCUI string,
	minLevel, maxLevel, critical int,
) (AGUUpdateResult, error) {
	return s.update(ctx, rawCUI, func(a *agu.AGU) AGUUpdateError {
		levels, err := kernel.NewGasLevels(minLevel, maxLevel, critical)
		if err != nil {
			return AGUUpdateInvalidLevels
		}
		if err := a.UpdateLevels(levels); err != nil {
			return AGUUpdateInvalidLevels
		}
		return 0
	})
}

func (s *AGUService) update(ctx context.Context, rawCUI string, mutate func(*agu.AGU) AGUUpdateError) (AGUUpdateResult, error) {
	left := either.Left[AGUUpdateError, struct{}]

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(AGUUpdateNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (AGUUpdateResult, error) {
		repo := uow.AGURepository()

		a, err := repo.Get(ctx, cui)
		if isNotFound(err) {
			return left(AGUUpdateNotFound), nil
		}
		if err != nil {
			return AGUUpdateResult{}, fmt.Errorf("get agu: %w", err)
		}

		if failure := mutate(a); failure != 0 {
			return left(failure), nil
		}
		if err := repo.Update(ctx, a); err != nil {
			return AGUUpdateResult{}, fmt.Errorf("update agu: %w", err)
		}
		return either.Right[AGUUpdateError](struct{}{}), nil
	})
}

// DeleteAGU removes the AGU with everything it owns and stops fetching its providers.
func (s *AGUService) DeleteAGU(ctx context.Context, rawCUI string) (AGUDeletionResult, error) {
	left := either.Left[AGULookupError, struct{}]

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(AGULookupNotFound), nil
	}

	var providers []*measure.Provider
	res, err := tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (AGUDeletionResult, error) {
		var err error
		if providers, err = uow.ProviderRepository().GetByAGU(ctx, cui); err != nil {
			return AGUDeletionResult{}, fmt.Errorf("get providers: %w", err)
		}

		deleted, err := uow.AGURepository().Delete(ctx, cui)
		if err != nil {
			return AGUDeletionResult{}, fmt.Errorf("delete agu: %w", err)
		}
		if !deleted {
			return left(AGULookupNotFound), nil
		}
		return either.Right[AGULookupError](struct{}{}), nil
	})
	if err != nil || res.IsLeft() {
		return res, err
	}

	s.unregister(providers)
	s.logger.InfoContext(ctx, "agu deleted", "cui", cui.String(), "providers", len(providers))
	return res, nil
}

// GetGasMeasures returns the gas measures of the last days days, oldest first.
func (s *AGUService) GetGasMeasures(ctx context.Context, rawCUI string, days int) (GasMeasuresResult, error) {
	return measuresSince(ctx, s, rawCUI, days,
		func(ctx context.Context, uow ports.UnitOfWork, cui kernel.CUI, since time.Time) ([]measure.GasMeasure, error) {
			return uow.GasRepository().GetByAGU(ctx, cui, since)
		})
}

// GetTemperatureMeasures returns temperature measures whose day lies within
// the last days days or later, forecasts included.
func (s *AGUService) GetTemperatureMeasures(ctx context.Context, rawCUI string, days int) (TemperatureMeasuresResult, error) {
	return measuresSince(ctx, s, rawCUI, days,
		func(ctx context.Context, uow ports.UnitOfWork, cui kernel.CUI, since time.Time) ([]measure.TemperatureMeasure, error) {
			return uow.TemperatureRepository().GetByAGU(ctx, cui, since)
		})
}

func measuresSince[M any](
	ctx context.Context,
	s *AGUService,
	rawCUI string,
	days int,
	get func(context.Context, ports.UnitOfWork, kernel.CUI, time.Time) ([]M, error),
) (either.Either[MeasuresError, []M], error) {
	left := either.Left[MeasuresError, []M]

	if days <= 0 {
		return left(MeasuresInvalidDays), nil
	}
	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(MeasuresAGUNotFound), nil
	}
	since := s.clock().AddDate(0, 0, -days)

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (either.Either[MeasuresError, []M], error) {
		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return either.Either[MeasuresError, []M]{}, fmt.Errorf("check agu: %w", err)
		}
		if !exists {
			return left(MeasuresAGUNotFound), nil
		}

		measures, err := get(ctx, uow, cui, since)
		if err != nil {
			return either.Either[MeasuresError, []M]{}, fmt.Errorf("get measures: %w", err)
		}
		return either.Right[MeasuresError](measures), nil
	})
}

// GetLatestLevels returns the newest gas measure of every tank.
func (s *AGUService) GetLatestLevels(ctx context.Context, rawCUI string) (LatestLevelsResult, error) {
	left := either.Left[AGULookupError, []measure.GasMeasure]

	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(AGULookupNotFound), nil
	}

	return tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (LatestLevelsResult, error) {
		exists, err := uow.AGURepository().Exists(ctx, cui)
		if err != nil {
			return LatestLevelsResult{}, fmt.Errorf("check agu: %w", err)
		}
		if !exists {
			return left(AGULookupNotFound), nil
		}

		latest, err := uow.GasRepository().GetLatest(ctx, cui)
		if err != nil {
			return LatestLevelsResult{}, fmt.Errorf("get latest levels: %w", err)
		}
		return either.Right[AGULookupError](latest), nil
	})
}

func newTank(number, minLevel, maxLevel, critical, loadVolume, capacity int, correction float64) (*agu.Tank, error) {
	levels, err := kernel.NewGasLevels(minLevel, maxLevel, critical)
	if err != nil {
		return nil, err
	}
	return agu.NewTank(number, levels, loadVolume, capacity, correction)
}

func newContact(cc ContactCreation) (*agu.Contact, error) {
	contactType, err := agu.ParseContactType(cc.Type)
	if err != nil {
		return nil, err
	}
	return agu.NewContact(kernel.NewUUID(), strings.TrimSpace(cc.Name), cc.Phone, contactType)
}

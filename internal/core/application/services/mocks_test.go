package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"agu/internal/core/application/tx"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/alert"
	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"
	"agu/internal/core/domain/model/measure"
	"agu/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testCUI = "PT1601000000123456AB"
	testEIC = "PT01-AGU-0000012"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockUoW records transaction calls and hands out the repository mocks.
type MockUoW struct {
	mock.Mock
	ports.UnitOfWork

	dnos       *MockDNORepository
	agus       *MockAGURepository
	tanks      *MockTankRepository
	contacts   *MockContactRepository
	providers  *MockProviderRepository
	gas        *MockGasRepository
	temps      *MockTemperatureRepository
	loads      *MockLoadRepository
	alerts     *MockAlertRepository
	transports *MockTransportCompanyRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		dnos:       new(MockDNORepository),
		agus:       new(MockAGURepository),
		tanks:      new(MockTankRepository),
		contacts:   new(MockContactRepository),
		providers:  new(MockProviderRepository),
		gas:        new(MockGasRepository),
		temps:      new(MockTemperatureRepository),
		loads:      new(MockLoadRepository),
		alerts:     new(MockAlertRepository),
		transports: new(MockTransportCompanyRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) DNORepository() ports.DNORepository                   { return m.dnos }
func (m *MockUoW) AGURepository() ports.AGURepository                   { return m.agus }
func (m *MockUoW) TankRepository() ports.TankRepository                 { return m.tanks }
func (m *MockUoW) ContactRepository() ports.ContactRepository           { return m.contacts }
func (m *MockUoW) ProviderRepository() ports.ProviderRepository         { return m.providers }
func (m *MockUoW) GasRepository() ports.GasRepository                   { return m.gas }
func (m *MockUoW) TemperatureRepository() ports.TemperatureRepository   { return m.temps }
func (m *MockUoW) LoadRepository() ports.LoadRepository                 { return m.loads }
func (m *MockUoW) AlertRepository() ports.AlertRepository               { return m.alerts }
func (m *MockUoW) TransportCompanyRepository() ports.TransportCompanyRepository {
	return m.transports
}

// expectCommitted expects one transaction ending with Commit.
func (m *MockUoW) expectCommitted() {
	mock.InOrder(
		m.On("Begin", mock.Anything).Return(nil).Once(),
		m.On("Commit", mock.Anything).Return(nil).Once(),
		m.On("Rollback", mock.Anything).Return(nil).Once(),
	)
}

// expectRolledBack expects one transaction that never commits.
func (m *MockUoW) expectRolledBack() {
	mock.InOrder(
		m.On("Begin", mock.Anything).Return(nil).Once(),
		m.On("Rollback", mock.Anything).Return(nil).Once(),
	)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() ports.UnitOfWork {
	return m.Called().Get(0).(ports.UnitOfWork)
}

func newManager(t *testing.T, uow *MockUoW) *tx.Manager {
	t.Helper()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)
	m, err := tx.NewManager(factory)
	require.NoError(t, err)
	return m
}

type MockDNORepository struct {
	mock.Mock
	ports.DNORepository
}

func (m *MockDNORepository) Add(ctx context.Context, dno *company.DNO) error {
	return m.Called(ctx, dno).Error(0)
}

func (m *MockDNORepository) Get(ctx context.Context, id kernel.UUID) (*company.DNO, error) {
	args := m.Called(ctx, id)
	dno, _ := args.Get(0).(*company.DNO)
	return dno, args.Error(1)
}

func (m *MockDNORepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockDNORepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockAGURepository struct {
	mock.Mock
	ports.AGURepository
}

func (m *MockAGURepository) Add(ctx context.Context, a *agu.AGU) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAGURepository) Update(ctx context.Context, a *agu.AGU) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAGURepository) Get(ctx context.Context, cui kernel.CUI) (*agu.AGU, error) {
	args := m.Called(ctx, cui)
	a, _ := args.Get(0).(*agu.AGU)
	return a, args.Error(1)
}

func (m *MockAGURepository) Exists(ctx context.Context, cui kernel.CUI) (bool, error) {
	args := m.Called(ctx, cui)
	return args.Bool(0), args.Error(1)
}

func (m *MockAGURepository) GetAllActive(ctx context.Context) ([]*agu.AGU, error) {
	args := m.Called(ctx)
	agus, _ := args.Get(0).([]*agu.AGU)
	return agus, args.Error(1)
}

func (m *MockAGURepository) ExistsByDNO(ctx context.Context, dnoID kernel.UUID) (bool, error) {
	args := m.Called(ctx, dnoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAGURepository) Delete(ctx context.Context, cui kernel.CUI) (bool, error) {
	args := m.Called(ctx, cui)
	return args.Bool(0), args.Error(1)
}

type MockTankRepository struct {
	mock.Mock
	ports.TankRepository
}

func (m *MockTankRepository) Add(ctx context.Context, cui kernel.CUI, tank *agu.Tank) error {
	return m.Called(ctx, cui, tank).Error(0)
}

func (m *MockTankRepository) Update(ctx context.Context, cui kernel.CUI, tank *agu.Tank) (bool, error) {
	args := m.Called(ctx, cui, tank)
	return args.Bool(0), args.Error(1)
}

func (m *MockTankRepository) Delete(ctx context.Context, cui kernel.CUI, number int) (bool, error) {
	args := m.Called(ctx, cui, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockTankRepository) GetByAGU(ctx context.Context, cui kernel.CUI) ([]*agu.Tank, error) {
	args := m.Called(ctx, cui)
	tanks, _ := args.Get(0).([]*agu.Tank)
	return tanks, args.Error(1)
}

type MockContactRepository struct {
	mock.Mock
	ports.ContactRepository
}

func (m *MockContactRepository) Add(ctx context.Context, cui kernel.CUI, contact *agu.Contact) error {
	return m.Called(ctx, cui, contact).Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, cui kernel.CUI, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, cui, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactRepository) Exists(
	ctx context.Context,
	cui kernel.CUI,
	phone string,
	contactType agu.ContactType,
) (bool, error) {
	args := m.Called(ctx, cui, phone, contactType)
	return args.Bool(0), args.Error(1)
}

type MockProviderRepository struct {
	mock.Mock
	ports.ProviderRepository
}

func (m *MockProviderRepository) Add(ctx context.Context, provider *measure.Provider) error {
	return m.Called(ctx, provider).Error(0)
}

func (m *MockProviderRepository) GetByAGU(ctx context.Context, cui kernel.CUI) ([]*measure.Provider, error) {
	args := m.Called(ctx, cui)
	providers, _ := args.Get(0).([]*measure.Provider)
	return providers, args.Error(1)
}

type MockGasRepository struct {
	mock.Mock
	ports.GasRepository
}

func (m *MockGasRepository) GetByAGU(ctx context.Context, cui kernel.CUI, since time.Time) ([]measure.GasMeasure, error) {
	args := m.Called(ctx, cui, since)
	measures, _ := args.Get(0).([]measure.GasMeasure)
	return measures, args.Error(1)
}

type MockTemperatureRepository struct {
	mock.Mock
	ports.TemperatureRepository
}

func (m *MockTemperatureRepository) GetByAGU(
	ctx context.Context,
	cui kernel.CUI,
	since time.Time,
) ([]measure.TemperatureMeasure, error) {
	args := m.Called(ctx, cui, since)
	measures, _ := args.Get(0).([]measure.TemperatureMeasure)
	return measures, args.Error(1)
}

type MockLoadRepository struct {
	mock.Mock
	ports.LoadRepository
}

func (m *MockLoadRepository) Add(ctx context.Context, l *load.ScheduledLoad) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoadRepository) Get(ctx context.Context, id kernel.UUID) (*load.ScheduledLoad, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*load.ScheduledLoad)
	return l, args.Error(1)
}

func (m *MockLoadRepository) ExistsForSlot(ctx context.Context, slot load.Slot) (bool, error) {
	args := m.Called(ctx, slot)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoadRepository) Update(ctx context.Context, l *load.ScheduledLoad) (bool, error) {
	args := m.Called(ctx, l)
	return args.Bool(0), args.Error(1)
}

type MockAlertRepository struct {
	mock.Mock
	ports.AlertRepository
}

func (m *MockAlertRepository) Add(ctx context.Context, a *alert.Alert) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAlertRepository) Get(ctx context.Context, id kernel.UUID) (*alert.Alert, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*alert.Alert)
	return a, args.Error(1)
}

func (m *MockAlertRepository) GetUnresolved(ctx context.Context) ([]*alert.Alert, error) {
	args := m.Called(ctx)
	alerts, _ := args.Get(0).([]*alert.Alert)
	return alerts, args.Error(1)
}

func (m *MockAlertRepository) Update(ctx context.Context, a *alert.Alert) error {
	return m.Called(ctx, a).Error(0)
}

type MockTransportCompanyRepository struct {
	mock.Mock
	ports.TransportCompanyRepository
}

func (m *MockTransportCompanyRepository) Get(ctx context.Context, id kernel.UUID) (*company.TransportCompany, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*company.TransportCompany)
	return c, args.Error(1)
}

func (m *MockTransportCompanyRepository) Add(ctx context.Context, tc *company.TransportCompany) error {
	return m.Called(ctx, tc).Error(0)
}

func (m *MockTransportCompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransportCompanyRepository) Delete(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransportCompanyRepository) AddToAGU(ctx context.Context, cui kernel.CUI, companyID kernel.UUID) error {
	return m.Called(ctx, cui, companyID).Error(0)
}

func (m *MockTransportCompanyRepository) RemoveFromAGU(ctx context.Context, cui kernel.CUI, companyID kernel.UUID) (bool, error) {
	args := m.Called(ctx, cui, companyID)
	return args.Bool(0), args.Error(1)
}

type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Register(ctx context.Context, provider *measure.Provider) error {
	return m.Called(ctx, provider).Error(0)
}

func (m *MockScheduler) Unregister(providerID kernel.UUID) {
	m.Called(providerID)
}

type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Train(ctx context.Context, req ports.TrainingRequest) (ports.ConsumptionModel, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.ConsumptionModel), args.Error(1)
}

func (m *MockPredictor) Predict(ctx context.Context, req ports.ConsumptionRequest) ([]ports.DailyConsumption, error) {
	args := m.Called(ctx, req)
	out, _ := args.Get(0).([]ports.DailyConsumption)
	return out, args.Error(1)
}

func mustLevels(t *testing.T, minLevel, maxLevel, critical int) kernel.GasLevels {
	t.Helper()
	levels, err := kernel.NewGasLevels(minLevel, maxLevel, critical)
	require.NoError(t, err)
	return levels
}

func newTestAGU(t *testing.T) *agu.AGU {
	t.Helper()
	location, err := kernel.NewLocation("Braga", 41.55, -8.42)
	require.NoError(t, err)
	a, err := agu.NewAGU(kernel.MustCUI(testCUI), testEIC, "Braga Norte", mustLevels(t, 10, 90, 20),
		80, 1, location, kernel.NewUUID())
	require.NoError(t, err)
	return a
}

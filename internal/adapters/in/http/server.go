package http

import (
	"context"
	"net/http"
	"time"

	"agu/internal/core/application/queries"
	"agu/internal/core/application/services"
	"agu/internal/core/domain/model/alert"
	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"

	"github.com/labstack/echo/v4"
)

// AGUService is the part of services.AGUService the API exposes.
type AGUService interface {
	CreateAGU(ctx context.Context, c services.AGUCreation) (services.AGUCreationResult, error)
	GetAGUByCUI(ctx context.Context, cui string) (services.AGUDetailsResult, error)
	GetAGUsBasicInfo(ctx context.Context) ([]queries.AGUBasicInfo, error)
	UpdateFavouriteState(ctx context.Context, cui string, isFavourite bool) (services.AGUUpdateResult, error)
	UpdateActiveState(ctx context.Context, cui string, isActive bool) (services.AGUUpdateResult, error)
	UpdateNotes(ctx context.Context, cui, notes string) (services.AGUUpdateResult, error)
	UpdateGasLevels(ctx context.Context, cui string, minLevel, maxLevel, critical int) (services.AGUUpdateResult, error)
	DeleteAGU(ctx context.Context, cui string) (services.AGUDeletionResult, error)
	GetGasMeasures(ctx context.Context, cui string, days int) (services.GasMeasuresResult, error)
	GetTemperatureMeasures(ctx context.Context, cui string, days int) (services.TemperatureMeasuresResult, error)
	GetLatestLevels(ctx context.Context, cui string) (services.LatestLevelsResult, error)
}

type TankService interface {
	AddTank(ctx context.Context, cui string, c services.TankCreation) (services.TankCreationResult, error)
	UpdateTank(ctx context.Context, cui string, number int, u services.TankUpdate) (services.TankUpdateResult, error)
	DeleteTank(ctx context.Context, cui string, number int) (services.TankDeletionResult, error)
	GetTanks(ctx context.Context, cui string) (services.TanksResult, error)
}

type ContactService interface {
	AddContact(ctx context.Context, cui string, c services.ContactCreation) (services.ContactCreationResult, error)
	DeleteContact(ctx context.Context, cui string, id kernel.UUID) (services.ContactDeletionResult, error)
	GetContacts(ctx context.Context, cui string) (services.ContactsResult, error)
}

type DNOService interface {
	CreateDNO(ctx context.Context, name, region string) (services.DNOCreationResult, error)
	GetDNOByID(ctx context.Context, id kernel.UUID) (services.DNOLookupResult, error)
	GetDNOByName(ctx context.Context, name string) (services.DNOLookupResult, error)
	GetAll(ctx context.Context) ([]*company.DNO, error)
	DeleteDNO(ctx context.Context, id kernel.UUID) (services.DNODeletionResult, error)
}

type TransportCompanyService interface {
	CreateTransportCompany(ctx context.Context, name string) (services.TransportCompanyCreationResult, error)
	GetAll(ctx context.Context) ([]*company.TransportCompany, error)
	GetByAGU(ctx context.Context, cui string) (services.AGUCompaniesResult, error)
	DeleteTransportCompany(ctx context.Context, id kernel.UUID) (services.TransportCompanyDeletionResult, error)
	AddToAGU(ctx context.Context, cui string, id kernel.UUID) (services.AssociationResult, error)
	RemoveFromAGU(ctx context.Context, cui string, id kernel.UUID) (services.AssociationResult, error)
}

type AlertService interface {
	CreateAlert(ctx context.Context, cui, title, message string) (services.AlertCreationResult, error)
	GetAlerts(ctx context.Context) ([]*alert.Alert, error)
	GetAlertByID(ctx context.Context, id kernel.UUID) (services.AlertLookupResult, error)
	UpdateAlertStatus(ctx context.Context, id kernel.UUID) (services.AlertStatusResult, error)
}

type LoadService interface {
	ScheduleLoad(ctx context.Context, c services.LoadCreation) (services.LoadSchedulingResult, error)
	GetLoadByID(ctx context.Context, id kernel.UUID) (services.LoadLookupResult, error)
	GetDailyLoads(ctx context.Context, date time.Time) ([]*load.ScheduledLoad, error)
	GetLoadsBetween(ctx context.Context, from, to time.Time) ([]*load.ScheduledLoad, error)
	ConfirmLoad(ctx context.Context, id kernel.UUID) (bool, error)
	ChangeLoadDay(ctx context.Context, id kernel.UUID, date time.Time) (bool, error)
	RemoveLoad(ctx context.Context, id kernel.UUID) (bool, error)
	RegisterDelivery(ctx context.Context, id, companyID kernel.UUID, unload time.Time) (services.DeliveryResult, error)
}

type PredictionService interface {
	PredictConsumption(ctx context.Context, cui string, days int) (services.PredictionResult, error)
}

type PendingLoadsReader interface {
	Handle(ctx context.Context, query queries.GetPendingLoadsQuery) ([]queries.PendingLoad, error)
}

// Services groups the application services behind the API. A nil member
// leaves its routes unregistered.
type Services struct {
	AGUs               AGUService
	Tanks              TankService
	Contacts           ContactService
	DNOs               DNOService
	TransportCompanies TransportCompanyService
	Alerts             AlertService
	Loads              LoadService
	Predictions        PredictionService
	PendingLoads       PendingLoadsReader
}

// Server exposes the application services as a JSON API under /api/v1.
type Server struct {
	svc   Services
	clock func() time.Time
}

func NewServer(svc Services, clock func() time.Time) *Server {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Server{svc: svc, clock: clock}
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	if s.svc.AGUs != nil {
		api.POST("/agus", s.CreateAGU)
		api.GET("/agus", s.GetAGUs)
		api.GET("/agus/:cui", s.GetAGU)
		api.DELETE("/agus/:cui", s.DeleteAGU)
		api.PUT("/agus/:cui/favourite", s.UpdateFavourite)
		api.PUT("/agus/:cui/active", s.UpdateActive)
		api.PUT("/agus/:cui/notes", s.UpdateNotes)
		api.PUT("/agus/:cui/levels", s.UpdateGasLevels)
		api.GET("/agus/:cui/levels/latest", s.GetLatestLevels)
		api.GET("/agus/:cui/measures/gas", s.GetGasMeasures)
		api.GET("/agus/:cui/measures/temperature", s.GetTemperatureMeasures)
	}
	if s.svc.Predictions != nil {
		api.GET("/agus/:cui/prediction", s.PredictConsumption)
	}
	if s.svc.Tanks != nil {
		api.GET("/agus/:cui/tanks", s.GetTanks)
		api.POST("/agus/:cui/tanks", s.AddTank)
		api.PUT("/agus/:cui/tanks/:number", s.UpdateTank)
		api.DELETE("/agus/:cui/tanks/:number", s.DeleteTank)
	}
	if s.svc.Contacts != nil {
		api.GET("/agus/:cui/contacts", s.GetContacts)
		api.POST("/agus/:cui/contacts", s.AddContact)
		api.DELETE("/agus/:cui/contacts/:id", s.DeleteContact)
	}
	if s.svc.DNOs != nil {
		api.POST("/dnos", s.CreateDNO)
		api.GET("/dnos", s.GetDNOs)
		api.GET("/dnos/:id", s.GetDNO)
		api.DELETE("/dnos/:id", s.DeleteDNO)
	}
	if s.svc.TransportCompanies != nil {
		api.POST("/transport-companies", s.CreateTransportCompany)
		api.GET("/transport-companies", s.GetTransportCompanies)
		api.DELETE("/transport-companies/:id", s.DeleteTransportCompany)
		api.GET("/agus/:cui/transport-companies", s.GetAGUTransportCompanies)
		api.PUT("/agus/:cui/transport-companies/:id", s.AddTransportCompanyToAGU)
		api.DELETE("/agus/:cui/transport-companies/:id", s.RemoveTransportCompanyFromAGU)
	}
	if s.svc.Alerts != nil {
		api.POST("/agus/:cui/alerts", s.CreateAlert)
		api.GET("/alerts", s.GetAlerts)
		api.GET("/alerts/:id", s.GetAlert)
		api.PUT("/alerts/:id/resolve", s.ResolveAlert)
	}
	if s.svc.Loads != nil {
		api.POST("/loads", s.ScheduleLoad)
		api.GET("/loads", s.GetLoads)
		api.GET("/loads/:id", s.GetLoad)
		api.PUT("/loads/:id/confirm", s.ConfirmLoad)
		api.PUT("/loads/:id/date", s.ChangeLoadDay)
		api.DELETE("/loads/:id", s.RemoveLoad)
		api.POST("/loads/:id/delivery", s.RegisterDelivery)
	}
	if s.svc.PendingLoads != nil {
		api.GET("/loads/pending", s.GetPendingLoads)
	}
}

// New builds an echo instance with the goccy JSON codec, problem+json errors
// and the routes of s.
func New(s *Server, errorHandler echo.HTTPErrorHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = JSONSerializer{}
	if errorHandler != nil {
		e.HTTPErrorHandler = errorHandler
	}
	s.Register(e)
	return e
}

func pathUUID(c echo.Context, name string) (kernel.UUID, bool) {
	id, err := kernel.UUIDFromString(c.Param(name))
	return id, err == nil
}

func notFound(c echo.Context, what string) error {
	return writeProblem(c, Problem{
		Type:   "urn:agu:problem:" + what + "-not-found",
		Title:  http.StatusText(http.StatusNotFound),
		Status: http.StatusNotFound,
	})
}

package http

import (
	"strconv"
	"time"

	"agu/internal/core/application/services"
	"agu/internal/core/domain/model/kernel"
)

type TankRequest struct {
	Number           int     `json:"number"`
	Levels           Levels  `json:"levels"`
	LoadVolume       int     `json:"loadVolume"`
	Capacity         int     `json:"capacity"`
	CorrectionFactor float64 `json:"correctionFactor"`
}

func (r TankRequest) creation() services.TankCreation {
	return services.TankCreation{
		Number:           r.Number,
		MinLevel:         r.Levels.Min,
		MaxLevel:         r.Levels.Max,
		CriticalLevel:    r.Levels.Critical,
		LoadVolume:       r.LoadVolume,
		Capacity:         r.Capacity,
		CorrectionFactor: r.CorrectionFactor,
	}
}

func (r TankRequest) update() services.TankUpdate {
	return services.TankUpdate{
		MinLevel:         r.Levels.Min,
		MaxLevel:         r.Levels.Max,
		CriticalLevel:    r.Levels.Critical,
		LoadVolume:       r.LoadVolume,
		Capacity:         r.Capacity,
		CorrectionFactor: r.CorrectionFactor,
	}
}

type ContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Type  string `json:"type"`
}

func (r ContactRequest) creation() services.ContactCreation {
	return services.ContactCreation{Name: r.Name, Phone: r.Phone, Type: r.Type}
}

type ProviderRequest struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Frequency string `json:"frequency"`
}

type CreateAGURequest struct {
	CUI              string            `json:"cui"`
	EIC              string            `json:"eic"`
	Name             string            `json:"name"`
	Levels           Levels            `json:"levels"`
	LoadVolume       int               `json:"loadVolume"`
	CorrectionFactor float64           `json:"correctionFactor"`
	Location         Location          `json:"location"`
	DNOID            string            `json:"dnoId"`
	IsFavourite      bool              `json:"isFavourite"`
	Notes            string            `json:"notes"`
	Image            []byte            `json:"image"`
	Tanks            []TankRequest     `json:"tanks"`
	Contacts         []ContactRequest  `json:"contacts"`
	Providers        []ProviderRequest `json:"providers"`
}

// creation leaves DNOID zero when dnoId is malformed; the service then reports DNONotFound.
func (r CreateAGURequest) creation() services.AGUCreation {
	dnoID, _ := kernel.UUIDFromString(r.DNOID)
	return services.AGUCreation{
		CUI:              r.CUI,
		EIC:              r.EIC,
		Name:             r.Name,
		MinLevel:         r.Levels.Min,
		MaxLevel:         r.Levels.Max,
		CriticalLevel:    r.Levels.Critical,
		LoadVolume:       r.LoadVolume,
		CorrectionFactor: r.CorrectionFactor,
		LocationName:     r.Location.Name,
		Latitude:         r.Location.Latitude,
		Longitude:        r.Location.Longitude,
		DNOID:            dnoID,
		IsFavourite:      r.IsFavourite,
		Notes:            r.Notes,
		Image:            r.Image,
		Tanks:            mapSlice(r.Tanks, TankRequest.creation),
		Contacts:         mapSlice(r.Contacts, ContactRequest.creation),
		Providers: mapSlice(r.Providers, func(p ProviderRequest) services.ProviderCreation {
			return services.ProviderCreation{Type: p.Type, URL: p.URL, Frequency: p.Frequency}
		}),
	}
}

type FlagRequest struct {
	Value bool `json:"value"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type NameRequest struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

type AlertRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type LoadRequest struct {
	CUI       string `json:"cui"`
	Date      string `json:"date"`
	TimeOfDay string `json:"timeOfDay"`
	Amount    int    `json:"amount"`
	IsManual  bool   `json:"isManual"`
}

func (r LoadRequest) creation(date time.Time) services.LoadCreation {
	return services.LoadCreation{
		CUI:       r.CUI,
		Date:      date,
		TimeOfDay: r.TimeOfDay,
		Amount:    r.Amount,
		IsManual:  r.IsManual,
	}
}

type DateRequest struct {
	Date string `json:"date"`
}

type DeliveryRequest struct {
	TransportCompanyID string     `json:"transportCompanyId"`
	UnloadTimestamp    *time.Time `json:"unloadTimestamp"`
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(time.DateOnly, s)
	return t, err == nil
}

// parseDays reads a positive days query parameter, falling back to def when absent.
func parseDays(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

package http

import (
	"time"

	"agu/internal/core/application/queries"
	"agu/internal/core/application/services"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/alert"
	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"
	"agu/internal/core/domain/model/measure"
)

type Levels struct {
	Min      int `json:"min"`
	Max      int `json:"max"`
	Critical int `json:"critical"`
}

type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Tank struct {
	Number           int     `json:"number"`
	Levels           Levels  `json:"levels"`
	LoadVolume       int     `json:"loadVolume"`
	Capacity         int     `json:"capacity"`
	CorrectionFactor float64 `json:"correctionFactor"`
}

type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Type  string `json:"type"`
}

type Provider struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	URL       string     `json:"url"`
	Frequency string     `json:"frequency"`
	LastFetch *time.Time `json:"lastFetch,omitempty"`
}

type DNO struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Region *string `json:"region,omitempty"`
}

type TransportCompany struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AGU struct {
	CUI                string             `json:"cui"`
	EIC                string             `json:"eic"`
	Name               string             `json:"name"`
	Levels             Levels             `json:"levels"`
	LoadVolume         int                `json:"loadVolume"`
	CorrectionFactor   float64            `json:"correctionFactor"`
	Location           Location           `json:"location"`
	DNOID              string             `json:"dnoId"`
	DNO                *DNO               `json:"dno,omitempty"`
	IsFavourite        bool               `json:"isFavourite"`
	IsActive           bool               `json:"isActive"`
	Notes              string             `json:"notes"`
	Image              []byte             `json:"image,omitempty"`
	Tanks              []Tank             `json:"tanks"`
	Contacts           []Contact          `json:"contacts"`
	Providers          []Provider         `json:"providers,omitempty"`
	TransportCompanies []TransportCompany `json:"transportCompanies,omitempty"`
}

type AGUBasicInfo struct {
	CUI           string   `json:"cui"`
	Name          string   `json:"name"`
	DNOName       string   `json:"dnoName"`
	IsFavourite   bool     `json:"isFavourite"`
	IsActive      bool     `json:"isActive"`
	Location      Location `json:"location"`
	CriticalLevel int      `json:"criticalLevel"`
	Level         *float64 `json:"level"`
	IsCritical    bool     `json:"isCritical"`
}

type GasMeasure struct {
	Timestamp     time.Time `json:"timestamp"`
	PredictionFor time.Time `json:"predictionFor"`
	TankNumber    int       `json:"tankNumber"`
	Level         int       `json:"level"`
}

type TemperatureMeasure struct {
	Timestamp     time.Time `json:"timestamp"`
	PredictionFor time.Time `json:"predictionFor"`
	Min           int       `json:"min"`
	Max           int       `json:"max"`
}

type Alert struct {
	ID         string    `json:"id"`
	CUI        string    `json:"cui"`
	Timestamp  time.Time `json:"timestamp"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	IsResolved bool      `json:"isResolved"`
}

type Delivery struct {
	TransportCompanyID string    `json:"transportCompanyId"`
	UnloadTimestamp    time.Time `json:"unloadTimestamp"`
}

type Load struct {
	ID          string    `json:"id"`
	CUI         string    `json:"cui"`
	AGUName     string    `json:"aguName,omitempty"`
	Date        string    `json:"date"`
	TimeOfDay   string    `json:"timeOfDay"`
	Amount      int       `json:"amount"`
	IsManual    bool      `json:"isManual"`
	IsConfirmed bool      `json:"isConfirmed"`
	Delivery    *Delivery `json:"delivery,omitempty"`
}

type ProjectedDay struct {
	Date        string  `json:"date"`
	Consumption float64 `json:"consumption"`
	Level       float64 `json:"level"`
}

type Prediction struct {
	CUI          string         `json:"cui"`
	CurrentLevel float64        `json:"currentLevel"`
	Days         []ProjectedDay `json:"days"`
	Alert        *Alert         `json:"alert,omitempty"`
}

func levelsFromDomain(l kernel.GasLevels) Levels {
	return Levels{Min: l.Min(), Max: l.Max(), Critical: l.Critical()}
}

func locationFromDomain(l kernel.Location) Location {
	return Location{Name: l.Name(), Latitude: l.Latitude(), Longitude: l.Longitude()}
}

func tankFromDomain(t *agu.Tank) Tank {
	return Tank{
		Number:           t.Number(),
		Levels:           levelsFromDomain(t.Levels()),
		LoadVolume:       t.LoadVolume(),
		Capacity:         t.Capacity(),
		CorrectionFactor: t.CorrectionFactor(),
	}
}

func contactFromDomain(c *agu.Contact) Contact {
	return Contact{ID: c.ID().String(), Name: c.Name(), Phone: c.Phone(), Type: c.Type().String()}
}

func providerFromDomain(p *measure.Provider) Provider {
	dto := Provider{
		ID:        p.ID().String(),
		Type:      p.Type().String(),
		URL:       p.URL(),
		Frequency: p.Frequency().String(),
	}
	if last := p.LastFetch(); !last.IsZero() {
		dto.LastFetch = &last
	}
	return dto
}

func dnoFromDomain(d *company.DNO) DNO {
	dto := DNO{ID: d.ID().String(), Name: d.Name()}
	if region, ok := d.Region(); ok {
		dto.Region = &region
	}
	return dto
}

func transportCompanyFromDomain(c *company.TransportCompany) TransportCompany {
	return TransportCompany{ID: c.ID().String(), Name: c.Name()}
}

func aguFromDomain(a *agu.AGU) AGU {
	return AGU{
		CUI:              a.CUI().String(),
		EIC:              a.EIC(),
		Name:             a.Name(),
		Levels:           levelsFromDomain(a.Levels()),
		LoadVolume:       a.LoadVolume(),
		CorrectionFactor: a.CorrectionFactor(),
		Location:         locationFromDomain(a.Location()),
		DNOID:            a.DNOID().String(),
		IsFavourite:      a.IsFavourite(),
		IsActive:         a.IsActive(),
		Notes:            a.Notes(),
		Image:            a.Image(),
		Tanks:            mapSlice(a.Tanks(), tankFromDomain),
		Contacts:         mapSlice(a.Contacts(), contactFromDomain),
	}
}

func aguDetailsFromDomain(d services.AGUDetails) AGU {
	dto := aguFromDomain(d.AGU)
	if d.DNO != nil {
		dno := dnoFromDomain(d.DNO)
		dto.DNO = &dno
	}
	dto.Providers = mapSlice(d.Providers, providerFromDomain)
	dto.TransportCompanies = mapSlice(d.TransportCompanies, transportCompanyFromDomain)
	return dto
}

func basicInfoFromQuery(i queries.AGUBasicInfo) AGUBasicInfo {
	dto := AGUBasicInfo{
		CUI:           i.CUI.String(),
		Name:          i.Name,
		DNOName:       i.DNOName,
		IsFavourite:   i.IsFavourite,
		IsActive:      i.IsActive,
		Location:      locationFromDomain(i.Location),
		CriticalLevel: i.CriticalLevel,
		IsCritical:    i.IsCritical(),
	}
	if i.HasLevel {
		level := i.Level
		dto.Level = &level
	}
	return dto
}

func gasMeasureFromDomain(m measure.GasMeasure) GasMeasure {
	return GasMeasure{
		Timestamp:     m.Timestamp(),
		PredictionFor: m.PredictionFor(),
		TankNumber:    m.TankNumber(),
		Level:         m.Level(),
	}
}

func temperatureMeasureFromDomain(m measure.TemperatureMeasure) TemperatureMeasure {
	return TemperatureMeasure{Timestamp: m.Timestamp(), PredictionFor: m.PredictionFor(), Min: m.Min(), Max: m.Max()}
}

func alertFromDomain(a *alert.Alert) Alert {
	return Alert{
		ID:         a.ID().String(),
		CUI:        a.AGUCui().String(),
		Timestamp:  a.Timestamp(),
		Title:      a.Title(),
		Message:    a.Message(),
		IsResolved: a.IsResolved(),
	}
}

func loadFromDomain(l *load.ScheduledLoad) Load {
	dto := Load{
		ID:          l.ID().String(),
		CUI:         l.AGUCui().String(),
		Date:        l.Date().Format(time.DateOnly),
		TimeOfDay:   l.TimeOfDay().String(),
		Amount:      l.Amount(),
		IsManual:    l.IsManual(),
		IsConfirmed: l.IsConfirmed(),
	}
	if d, ok := l.Delivered(); ok {
		dto.Delivery = &Delivery{TransportCompanyID: d.TransportCompanyID.String(), UnloadTimestamp: d.UnloadTimestamp}
	}
	return dto
}

func pendingLoadFromQuery(p queries.PendingLoad) Load {
	return Load{
		ID:          p.ID.String(),
		CUI:         p.AGUCui.String(),
		AGUName:     p.AGUName,
		Date:        p.Date.Format(time.DateOnly),
		TimeOfDay:   p.TimeOfDay.String(),
		Amount:      p.Amount,
		IsManual:    p.IsManual,
		IsConfirmed: p.IsConfirmed,
	}
}

func predictionFromDomain(p services.Prediction) Prediction {
	dto := Prediction{
		CUI:          p.CUI.String(),
		CurrentLevel: p.CurrentLevel,
		Days: mapSlice(p.Days, func(d services.ProjectedDay) ProjectedDay {
			return ProjectedDay{Date: d.Date.Format(time.DateOnly), Consumption: d.Consumption, Level: d.Level}
		}),
	}
	if p.Alert != nil {
		a := alertFromDomain(p.Alert)
		dto.Alert = &a
	}
	return dto
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

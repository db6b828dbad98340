package services

import (
	"time"

	"agu/internal/core/domain/model/kernel"
)

// AGUCreation is the input of CreateAGU.
type AGUCreation struct {
	CUI              string
	EIC              string
	Name             string
	MinLevel         int
	MaxLevel         int
	CriticalLevel    int
	LoadVolume       int
	CorrectionFactor float64
	LocationName     string
	Latitude         float64
	Longitude        float64
	DNOID            kernel.UUID
	IsFavourite      bool
	Notes            string
	Image            []byte
	Tanks            []TankCreation
	Contacts         []ContactCreation
	Providers        []ProviderCreation
}

// TankCreation is the input of AddTank and of the tanks listed in AGUCreation.
type TankCreation struct {
	Number           int
	MinLevel         int
	MaxLevel         int
	CriticalLevel    int
	LoadVolume       int
	Capacity         int
	CorrectionFactor float64
}

// TankUpdate carries the mutable attributes of a tank.
type TankUpdate struct {
	MinLevel         int
	MaxLevel         int
	CriticalLevel    int
	LoadVolume       int
	Capacity         int
	CorrectionFactor float64
}

// ContactCreation is the input of AddContact.
type ContactCreation struct {
	Name  string
	Phone string
	Type  string
}

// ProviderCreation registers a data source. Frequency is an ISO-8601 duration
// such as PT1H; an empty frequency falls back to the service default.
type ProviderCreation struct {
	Type      string
	URL       string
	Frequency string
}

// LoadCreation is the input of ScheduleLoad.
type LoadCreation struct {
	CUI       string
	Date      time.Time
	TimeOfDay string
	Amount    int
	IsManual  bool
}

package measure

import (
	"errors"
	"net/url"
	"time"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"
)

// Provider is an external data source attached to an AGU. Its type is fixed at
// construction and every reading or measure it holds has that same type.
//
// Providers come in two shapes: registrations loaded from storage (with url,
// frequency and last fetch time, built by NewProvider or RestoreProvider) and
// in-memory collections built by ProviderType.NewProvider / NewMeasureProvider.
// Both share the homogeneity invariant.
type Provider struct {
	id           kernel.UUID
	providerType ProviderType
	aguCui       kernel.CUI
	url          string
	frequency    time.Duration
	lastFetch    time.Time

	readings []Reading
	measures []Measure
}

// NewProvider registers a new provider of type t for the AGU identified by cui.
func NewProvider(
	id kernel.UUID,
	t ProviderType,
	cui kernel.CUI,
	sourceURL string,
	frequency time.Duration,
) (*Provider, error) {
	return RestoreProvider(id, t, cui, sourceURL, frequency, time.Time{})
}

// RestoreProvider reconstructs a provider registration from storage. A zero
// lastFetch means the provider was never fetched.
func RestoreProvider(
	id kernel.UUID,
	t ProviderType,
	cui kernel.CUI,
	sourceURL string,
	frequency time.Duration,
	lastFetch time.Time,
) (*Provider, error) {
	if err := errors.Join(
		id.Validate(),
		t.Validate(),
		cui.Validate(),
		validateURL(sourceURL),
		validateFrequency(frequency),
	); err != nil {
		return nil, err
	}

	return &Provider{
		id:           id,
		providerType: t,
		aguCui:       cui,
		url:          sourceURL,
		frequency:    frequency,
		lastFetch:    lastFetch,
	}, nil
}

// ID returns the provider identifier.
func (p *Provider) ID() kernel.UUID {
	return p.id
}

// Type returns the immutable variant tag.
func (p *Provider) Type() ProviderType {
	return p.providerType
}

// AGUCui returns the owning AGU.
func (p *Provider) AGUCui() kernel.CUI {
	return p.aguCui
}

// URL returns the address polled by the ingestion pipeline.
func (p *Provider) URL() string {
	return p.url
}

// Frequency returns the polling period.
func (p *Provider) Frequency() time.Duration {
	return p.frequency
}

// LastFetch returns the time of the last successful fetch, zero if none.
func (p *Provider) LastFetch() time.Time {
	return p.lastFetch
}

// MarkFetched records a successful fetch cycle.
func (p *Provider) MarkFetched(at time.Time) {
	p.lastFetch = at
}

// Readings returns a copy of the readings in insertion order.
func (p *Provider) Readings() []Reading {
	out := make([]Reading, len(p.readings))
	copy(out, p.readings)
	return out
}

// Measures returns a copy of the measures in insertion order.
func (p *Provider) Measures() []Measure {
	out := make([]Measure, len(p.measures))
	copy(out, p.measures)
	return out
}

// AppendReadings adds readings to the provider. It panics with a
// *VariantMismatchError if any reading has a different type.
func (p *Provider) AppendReadings(readings ...Reading) {
	for i, r := range readings {
		if r == nil || r.ProviderType() != p.providerType {
			panic(mismatch(p.providerType, r, i))
		}
	}
	p.readings = append(p.readings, readings...)
}

// AppendMeasures adds measures to the provider. It panics with a
// *VariantMismatchError if any measure has a different type.
func (p *Provider) AppendMeasures(measures ...Measure) {
	for i, m := range measures {
		if m == nil || m.ProviderType() != p.providerType {
			panic(mismatch(p.providerType, m, i))
		}
	}
	p.measures = append(p.measures, measures...)
}

// LatestReading returns the reading with the greatest timestamp.
// On ties the earliest inserted wins. It returns ErrNoReadings when empty.
func (p *Provider) LatestReading() (Reading, error) {
	if len(p.readings) == 0 {
		return nil, ErrNoReadings
	}

	latest := p.readings[0]
	for _, r := range p.readings[1:] {
		if r.Timestamp().After(latest.Timestamp()) {
			latest = r
		}
	}
	return latest, nil
}

// LatestMeasure returns the measure with the greatest timestamp, or ErrNoReadings.
func (p *Provider) LatestMeasure() (Measure, error) {
	if len(p.measures) == 0 {
		return nil, ErrNoReadings
	}

	latest := p.measures[0]
	for _, m := range p.measures[1:] {
		if m.Timestamp().After(latest.Timestamp()) {
			latest = m
		}
	}
	return latest, nil
}

type typed interface {
	ProviderType() ProviderType
}

func mismatch(expected ProviderType, item typed, index int) *VariantMismatchError {
	actual := Unknown
	if item != nil {
		actual = item.ProviderType()
	}
	return &VariantMismatchError{Expected: expected, Actual: actual, Index: index}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("provider url", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValueIsInvalidError("provider url")
	}
	return nil
}

func validateFrequency(frequency time.Duration) error {
	if frequency <= 0 {
		return errs.NewValueIsOutOfRangeError("frequency", frequency, time.Nanosecond, time.Duration(1<<63-1))
	}
	return nil
}

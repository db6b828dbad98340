// Package prediction is the HTTP client of the consumption prediction service.
package prediction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"agu/internal/core/ports"

	"github.com/goccy/go-json"
)

const (
	trainPath   = "/train"
	predictPath = "/predict"
)

// ErrUnexpectedResponse is returned when the service answers with a body that
// does not match the request.
var ErrUnexpectedResponse = errors.New("unexpected prediction response")

// StatusError reports a non-2xx answer of the prediction service.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("prediction service %s answered %d: %s", e.Path, e.StatusCode, e.Body)
}

type temperatureDTO struct {
	Date string `json:"date"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

type consumptionDTO struct {
	Date        string  `json:"date"`
	Consumption float64 `json:"consumption"`
}

type trainRequest struct {
	Temperatures []temperatureDTO `json:"temperatures"`
	Consumptions []consumptionDTO `json:"consumptions"`
}

type trainResponse struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

type predictRequest struct {
	Temperatures         []temperatureDTO `json:"temperatures"`
	PreviousConsumptions []consumptionDTO `json:"previousConsumptions"`
	Coefficients         []float64        `json:"coefficients"`
	Intercept            float64          `json:"intercept"`
}

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Client implements ports.Predictor over JSON POSTs.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. Each call is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Train(ctx context.Context, req ports.TrainingRequest) (ports.ConsumptionModel, error) {
	body := trainRequest{
		Temperatures: temperaturesToDTO(req.Temperatures),
		Consumptions: consumptionsToDTO(req.Consumptions),
	}

	var resp trainResponse
	if err := c.post(ctx, trainPath, body, &resp); err != nil {
		return ports.ConsumptionModel{}, err
	}
	if len(resp.Coefficients) == 0 {
		return ports.ConsumptionModel{}, fmt.Errorf("%w: no coefficients", ErrUnexpectedResponse)
	}
	return ports.ConsumptionModel{Coefficients: resp.Coefficients, Intercept: resp.Intercept}, nil
}

func (c *Client) Predict(ctx context.Context, req ports.ConsumptionRequest) ([]ports.DailyConsumption, error) {
	body := predictRequest{
		Temperatures:         temperaturesToDTO(req.Temperatures),
		PreviousConsumptions: consumptionsToDTO(req.PreviousConsumptions),
		Coefficients:         req.Model.Coefficients,
		Intercept:            req.Model.Intercept,
	}

	var resp []consumptionDTO
	if err := c.post(ctx, predictPath, body, &resp); err != nil {
		return nil, err
	}
	if len(resp) != len(req.Temperatures) {
		return nil, fmt.Errorf("%w: %d values for %d days", ErrUnexpectedResponse, len(resp), len(req.Temperatures))
	}

	out := make([]ports.DailyConsumption, 0, len(resp))
	for _, dto := range resp {
		date, err := time.Parse(time.DateOnly, dto.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
		}
		out = append(out, ports.DailyConsumption{Date: date, Consumption: dto.Consumption})
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return nil
}

func temperaturesToDTO(temperatures []ports.DailyTemperature) []temperatureDTO {
	out := make([]temperatureDTO, 0, len(temperatures))
	for _, t := range temperatures {
		out = append(out, temperatureDTO{Date: t.Date.Format(time.DateOnly), Min: t.Min, Max: t.Max})
	}
	return out
}

func consumptionsToDTO(consumptions []ports.DailyConsumption) []consumptionDTO {
	out := make([]consumptionDTO, 0, len(consumptions))
	for _, c := range consumptions {
		out = append(out, consumptionDTO{Date: c.Date.Format(time.DateOnly), Consumption: c.Consumption})
	}
	return out
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/enuri14/EcoTour-Enuri/internal/dto"
	"github.com/enuri14/EcoTour-Enuri/pkg/telemetry"
)

// WeatherServiceConfig holds configuration for the forecast lookup
type WeatherServiceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// weatherService implements WeatherService against the Open-Meteo API
type weatherService struct {
	baseURL string
	client  *http.Client
}

// openMeteoResponse mirrors the subset of the upstream payload we use
type openMeteoResponse struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
}

// NewWeatherService creates a new WeatherService
func NewWeatherService(cfg *WeatherServiceConfig) WeatherService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com/v1/forecast"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &weatherService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetCurrentWeather fetches the current forecast for the coordinates
func (s *weatherService) GetCurrentWeather(ctx context.Context, query *dto.WeatherQuery) (*dto.WeatherResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.weather.get_current")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("lat", query.Latitude),
		attribute.Float64("lon", query.Longitude),
	)

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(query.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(query.Longitude, 'f', -1, 64))
	params.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to reach weather upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, resp.Status)
		return nil, fmt.Errorf("weather upstream returned %s", resp.Status)
	}

	var upstream openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to decode weather payload: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return &dto.WeatherResponse{
		Latitude:    upstream.Latitude,
		Longitude:   upstream.Longitude,
		Temperature: upstream.CurrentWeather.Temperature,
		WindSpeed:   upstream.CurrentWeather.WindSpeed,
		WeatherCode: upstream.CurrentWeather.WeatherCode,
		Time:        upstream.CurrentWeather.Time,
	}, nil
}

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/enuri14/EcoTour-Enuri/internal/dto"
)

func TestWeatherService_GetCurrentWeather(t *testing.T) {
	ctx := context.Background()

	t.Run("passes coordinates through and trims the payload", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("latitude") != "9.98" {
				t.Errorf("unexpected latitude: %q", r.URL.Query().Get("latitude"))
			}
			if r.URL.Query().Get("current_weather") != "true" {
				t.Error("expected current_weather=true")
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"latitude": 9.98,
				"longitude": -84.12,
				"current_weather": {
					"temperature": 24.3,
					"windspeed": 11.5,
					"weathercode": 2,
					"time": "2026-08-28T14:00"
				}
			}`))
		}))
		defer upstream.Close()

		svc := NewWeatherService(&WeatherServiceConfig{BaseURL: upstream.URL})
		resp, err := svc.GetCurrentWeather(ctx, &dto.WeatherQuery{Latitude: 9.98, Longitude: -84.12})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Temperature != 24.3 {
			t.Errorf("unexpected temperature: %v", resp.Temperature)
		}
		if resp.WindSpeed != 11.5 {
			t.Errorf("unexpected wind speed: %v", resp.WindSpeed)
		}
		if resp.WeatherCode != 2 {
			t.Errorf("unexpected weather code: %v", resp.WeatherCode)
		}
	})

	t.Run("upstream failure surfaces as error", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer upstream.Close()

		svc := NewWeatherService(&WeatherServiceConfig{BaseURL: upstream.URL})
		if _, err := svc.GetCurrentWeather(ctx, &dto.WeatherQuery{Latitude: 1, Longitude: 1}); err == nil {
			t.Error("expected error from failing upstream")
		}
	})
}

package effector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/logging"
)

func weatherServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		city := r.URL.Query().Get("q")
		if city != "Paris" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":    "Paris",
			"weather": []map[string]any{{"description": "clear sky"}},
			"main":    map[string]any{"temp": 18.2, "feels_like": 17.5},
		})
	}))
}

func weatherCmd(city string) command.Command {
	args := command.Args{}
	if city != "" {
		args["city"] = city
	}
	return command.Command{Name: command.GetWeather, Args: args}
}

func TestGetWeatherSuccess(t *testing.T) {
	srv := weatherServer(t, nil)
	defer srv.Close()

	tool := NewGetWeather(WeatherConfig{APIKey: "k", BaseURL: srv.URL}, nil, logging.Nop())
	outcome := tool.Execute(context.Background(), weatherCmd("Paris"))
	require.True(t, outcome.OK)
	assert.Equal(t, "Paris is clear sky with a temperature of 18.2°C and a feels like temperature of 17.5°C.", outcome.Message)
}

func TestGetWeatherResolvesCurrentCity(t *testing.T) {
	srv := weatherServer(t, nil)
	defer srv.Close()

	tool := NewGetWeather(WeatherConfig{APIKey: "k", BaseURL: srv.URL}, &device.FakeLocation{City: "Paris"}, logging.Nop())
	outcome := tool.Execute(context.Background(), weatherCmd(""))
	require.True(t, outcome.OK)
	assert.Contains(t, outcome.Message, "Paris is clear sky")
}

func TestGetWeatherCityNotFound(t *testing.T) {
	srv := weatherServer(t, nil)
	defer srv.Close()

	tool := NewGetWeather(WeatherConfig{APIKey: "k", BaseURL: srv.URL}, nil, logging.Nop())
	outcome := tool.Execute(context.Background(), weatherCmd("Atlantis"))
	assert.False(t, outcome.OK)
	assert.Equal(t, KindUpstream, outcome.Kind)
	assert.Equal(t, "Error: City not found", outcome.Message)
}

func TestGetWeatherNetworkFailure(t *testing.T) {
	srv := weatherServer(t, nil)
	srv.Close() // refuse all connections

	tool := NewGetWeather(WeatherConfig{APIKey: "k", BaseURL: srv.URL}, nil, logging.Nop())
	outcome := tool.Execute(context.Background(), weatherCmd("Paris"))
	assert.False(t, outcome.OK)
	assert.Equal(t, KindUpstream, outcome.Kind)
	assert.Contains(t, outcome.Message, "Error: ")
}

func TestGetWeatherCachesSuccesses(t *testing.T) {
	var hits atomic.Int64
	srv := weatherServer(t, &hits)
	defer srv.Close()

	tool := NewGetWeather(WeatherConfig{APIKey: "k", BaseURL: srv.URL}, nil, logging.Nop())
	for i := 0; i < 3; i++ {
		outcome := tool.Execute(context.Background(), weatherCmd("Paris"))
		require.True(t, outcome.OK)
	}
	assert.Equal(t, int64(1), hits.Load())
}

func TestGetWeatherMissingAPIKey(t *testing.T) {
	tool := NewGetWeather(WeatherConfig{BaseURL: "http://127.0.0.1:0"}, nil, logging.Nop())
	outcome := tool.Execute(context.Background(), weatherCmd("Paris"))
	assert.False(t, outcome.OK)
	assert.Contains(t, outcome.Message, "weather API key not configured")
}

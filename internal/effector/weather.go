package effector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"sentry/internal/command"
	"sentry/internal/device"
	"sentry/internal/httpclient"
	"sentry/internal/logging"
)

// DefaultWeatherURL is the OpenWeatherMap current-weather endpoint.
const DefaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// WeatherConfig configures the weather effector.
type WeatherConfig struct {
	APIKey   string
	BaseURL  string
	Client   *http.Client
	CacheTTL time.Duration
}

// getWeather reports the current conditions for a city, resolving the
// user's current city when none is given. Successful lookups are cached
// per city for a short TTL so repeated small talk doesn't hammer the API.
type getWeather struct {
	cfg      WeatherConfig
	location device.Location
	logger   logging.Logger
	cache    *expirable.LRU[string, string]
}

// NewGetWeather builds the weather-lookup effector.
func NewGetWeather(cfg WeatherConfig, location device.Location, logger logging.Logger) Effector {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultWeatherURL
	}
	if cfg.Client == nil {
		cfg.Client = httpclient.New(15*time.Second, logger)
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &getWeather{
		cfg:      cfg,
		location: location,
		logger:   logging.OrNop(logger),
		cache:    expirable.NewLRU[string, string](64, nil, ttl),
	}
}

func (e *getWeather) Name() command.Name { return command.GetWeather }

func (e *getWeather) Execute(ctx context.Context, cmd command.Command) Outcome {
	city := strings.TrimSpace(cmd.Get("city"))
	if city == "" && e.location != nil {
		resolved, err := e.location.CurrentCity(ctx)
		if err != nil {
			e.logger.Warn("resolving current city failed: %v", err)
		}
		city = resolved
	}

	if cached, ok := e.cache.Get(strings.ToLower(city)); ok {
		return Success(cached)
	}

	sentence, err := e.lookup(ctx, city)
	if err != nil {
		e.logger.Warn("weather lookup for %q failed: %v", city, err)
		return Failure(KindUpstream, fmt.Sprintf("Error: %v", err))
	}

	e.cache.Add(strings.ToLower(city), sentence)
	return Success(sentence)
}

func (e *getWeather) lookup(ctx context.Context, city string) (string, error) {
	if e.cfg.APIKey == "" {
		return "", fmt.Errorf("weather API key not configured")
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", e.cfg.APIKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.cfg.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := e.cfg.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("City not found")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Name    string `json:"name"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
		} `json:"main"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}

	description := ""
	if len(parsed.Weather) > 0 {
		description = parsed.Weather[0].Description
	}
	return fmt.Sprintf("%s is %s with a temperature of %s°C and a feels like temperature of %s°C.",
		parsed.Name, description, formatDegrees(parsed.Main.Temp), formatDegrees(parsed.Main.FeelsLike)), nil
}

// formatDegrees renders a temperature with no trailing zeros, so 18.2
// stays "18.2" and 18 stays "18".
func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

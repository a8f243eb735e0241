// Package openweather reports current conditions through the OpenWeather API.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"conferencego/internal/domain"
)

const defaultBaseURL = "https://api.openweathermap.org"

// ErrUnknownCity is returned when geocoding finds no match.
var ErrUnknownCity = errors.New("city not found")

type geoResult struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type weatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

type weatherFetcher struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewWeatherFetcher returns a WeatherFetcher that geocodes the city and reads
// the current weather there in imperial units.
func NewWeatherFetcher(client *http.Client, apiKey string) domain.WeatherFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &weatherFetcher{client: client, apiKey: apiKey, baseURL: defaultBaseURL}
}

func (f *weatherFetcher) CurrentWeather(ctx context.Context, city, state string) (*domain.Weather, error) {
	q := url.Values{}
	q.Set("q", city+","+state+",US")
	q.Set("limit", "1")
	var geo []geoResult
	if err := f.get(ctx, "/geo/1.0/direct", q, &geo); err != nil {
		return nil, fmt.Errorf("geocode %s, %s: %w", city, state, err)
	}
	if len(geo) == 0 {
		return nil, ErrUnknownCity
	}

	q = url.Values{}
	q.Set("lat", strconv.FormatFloat(geo[0].Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(geo[0].Lon, 'f', -1, 64))
	q.Set("units", "imperial")
	var data weatherResponse
	if err := f.get(ctx, "/data/2.5/weather", q, &data); err != nil {
		return nil, fmt.Errorf("current weather: %w", err)
	}
	w := &domain.Weather{Temp: data.Main.Temp}
	if len(data.Weather) > 0 {
		w.Description = data.Weather[0].Description
	}
	return w, nil
}

func (f *weatherFetcher) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("appid", f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch from openweather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openweather api returned status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode openweather response: %w", err)
	}
	return nil
}

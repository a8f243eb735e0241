package domain

import "context"

// PhotoFinder finds a picture of a city.
type PhotoFinder interface {
	FindPhoto(ctx context.Context, city, state string) (string, error)
}

// WeatherFetcher reports the current weather in a city.
type WeatherFetcher interface {
	CurrentWeather(ctx context.Context, city, state string) (*Weather, error)
}

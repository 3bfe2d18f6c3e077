// Command weather prints the current conditions for a location.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"aircraft_manager/internal/config"
	"aircraft_manager/internal/weather"
)

func main() {
	query := flag.String("q", "waw", "location to query")
	provider := flag.String("provider", "weatherapi", "weatherapi or weatherstack")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	if cfg.WeatherAPIKey == "" {
		logrus.Warn("WEATHER_API_KEY is not set")
	}

	var client *weather.Client
	switch *provider {
	case "weatherapi":
		client = weather.NewWeatherAPIClient(cfg.WeatherAPIURL, cfg.WeatherAPIKey, *query)
	case "weatherstack":
		client = weather.NewWeatherstackClient(cfg.WeatherAPIURL, cfg.WeatherAPIKey, *query)
	default:
		logrus.Fatalf("Unknown provider %q", *provider)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	obs, err := client.Current(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to fetch weather data")
	}
	fmt.Print(obs)
}

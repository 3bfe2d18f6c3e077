// Package weather fetches current conditions from a third-party weather API.
// Response field names differ per provider and are supplied by a FieldsMapper.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	WeatherAPIURL   = "http://api.weatherapi.com/v1/current.json"
	WeatherstackURL = "http://api.weatherstack.com/current"

	// Unknown is reported for any field missing from the response.
	Unknown = "Unknown"
)

var ErrIncomplete = errors.New("weather data is incomplete or missing")

// FieldsMapper names the response keys holding each piece of data.
// Location and Current name the two top-level sections.
type FieldsMapper struct {
	Location      string
	Current       string
	Name          string
	LastUpdated   string
	WindSpeed     string
	WindDirection string
	Temperature   string
}

var (
	WeatherAPIFields = FieldsMapper{
		Location:      "location",
		Current:       "current",
		Name:          "name",
		LastUpdated:   "last_updated",
		WindSpeed:     "wind_kph",
		WindDirection: "wind_degree",
		Temperature:   "temp_c",
	}
	WeatherstackFields = FieldsMapper{
		Location:      "location",
		Current:       "current",
		Name:          "name",
		LastUpdated:   "observation_time",
		WindSpeed:     "wind_speed",
		WindDirection: "wind_degree",
		Temperature:   "temperature",
	}
)

type Observation struct {
	Name          string `json:"name"`
	LastUpdated   string `json:"last_updated"`
	WindSpeed     string `json:"current_wind_speed"`
	WindDirection string `json:"current_wind_direction"`
	Temperature   string `json:"current_temperature"`
}

// String renders the observation as a short human readable report.
func (o Observation) String() string {
	updated := o.LastUpdated
	if formatted, err := FormatDate(updated); err == nil {
		updated = formatted
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Location name: %s.\n", o.Name)
	fmt.Fprintf(&b, "Last update: %s.\n", updated)
	fmt.Fprintf(&b, "Current wind direction and speed: %s° / %s kph.\n", o.WindDirection, o.WindSpeed)
	fmt.Fprintf(&b, "Current temperature: %s° C.\n", o.Temperature)
	b.WriteString("-----End of message-----\n")
	return b.String()
}

// APIError is returned when the provider reports a failure, either in an
// {"error": {...}} body or with a non-200 status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weather API error (%d): %s", e.StatusCode, e.Message)
}

type Client struct {
	URL    string
	Fields FieldsMapper
	// Params are sent as the query string, including the provider's key parameter.
	Params     url.Values
	HTTPClient *http.Client
}

// NewWeatherAPIClient returns a Client for weatherapi.com. An empty apiURL uses WeatherAPIURL.
func NewWeatherAPIClient(apiURL, key, query string) *Client {
	if apiURL == "" {
		apiURL = WeatherAPIURL
	}
	return &Client{
		URL:    apiURL,
		Fields: WeatherAPIFields,
		Params: url.Values{"key": {key}, "q": {query}},
	}
}

// NewWeatherstackClient returns a Client for weatherstack.com. An empty apiURL uses WeatherstackURL.
func NewWeatherstackClient(apiURL, key, query string) *Client {
	if apiURL == "" {
		apiURL = WeatherstackURL
	}
	return &Client{
		URL:    apiURL,
		Fields: WeatherstackFields,
		Params: url.Values{"access_key": {key}, "query": {query}},
	}
}

// Current fetches the current conditions.
func (c *Client) Current(ctx context.Context) (Observation, error) {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	reqURL := c.URL
	if len(c.Params) > 0 {
		reqURL += "?" + c.Params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Observation{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("url", c.URL).Error("Error fetching weather data")
		return Observation{}, fmt.Errorf("failed to fetch weather data: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing weather response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Observation{}, fmt.Errorf("failed to read weather response: %w", err)
	}

	var data map[string]json.RawMessage
	decodeErr := json.Unmarshal(body, &data)

	if decodeErr == nil {
		if raw, ok := data["error"]; ok {
			apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
			logrus.WithField("status", resp.StatusCode).Error(apiErr.Error())
			return Observation{}, apiErr
		}
	}
	if resp.StatusCode != http.StatusOK {
		return Observation{}, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if decodeErr != nil {
		return Observation{}, fmt.Errorf("failed to decode weather response: %w", decodeErr)
	}

	location := section(data, c.Fields.Location)
	current := section(data, c.Fields.Current)
	if len(location) == 0 || len(current) == 0 {
		logrus.WithField("url", c.URL).Error(ErrIncomplete.Error())
		return Observation{}, ErrIncomplete
	}

	return Observation{
		Name:          value(location, c.Fields.Name),
		LastUpdated:   value(current, c.Fields.LastUpdated),
		WindSpeed:     value(current, c.Fields.WindSpeed),
		WindDirection: value(current, c.Fields.WindDirection),
		Temperature:   value(current, c.Fields.Temperature),
	}, nil
}

// errorMessage reads "message" (weatherapi) or "info" (weatherstack).
func errorMessage(raw json.RawMessage) string {
	var e struct {
		Message string `json:"message"`
		Info    string `json:"info"`
	}
	if err := json.Unmarshal(raw, &e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Info != "" {
			return e.Info
		}
	}
	return "Unknown error"
}

func section(data map[string]json.RawMessage, key string) map[string]interface{} {
	raw, ok := data[key]
	if !ok {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func value(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return Unknown
	}
	return fmt.Sprint(v)
}

package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/pushparaj09/medishift-ai/internal"
)

const (
	forecastDays    = 7
	fallbackStaff   = 10
	fallbackOnDuty  = 8
	fallbackMessage = "AI service is currently unavailable. Showing historical average data."
)

// Client calls the external staffing-forecast API. Any failure, from a
// missing API key to a malformed response, degrades to a locally
// synthesized series so the caller always gets a forecast.
type Client struct {
	apiURL  string
	apiKey  string
	timeout time.Duration
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(cfg internal.ForecastConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiURL:  cfg.APIURL,
		apiKey:  cfg.APIKey,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Generate returns a 7-day forecast for the department starting at
// startDate. It never returns an error for upstream failures; those
// are logged and replaced with the fallback series.
func (c *Client) Generate(ctx context.Context, department, startDate string) *Forecast {
	forecast, err := c.callForecastAPI(ctx, department, startDate)
	if err != nil {
		c.logger.Error("forecast API failed, serving fallback",
			"error", err,
			"department", department,
			"start_date", startDate)
		return c.fallback(startDate)
	}

	c.logger.Info("forecast generated",
		"department", department,
		"start_date", startDate,
		"days", len(forecast.Data))
	return forecast
}

func (c *Client) callForecastAPI(ctx context.Context, department, startDate string) (*Forecast, error) {
	if c.apiURL == "" {
		return nil, errors.New("forecast api_url is not configured")
	}
	if c.apiKey == "" {
		return nil, errors.New("forecast api_key is not configured")
	}

	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"You are an AI Staffing Analyst for a major hospital. "+
			"Analyze the staffing requirements for the %s department starting from %s for the next %d days. "+
			"Consider typical hospital trends. "+
			"For each day, estimate the predictedDemand (0-100 patient load) and requiredStaff per shift.",
		department, startDate, forecastDays)

	body, err := json.Marshal(map[string]interface{}{
		"prompt":     prompt,
		"department": department,
		"start_date": startDate,
		"days":       forecastDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/v1/forecasts", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast API returned status %d", resp.StatusCode)
	}

	var forecast Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if forecast.Analysis == "" || len(forecast.Data) != forecastDays {
		return nil, fmt.Errorf("forecast API returned incomplete payload: %d days", len(forecast.Data))
	}

	return &forecast, nil
}

// fallback synthesizes a plausible week so the dashboard keeps working
// when the upstream is down.
func (c *Client) fallback(startDate string) *Forecast {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		start = time.Now()
	}

	data := make([]DayForecast, forecastDays)
	for i := range data {
		data[i] = DayForecast{
			Date:             start.AddDate(0, 0, i).Format("2006-01-02"),
			PredictedDemand:  50 + rand.Intn(30),
			RequiredStaff:    fallbackStaff,
			CurrentScheduled: fallbackOnDuty,
		}
	}

	return &Forecast{
		Analysis: fallbackMessage,
		Data:     data,
	}
}

package forecast_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pushparaj09/medishift-ai/internal"
	"github.com/pushparaj09/medishift-ai/internal/forecast"
)

var _ = Describe("ForecastClient", func() {
	var (
		logger *slog.Logger
		ctx    context.Context
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		ctx = context.Background()
	})

	newClient := func(apiURL, apiKey string) *forecast.Client {
		return forecast.NewClient(internal.ForecastConfig{
			APIURL:  apiURL,
			APIKey:  apiKey,
			Timeout: 2 * time.Second,
		}, logger)
	}

	expectFallback := func(result *forecast.Forecast, startDate string) {
		Expect(result.Analysis).To(Equal("AI service is currently unavailable. Showing historical average data."))
		Expect(result.Data).To(HaveLen(7))
		Expect(result.Data[0].Date).To(Equal(startDate))
		for _, day := range result.Data {
			Expect(day.PredictedDemand).To(BeNumerically(">=", 50))
			Expect(day.PredictedDemand).To(BeNumerically("<", 80))
			Expect(day.RequiredStaff).To(Equal(10))
			Expect(day.CurrentScheduled).To(Equal(8))
		}
	}

	Context("when the upstream answers with a full week", func() {
		var server *httptest.Server

		BeforeEach(func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/v1/forecasts"))
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer test-key"))

				data := make([]forecast.DayForecast, 7)
				for i := range data {
					data[i] = forecast.DayForecast{
						Date:             time.Date(2026, 9, 7+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
						PredictedDemand:  60 + i,
						RequiredStaff:    12,
						CurrentScheduled: 9,
					}
				}
				json.NewEncoder(w).Encode(forecast.Forecast{
					Analysis: "Expect elevated ER load midweek.",
					Data:     data,
				})
			}))
		})

		AfterEach(func() {
			server.Close()
		})

		It("should return the upstream forecast unchanged", func() {
			// Given
			client := newClient(server.URL, "test-key")

			// When
			result := client.Generate(ctx, "Emergency Room", "2026-09-07")

			// Then
			Expect(result.Analysis).To(Equal("Expect elevated ER load midweek."))
			Expect(result.Data).To(HaveLen(7))
			Expect(result.Data[0].RequiredStaff).To(Equal(12))
		})
	})

	Context("when the upstream fails", func() {
		It("should fall back on a server error", func() {
			// Given
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()
			client := newClient(server.URL, "test-key")

			// When
			result := client.Generate(ctx, "Emergency Room", "2026-09-07")

			// Then
			expectFallback(result, "2026-09-07")
		})

		It("should fall back on a short week", func() {
			// Given
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(forecast.Forecast{
					Analysis: "partial",
					Data:     []forecast.DayForecast{{Date: "2026-09-07"}},
				})
			}))
			defer server.Close()
			client := newClient(server.URL, "test-key")

			// When
			result := client.Generate(ctx, "Emergency Room", "2026-09-07")

			// Then
			expectFallback(result, "2026-09-07")
		})

		It("should fall back when no API is configured", func() {
			// Given
			client := newClient("", "")

			// When
			result := client.Generate(ctx, "Pediatrics", "2026-09-07")

			// Then
			expectFallback(result, "2026-09-07")
		})

		It("should anchor the fallback on today when the start date is unparseable", func() {
			// Given
			client := newClient("", "")

			// When
			result := client.Generate(ctx, "Pediatrics", "someday")

			// Then
			Expect(result.Data).To(HaveLen(7))
			Expect(result.Data[0].Date).To(Equal(time.Now().Format("2006-01-02")))
		})
	})
})

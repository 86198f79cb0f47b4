package forecast

// DayForecast is one day of the 7-day staffing projection.
type DayForecast struct {
	Date             string `json:"date"`
	PredictedDemand  int    `json:"predictedDemand"`
	RequiredStaff    int    `json:"requiredStaff"`
	CurrentScheduled int    `json:"currentScheduled"`
}

// Forecast is the staffing projection for one department.
type Forecast struct {
	Analysis string        `json:"analysis"`
	Data     []DayForecast `json:"data"`
}
